// Package storage persists finished runs to disk and exports them.
//
// A [Store] keeps one directory per run, named <scenario>_<unix>:
//
//	runs/
//	  square-pulse_1755855600/
//	    metadata.json   scenario, scheme, grid shape, final metrics
//	    frames.csv      time plus every cell value, one row per frame
//	    series.csv      per-step mass and extrema from a [Recorder]
//
// [ExportJSON] and [ExportCSVFile] write the same content to standalone
// files for consumption outside the store layout.
package storage
