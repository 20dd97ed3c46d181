// Package viz renders advected fields in the terminal.
//
// The live view is a Bubble Tea program that steps an [engine.Integrator]
// at up to 30 frames per second while the field is drawn with a
// [Canvas] of Braille dots (1D profiles) or a half-block [Heatmap]
// (2D fields and 3D slices). Schemes, boundary policies, the CFL
// number and the step speed can all be changed while the run is live,
// and any stretch of the run can be scrubbed back through a replay
// ring or captured to an animated GIF.
//
//	Space - pause / resume
//	R     - reset the scenario
//	Tab   - cycle advection schemes
//	B     - cycle boundary policies
//	[ ]   - replay backward / forward
//	G     - toggle GIF recording
//
// Colors come from a small set of terminal themes; see [ThemeNames].
package viz
