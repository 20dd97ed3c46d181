package storage

import (
	"encoding/json"
	"io"
	"os"

	"github.com/vkarel/advlab/internal/experiment"
	"github.com/vkarel/advlab/internal/field"
	"github.com/vkarel/advlab/internal/scenario"
)

// ExportData is the self-contained JSON form of one run, frames included.
type ExportData struct {
	Scenario   string             `json:"scenario"`
	Scheme     string             `json:"scheme"`
	Dims       []int              `json:"dims"`
	Spacing    []float64          `json:"spacing"`
	Origin     []float64          `json:"origin"`
	CFL        float64            `json:"cfl"`
	Dt         float64            `json:"dt"`
	Duration   float64            `json:"duration"`
	Steps      int                `json:"steps"`
	SubSteps   int                `json:"sub_steps"`
	FrameTimes []float64          `json:"frame_times"`
	Frames     [][]float64        `json:"frames"`
	Final      []float64          `json:"final"`
	Metrics    map[string]float64 `json:"metrics"`
}

// ExportJSON writes the run to w as indented JSON.
func ExportJSON(w io.Writer, scn *scenario.Scenario, out experiment.Outcome) error {
	data := ExportData{
		Scenario:   scn.Name,
		Scheme:     out.Label,
		Dims:       scn.Grid.Dims,
		Spacing:    scn.Grid.Spacing,
		Origin:     scn.Grid.Origin,
		CFL:        scn.CFL,
		Dt:         scn.Dt,
		Duration:   scn.Duration,
		Steps:      out.Steps,
		SubSteps:   out.SubSteps,
		FrameTimes: out.FrameTimes,
		Frames:     make([][]float64, len(out.Frames)),
		Metrics:    out.Metrics,
	}
	for i, f := range out.Frames {
		data.Frames[i] = f.Data()
	}
	if out.Final.Len() > 0 {
		data.Final = out.Final.Data()
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

// ExportJSONFile writes the run to a file, creating or truncating it.
func ExportJSONFile(path string, scn *scenario.Scenario, out experiment.Outcome) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return ExportJSON(file, scn, out)
}

// ExportCSVFile writes just the frames (final state included) to a csv
// file outside any store directory.
func ExportCSVFile(path string, out experiment.Outcome) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	frames := out.Frames
	times := out.FrameTimes
	if out.Final.Len() > 0 {
		frames = append(append([]field.Field(nil), frames...), out.Final)
		times = append(append([]float64(nil), times...), out.Time)
	}
	return WriteFrames(file, frames, times)
}
