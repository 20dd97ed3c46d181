package storage

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/vkarel/advlab/internal/field"
)

// Recorder is an engine observer that keeps a per-step series of cheap
// aggregates. Attach it before a run, then hand it to Save for the
// series.csv next to the frames.
type Recorder struct {
	Times []float64
	Mass  []float64
	Min   []float64
	Max   []float64
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Observe(f field.Field, t float64) {
	lo, hi := f.MinMax()
	r.Times = append(r.Times, t)
	r.Mass = append(r.Mass, f.Sum())
	r.Min = append(r.Min, lo)
	r.Max = append(r.Max, hi)
}

// Len returns the number of recorded steps.
func (r *Recorder) Len() int { return len(r.Times) }

// WriteCSV writes the series with one row per observed step.
func (r *Recorder) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write([]string{"time", "mass", "min", "max"}); err != nil {
		return err
	}
	row := make([]string, 4)
	for i := range r.Times {
		row[0] = strconv.FormatFloat(r.Times[i], 'g', -1, 64)
		row[1] = strconv.FormatFloat(r.Mass[i], 'g', -1, 64)
		row[2] = strconv.FormatFloat(r.Min[i], 'g', -1, 64)
		row[3] = strconv.FormatFloat(r.Max[i], 'g', -1, 64)
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
