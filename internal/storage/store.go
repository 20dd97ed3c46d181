package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/vkarel/advlab/internal/experiment"
	"github.com/vkarel/advlab/internal/field"
	"github.com/vkarel/advlab/internal/scenario"
)

// Store persists finished runs under baseDir, one directory per run named
// <scenario>_<unix>, holding metadata.json, frames.csv and series.csv.
type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0o755)
}

// RunMetadata is everything needed to interpret the csv files next to it.
type RunMetadata struct {
	ID        string             `json:"id"`
	Scenario  string             `json:"scenario"`
	Timestamp time.Time          `json:"timestamp"`
	Scheme    string             `json:"scheme"`
	Dims      []int              `json:"dims"`
	Spacing   []float64          `json:"spacing"`
	Origin    []float64          `json:"origin"`
	CFL       float64            `json:"cfl"`
	Dt        float64            `json:"dt"`
	Duration  float64            `json:"duration"`
	Seed      int64              `json:"seed"`
	Steps     int                `json:"steps"`
	SubSteps  int                `json:"sub_steps"`
	Metrics   map[string]float64 `json:"metrics"`
}

// Save writes one finished run and returns its ID. The final state is
// always appended as the last frame so a run with SnapshotEvery unset
// still stores something plottable. A nil recorder skips series.csv.
func (s *Store) Save(scn *scenario.Scenario, out experiment.Outcome, rec *Recorder) (string, error) {
	if out.Err != nil {
		return "", fmt.Errorf("storage: refusing to save failed run: %w", out.Err)
	}
	runID := fmt.Sprintf("%s_%d", scn.Name, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)
	if err := os.MkdirAll(runDir, 0o755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Scenario:  scn.Name,
		Timestamp: time.Now(),
		Scheme:    out.Label,
		Dims:      scn.Grid.Dims,
		Spacing:   scn.Grid.Spacing,
		Origin:    scn.Grid.Origin,
		CFL:       scn.CFL,
		Dt:        scn.Dt,
		Duration:  scn.Duration,
		Seed:      scn.Seed,
		Steps:     out.Steps,
		SubSteps:  out.SubSteps,
		Metrics:   out.Metrics,
	}
	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()
	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	frames := out.Frames
	times := out.FrameTimes
	if out.Final.Len() > 0 {
		frames = append(append([]field.Field(nil), frames...), out.Final)
		times = append(append([]float64(nil), times...), out.Time)
	}
	csvFile, err := os.Create(filepath.Join(runDir, "frames.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()
	if err := WriteFrames(csvFile, frames, times); err != nil {
		return "", err
	}

	if rec != nil {
		seriesFile, err := os.Create(filepath.Join(runDir, "series.csv"))
		if err != nil {
			return "", err
		}
		defer seriesFile.Close()
		if err := rec.WriteCSV(seriesFile); err != nil {
			return "", err
		}
	}
	return runID, nil
}

// List returns the metadata of every stored run, sorted by ID. Corrupt or
// foreign directories are skipped.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		data, err := os.ReadFile(filepath.Join(s.baseDir, entry.Name(), "metadata.json"))
		if err != nil {
			continue
		}
		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}
		runs = append(runs, meta)
	}
	sort.Slice(runs, func(i, j int) bool { return runs[i].ID < runs[j].ID })
	return runs, nil
}

// Load reads one run's metadata.
func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}
	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadFrames reads frames.csv back as raw rows plus their times. Rows are
// flat cell values; reshape with the metadata's Dims.
func (s *Store) LoadFrames(runID string) ([][]float64, []float64, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "frames.csv"))
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, err
	}
	if len(records) < 2 {
		return [][]float64{}, []float64{}, nil
	}

	times := make([]float64, 0, len(records)-1)
	frames := make([][]float64, 0, len(records)-1)
	for _, record := range records[1:] {
		if len(record) < 2 {
			continue
		}
		t, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			continue
		}
		row := make([]float64, 0, len(record)-1)
		for _, cell := range record[1:] {
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				continue
			}
			row = append(row, v)
		}
		times = append(times, t)
		frames = append(frames, row)
	}
	return frames, times, nil
}

// WriteFrames streams frames as csv: a header row, then one row per frame
// of time followed by every cell value. Values use the shortest exact
// representation so a round trip through LoadFrames is lossless.
func WriteFrames(w io.Writer, frames []field.Field, times []float64) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if len(frames) == 0 {
		return cw.Write([]string{"time"})
	}
	header := make([]string, 0, frames[0].Len()+1)
	header = append(header, "time")
	for i := 0; i < frames[0].Len(); i++ {
		header = append(header, fmt.Sprintf("c%d", i))
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	row := make([]string, len(header))
	for fi, f := range frames {
		t := 0.0
		if fi < len(times) {
			t = times[fi]
		}
		row[0] = strconv.FormatFloat(t, 'g', -1, 64)
		for i, v := range f.Data() {
			row[i+1] = strconv.FormatFloat(v, 'g', -1, 64)
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
