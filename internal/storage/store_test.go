package storage

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vkarel/advlab/internal/experiment"
	"github.com/vkarel/advlab/internal/scenario"
)

func finishedRun(t *testing.T) (*scenario.Scenario, experiment.Outcome, *Recorder) {
	t.Helper()
	s := &scenario.Scenario{
		Name:          "roundtrip",
		Grid:          scenario.GridConfig{Dims: []int{32}, Spacing: []float64{1}},
		Boundaries:    []scenario.BoundaryConfig{{Kind: "periodic"}},
		Initial:       scenario.InitialConfig{Kind: "gaussian", Amplitude: 1, Center: []float64{8}, Width: 3},
		Flow:          scenario.FlowConfig{Kind: "uniform", Velocity: []float64{1}},
		Scheme:        "upwind",
		CFL:           0.8,
		MaxStep:       1,
		Duration:      4,
		Seed:          42,
		SnapshotEvery: 2,
	}
	rec := NewRecorder()
	out := experiment.Execute(context.Background(), s, "", rec)
	if out.Err != nil {
		t.Fatalf("run failed: %v", out.Err)
	}
	return s, out, rec
}

func TestStoreSaveLoad(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	s, out, rec := finishedRun(t)
	runID, err := st.Save(s, out, rec)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if !strings.HasPrefix(runID, "roundtrip_") {
		t.Errorf("run id = %q, want scenario_unix form", runID)
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if meta.Scenario != "roundtrip" || meta.Seed != 42 {
		t.Errorf("metadata = %+v, want scenario roundtrip seed 42", meta)
	}
	if meta.Steps != out.Steps {
		t.Errorf("steps = %d, want %d", meta.Steps, out.Steps)
	}
	if _, ok := meta.Metrics["mass_drift"]; !ok {
		t.Error("metadata metrics missing mass_drift")
	}

	frames, times, err := st.LoadFrames(runID)
	if err != nil {
		t.Fatalf("load frames failed: %v", err)
	}
	// Snapshots plus the appended final state.
	if len(frames) != len(out.Frames)+1 {
		t.Fatalf("got %d frames, want %d", len(frames), len(out.Frames)+1)
	}
	if len(times) != len(frames) {
		t.Fatalf("got %d times for %d frames", len(times), len(frames))
	}
	last := frames[len(frames)-1]
	if len(last) != 32 {
		t.Fatalf("final frame has %d cells, want 32", len(last))
	}
	for i, v := range out.Final.Data() {
		if last[i] != v {
			t.Fatalf("cell %d = %v after round trip, want %v", i, last[i], v)
		}
	}
}

func TestStoreList(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected 0 runs, got %d", len(runs))
	}

	s, out, _ := finishedRun(t)
	if _, err := st.Save(s, out, nil); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	runs, err = st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 1 {
		t.Errorf("expected 1 run, got %d", len(runs))
	}
}

func TestStoreFileStructure(t *testing.T) {
	dir := t.TempDir()
	st := New(dir)
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	s, out, rec := finishedRun(t)
	runID, err := st.Save(s, out, rec)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	for _, name := range []string{"metadata.json", "frames.csv", "series.csv"} {
		if _, err := os.Stat(filepath.Join(dir, runID, name)); os.IsNotExist(err) {
			t.Errorf("%s not created", name)
		}
	}
}

func TestStoreRefusesFailedRuns(t *testing.T) {
	st := New(t.TempDir())
	s, out, _ := finishedRun(t)
	out.Err = context.Canceled
	if _, err := st.Save(s, out, nil); err == nil {
		t.Error("saving a failed run: err = nil, want error")
	}
}

func TestRecorderSeries(t *testing.T) {
	_, out, rec := finishedRun(t)
	if rec.Len() != out.Steps+1 {
		t.Errorf("recorder saw %d observations, want baseline + %d steps", rec.Len(), out.Steps)
	}
	var buf bytes.Buffer
	if err := rec.WriteCSV(&buf); err != nil {
		t.Fatalf("WriteCSV() error = %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if lines[0] != "time,mass,min,max" {
		t.Errorf("header = %q", lines[0])
	}
	if len(lines) != rec.Len()+1 {
		t.Errorf("csv has %d rows, want header + %d", len(lines), rec.Len())
	}
}

func TestExportJSON(t *testing.T) {
	s, out, _ := finishedRun(t)
	var buf bytes.Buffer
	if err := ExportJSON(&buf, s, out); err != nil {
		t.Fatalf("ExportJSON() error = %v", err)
	}
	for _, want := range []string{`"scenario": "roundtrip"`, `"dims"`, `"final"`, `"mass_drift"`} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("export missing %s", want)
		}
	}

	path := filepath.Join(t.TempDir(), "run.csv")
	if err := ExportCSVFile(path, out); err != nil {
		t.Fatalf("ExportCSVFile() error = %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "time,c0,c1") {
		t.Errorf("csv header = %q", strings.SplitN(string(data), "\n", 2)[0])
	}
}
