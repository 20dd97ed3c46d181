package experiment

import (
	"context"
	"math"
	"testing"

	"github.com/vkarel/advlab/internal/scenario"
)

func smallHill(n int, duration float64) *scenario.Scenario {
	return &scenario.Scenario{
		Name:       "hill",
		Grid:       scenario.GridConfig{Dims: []int{n}, Spacing: []float64{1}},
		Boundaries: []scenario.BoundaryConfig{{Kind: "periodic"}},
		Initial:    scenario.InitialConfig{Kind: "gaussian", Amplitude: 1, Center: []float64{float64(n) / 4}, Width: 4},
		Flow:       scenario.FlowConfig{Kind: "uniform", Velocity: []float64{1}},
		Scheme:     "upwind",
		CFL:        0.8,
		MaxStep:    1,
		Duration:   duration,
	}
}

func TestExecuteExplicitDt(t *testing.T) {
	s := smallHill(32, 2)
	s.Dt = 0.25
	out := Execute(context.Background(), s, "")
	if out.Err != nil {
		t.Fatalf("Execute() error = %v", out.Err)
	}
	if out.Steps != 8 {
		t.Errorf("Steps = %d, want 8", out.Steps)
	}
	if out.SubSteps != 8 {
		t.Errorf("SubSteps = %d, want 8", out.SubSteps)
	}
	if out.Label != "hill" {
		t.Errorf("Label = %q, want scenario name", out.Label)
	}
	if _, ok := out.Metrics["mass_drift"]; !ok {
		t.Error("standard metrics missing mass_drift")
	}
}

func TestExecuteModulatedFlow(t *testing.T) {
	s := smallHill(32, 4)
	s.Flow.Modulate = scenario.ModulateConfig{Kind: "ramp", Period: 4, Floor: 0.5}
	out := Execute(context.Background(), s, "ramped")
	if out.Err != nil {
		t.Fatalf("Execute() error = %v", out.Err)
	}
	if out.Steps < 4 {
		t.Errorf("Steps = %d, want at least 4", out.Steps)
	}
	if out.Time < 4 {
		t.Errorf("Time = %v, want >= duration", out.Time)
	}
}

func TestExecuteReportsBuildErrors(t *testing.T) {
	s := smallHill(32, 1)
	s.Scheme = "spectral"
	out := Execute(context.Background(), s, "")
	if out.Err == nil {
		t.Fatal("Execute() with unknown scheme: Err = nil, want error")
	}
}

func TestCompareRunsEveryScheme(t *testing.T) {
	outs := Compare(context.Background(), smallHill(64, 8), nil)
	if len(outs) != len(DefaultSchemes) {
		t.Fatalf("Compare() returned %d outcomes, want %d", len(outs), len(DefaultSchemes))
	}
	for i, out := range outs {
		if out.Label != DefaultSchemes[i] {
			t.Errorf("outcome %d label = %q, want %q", i, out.Label, DefaultSchemes[i])
		}
		if out.Err != nil {
			t.Errorf("%s: Err = %v", out.Label, out.Err)
		}
		if out.Steps == 0 {
			t.Errorf("%s: Steps = 0", out.Label)
		}
	}
	// The flux forms conserve mass on a periodic domain.
	for _, i := range []int{0, 1, 2} {
		if drift := outs[i].Metrics["mass_drift"]; drift > 1e-10 {
			t.Errorf("%s: mass_drift = %v, want ~0", outs[i].Label, drift)
		}
	}
	if outs[2].Scheme != "lax-wendroff" {
		t.Errorf("limited entry Scheme = %q, want base scheme name", outs[2].Scheme)
	}
}

func TestSweepVelocity(t *testing.T) {
	sw := &Sweep{Param: "velocity", Min: 0.5, Max: 2, Steps: 4}
	points, err := sw.Run(context.Background(), smallHill(64, 8))
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(points) != 4 {
		t.Fatalf("got %d points, want 4", len(points))
	}
	for i, p := range points {
		want := 0.5 + float64(i)*0.5
		if p.Value != want {
			t.Errorf("point %d value = %v, want %v", i, p.Value, want)
		}
		if p.Err != nil {
			t.Errorf("point %d: Err = %v", i, p.Err)
		}
	}
	if points[3].Steps <= points[0].Steps {
		t.Errorf("faster flow should need more steps: %d vs %d", points[3].Steps, points[0].Steps)
	}
}

func TestSweepValidation(t *testing.T) {
	sw := &Sweep{Param: "cfl", Min: 0.1, Max: 0.9, Steps: 1}
	if _, err := sw.Run(context.Background(), smallHill(16, 1)); err == nil {
		t.Error("Steps=1 sweep: err = nil, want error")
	}
	sw = &Sweep{Param: "viscosity", Min: 0, Max: 1, Steps: 3}
	if _, err := sw.Run(context.Background(), smallHill(16, 1)); err == nil {
		t.Error("unknown parameter: err = nil, want error")
	}
}

func TestTrialsAreSeeded(t *testing.T) {
	base := smallHill(64, 16)
	cfg := TrialsConfig{Count: 6, Perturbation: 0.2, Seed: 11}
	r1, stable1 := RunTrials(context.Background(), base, cfg)
	r2, stable2 := RunTrials(context.Background(), base, cfg)
	if len(r1) != 6 || len(r2) != 6 {
		t.Fatalf("trial counts = %d, %d, want 6", len(r1), len(r2))
	}
	if stable1 != 6 {
		t.Errorf("stable count = %d, want all 6", stable1)
	}
	if stable1 != stable2 {
		t.Errorf("stable counts differ between identical ensembles: %d vs %d", stable1, stable2)
	}
	for i := range r1 {
		if math.Float64bits(r1[i].FlowScale) != math.Float64bits(r2[i].FlowScale) {
			t.Fatalf("trial %d flow scale differs between identical ensembles", i)
		}
		if r1[i].Metrics["mass_drift"] != r2[i].Metrics["mass_drift"] {
			t.Fatalf("trial %d metrics differ between identical ensembles", i)
		}
	}
}

func TestTuneCFLFindsStabilityEdge(t *testing.T) {
	s := smallHill(64, 512)
	s.MaxStep = 10 // let the CFL number govern the step
	s.Initial = scenario.InitialConfig{Kind: "random", Amplitude: 1}
	s.Seed = 1
	best, points, err := TuneCFL(context.Background(), s, 0.25, 2.0, 8)
	if err != nil {
		t.Fatalf("TuneCFL() error = %v", err)
	}
	// Upwind at unit speed and spacing is stable exactly up to CFL 1.
	if best != 1.0 {
		t.Errorf("best CFL = %v, want 1.0", best)
	}
	if len(points) != 16 {
		t.Errorf("evaluated %d points, want 8 coarse + 8 fine", len(points))
	}
}

func TestTuneCFLUnboundedScheme(t *testing.T) {
	s := smallHill(32, 8)
	s.Scheme = "semi-lagrangian"
	best, _, err := TuneCFL(context.Background(), s, 0.5, 4.0, 3)
	if err != nil {
		t.Fatalf("TuneCFL() error = %v", err)
	}
	if best != 4.0 {
		t.Errorf("best CFL = %v, want top of range for an unconditionally stable scheme", best)
	}
}

func TestTuneCFLValidation(t *testing.T) {
	if _, _, err := TuneCFL(context.Background(), smallHill(16, 1), 1, 0.5, 4); err == nil {
		t.Error("reversed range: err = nil, want error")
	}
	if _, _, err := TuneCFL(context.Background(), smallHill(16, 1), 0.5, 1, 1); err == nil {
		t.Error("one sample: err = nil, want error")
	}
}
