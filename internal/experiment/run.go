package experiment

import (
	"context"
	"math"
	"time"

	"github.com/vkarel/advlab/internal/engine"
	"github.com/vkarel/advlab/internal/field"
	"github.com/vkarel/advlab/internal/metrics"
	"github.com/vkarel/advlab/internal/scenario"
)

// Outcome summarizes one finished run. Err is set instead of returned so
// that batch drivers (Compare, Sweep, Trials) can report partial failures
// alongside the runs that succeeded.
type Outcome struct {
	Label      string
	Scheme     string
	Steps      int
	SubSteps   int
	Time       float64
	Elapsed    time.Duration
	Metrics    map[string]float64
	Final      field.Field
	Frames     []field.Field
	FrameTimes []float64
	Err        error
}

// stableLimit is the cell magnitude past which a run counts as blown up.
const stableLimit = 1e6

func standardMetrics() []engine.Metric {
	return []engine.Metric{
		metrics.NewMassDrift(),
		metrics.NewOvershoot(),
		metrics.NewVarianceRetention(),
		metrics.NewPeak(),
		metrics.NewEnergyDrift(),
		metrics.NewBoundedness(stableLimit),
	}
}

// Execute builds the scenario and runs it to its configured duration,
// recording the standard metric set. Scenarios with an explicit dt or a
// flow modulator are stepped by hand; everything else goes through the
// integrator's automatic run loop.
func Execute(ctx context.Context, s *scenario.Scenario, label string, obs ...engine.Observer) Outcome {
	out := Outcome{Label: label, Scheme: s.Scheme, Metrics: make(map[string]float64)}
	if label == "" {
		out.Label = s.Name
	}

	in, err := s.Build()
	if err != nil {
		out.Err = err
		return out
	}
	ms := standardMetrics()
	for _, m := range ms {
		in.AddMetric(m)
	}
	for _, o := range obs {
		in.AddObserver(o)
	}

	mod := s.Flow.Modulate.Modulator()
	began := time.Now()
	if mod == nil && s.Dt == 0 {
		res, err := in.Run(ctx, s.Duration)
		out.Err = err
		if res != nil {
			out.Steps = res.Steps
			out.SubSteps = res.SubSteps
			out.Metrics = res.Metrics
			out.Final = res.Final
			out.Frames = res.Frames
			out.FrameTimes = res.FrameTimes
			out.Time = in.Clock().Time()
		}
		out.Elapsed = time.Since(began)
		return out
	}

	snap, err := in.Snapshot()
	if err != nil {
		out.Err = err
		return out
	}
	for _, m := range ms {
		m.Reset()
		m.Observe(snap.Data, 0)
	}
	for _, o := range obs {
		o.Observe(snap.Data, 0)
	}
	step := 0
	for in.Clock().Time() < s.Duration {
		select {
		case <-ctx.Done():
			out.Err = ctx.Err()
			return finishManual(out, in, ms, began)
		default:
		}
		if mod != nil {
			if err := in.SetFlowScale(mod.Scale(in.Clock().Time())); err != nil {
				out.Err = err
				return finishManual(out, in, ms, began)
			}
		}
		if s.Dt > 0 {
			err = in.Step(s.Dt)
		} else {
			err = in.StepAuto()
		}
		if err != nil {
			out.Err = err
			return finishManual(out, in, ms, began)
		}
		step++
		if s.SnapshotEvery > 0 && step%s.SnapshotEvery == 0 {
			if snap, err := in.Snapshot(); err == nil {
				out.Frames = append(out.Frames, snap.Data.Clone())
				out.FrameTimes = append(out.FrameTimes, in.Clock().Time())
			}
		}
	}
	return finishManual(out, in, ms, began)
}

func finishManual(out Outcome, in *engine.Integrator, ms []engine.Metric, began time.Time) Outcome {
	out.Steps = in.Clock().Steps()
	out.SubSteps = in.Clock().SubSteps()
	out.Time = in.Clock().Time()
	out.Elapsed = time.Since(began)
	for _, m := range ms {
		out.Metrics[m.Name()] = m.Value()
	}
	if snap, err := in.Snapshot(); err == nil {
		out.Final = snap.Data.Clone()
	}
	return out
}

// stable reports whether a finished run stayed bounded at every observed
// step, not just at the end.
func stable(out Outcome) bool {
	if out.Err != nil {
		return false
	}
	if !out.Final.IsValid() {
		return false
	}
	if b, ok := out.Metrics["boundedness"]; ok && b < 1 {
		return false
	}
	return math.Abs(out.Metrics["peak"]) < stableLimit
}
