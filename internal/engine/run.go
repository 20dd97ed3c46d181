package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/vkarel/advlab/internal/field"
)

// Result collects the output of a Run: sampled frames, the final state and
// the metric reductions. Frames own their cells; only Final is cheapish,
// it is still a copy.
type Result struct {
	Times      []float64
	Frames     []field.Field
	FrameTimes []float64
	Final      field.Field
	Metrics    map[string]float64
	Steps      int
	SubSteps   int
	Elapsed    time.Duration
}

// Run advances automatically until duration simulation time has passed,
// observing metrics after every step and sampling frames per
// Config.SnapshotEvery. The context cancels between steps, never inside
// one.
func (in *Integrator) Run(ctx context.Context, duration float64) (*Result, error) {
	if err := in.ready(); err != nil {
		return nil, err
	}
	if duration <= 0 {
		return nil, fmt.Errorf("engine: run duration %v: %w", duration, field.ErrInvalidTimeStep)
	}

	start := in.clock.Time()
	startSubs := in.clock.SubSteps()
	began := time.Now()

	res := &Result{Metrics: make(map[string]float64)}
	for _, m := range in.metrics {
		m.Reset()
		m.Observe(in.grid.Current(), start)
	}
	for _, o := range in.observers {
		o.Observe(in.grid.Current(), start)
	}

	step := 0
	for in.clock.Time()-start < duration {
		select {
		case <-ctx.Done():
			in.finish(res, start, startSubs, began)
			return res, ctx.Err()
		default:
		}

		if err := in.StepAuto(); err != nil {
			in.finish(res, start, startSubs, began)
			return res, err
		}
		step++

		res.Times = append(res.Times, in.clock.Time())
		if in.cfg.SnapshotEvery > 0 && step%in.cfg.SnapshotEvery == 0 {
			res.Frames = append(res.Frames, in.grid.Current().Clone())
			res.FrameTimes = append(res.FrameTimes, in.clock.Time())
		}
	}

	in.finish(res, start, startSubs, began)
	return res, nil
}

func (in *Integrator) finish(res *Result, start float64, startSubs int, began time.Time) {
	res.Final = in.grid.Current().Clone()
	res.Steps = len(res.Times)
	res.SubSteps = in.clock.SubSteps() - startSubs
	res.Elapsed = time.Since(began)
	for _, m := range in.metrics {
		res.Metrics[m.Name()] = m.Value()
	}
}
