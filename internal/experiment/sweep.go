package experiment

import (
	"context"
	"fmt"

	"github.com/vkarel/advlab/internal/scenario"
)

// Sweep runs a scenario across a range of one parameter.
type Sweep struct {
	Param string
	Min   float64
	Max   float64
	Steps int
}

// SweepPoint is the outcome at one parameter value.
type SweepPoint struct {
	Value float64
	Outcome
}

// applyParam writes one sweep value into the scenario.
func applyParam(s *scenario.Scenario, param string, val float64) error {
	switch param {
	case "cfl":
		s.CFL = val
	case "max_step":
		s.MaxStep = val
	case "dt":
		s.Dt = val
	case "duration":
		s.Duration = val
	case "velocity":
		if len(s.Flow.Velocity) == 0 {
			s.Flow.Velocity = make([]float64, len(s.Grid.Dims))
		}
		for i := range s.Flow.Velocity {
			s.Flow.Velocity[i] = val
		}
	case "amplitude":
		s.Initial.Amplitude = val
	case "width":
		s.Initial.Width = val
	case "omega":
		s.Flow.Omega = val
	case "rate":
		s.Flow.Rate = val
	default:
		return fmt.Errorf("experiment: unknown sweep parameter: %s", param)
	}
	return nil
}

// Run executes the sweep sequentially from Min to Max inclusive. Points
// whose runs fail carry the error in their outcome.
func (sw *Sweep) Run(ctx context.Context, base *scenario.Scenario) ([]SweepPoint, error) {
	if sw.Steps < 2 {
		return nil, fmt.Errorf("experiment: sweep needs at least 2 steps, got %d", sw.Steps)
	}
	if err := applyParam(base.Clone(), sw.Param, sw.Min); err != nil {
		return nil, err
	}

	points := make([]SweepPoint, 0, sw.Steps)
	inc := (sw.Max - sw.Min) / float64(sw.Steps-1)
	for i := 0; i < sw.Steps; i++ {
		select {
		case <-ctx.Done():
			return points, ctx.Err()
		default:
		}
		val := sw.Min + float64(i)*inc
		s := base.Clone()
		if err := applyParam(s, sw.Param, val); err != nil {
			return points, err
		}
		label := fmt.Sprintf("%s=%.4g", sw.Param, val)
		points = append(points, SweepPoint{Value: val, Outcome: Execute(ctx, s, label)})
	}
	return points, nil
}
