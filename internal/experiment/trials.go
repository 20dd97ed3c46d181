package experiment

import (
	"context"
	"math/rand"
	"time"

	"github.com/vkarel/advlab/internal/scenario"
)

// TrialsConfig describes a randomized ensemble: Count runs of the base
// scenario with the flow speed and initial amplitude jittered by up to
// Perturbation (as a fraction) around their configured values.
type TrialsConfig struct {
	Count        int
	Perturbation float64
	Seed         int64
}

// TrialResult is one ensemble member.
type TrialResult struct {
	Trial     int
	FlowScale float64
	AmpScale  float64
	Stable    bool
	Outcome
}

// RunTrials executes the ensemble sequentially and reports per-trial
// results plus the number that stayed bounded. A zero seed draws one from
// the clock; any other seed reproduces the ensemble exactly.
func RunTrials(ctx context.Context, base *scenario.Scenario, cfg TrialsConfig) ([]TrialResult, int) {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	results := make([]TrialResult, 0, cfg.Count)
	stableCount := 0
	for trial := 0; trial < cfg.Count; trial++ {
		select {
		case <-ctx.Done():
			return results, stableCount
		default:
		}

		fs := 1 + (rng.Float64()-0.5)*2*cfg.Perturbation
		as := 1 + (rng.Float64()-0.5)*2*cfg.Perturbation
		s := base.Clone()
		for i := range s.Flow.Velocity {
			s.Flow.Velocity[i] *= fs
		}
		s.Flow.Omega *= fs
		s.Flow.Rate *= fs
		if s.Initial.Amplitude == 0 {
			s.Initial.Amplitude = 1
		}
		s.Initial.Amplitude *= as
		s.Seed = rng.Int63()

		tr := TrialResult{Trial: trial, FlowScale: fs, AmpScale: as}
		tr.Outcome = Execute(ctx, s, s.Name)
		tr.Stable = stable(tr.Outcome)
		if tr.Stable {
			stableCount++
		}
		results = append(results, tr)
	}
	return results, stableCount
}
