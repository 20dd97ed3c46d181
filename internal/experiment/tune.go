package experiment

import (
	"context"
	"fmt"

	"github.com/vkarel/advlab/internal/scenario"
)

// TuneCFL searches [lo, hi] for the largest CFL number at which the
// scenario stays bounded, scanning a coarse grid and then refining once
// around the stability edge. It returns the best value it found along
// with every point it evaluated. Schemes with no stability bound tune to
// hi trivially.
func TuneCFL(ctx context.Context, base *scenario.Scenario, lo, hi float64, samples int) (float64, []SweepPoint, error) {
	if !(lo > 0) || !(hi > lo) {
		return 0, nil, fmt.Errorf("experiment: tune range [%g, %g] is not increasing and positive", lo, hi)
	}
	if samples < 2 {
		return 0, nil, fmt.Errorf("experiment: tune needs at least 2 samples, got %d", samples)
	}

	scan := func(lo, hi float64) ([]SweepPoint, error) {
		sw := &Sweep{Param: "cfl", Min: lo, Max: hi, Steps: samples}
		return sw.Run(ctx, base)
	}

	points, err := scan(lo, hi)
	if err != nil {
		return 0, points, err
	}
	best, edge := stabilityEdge(points)
	if best < 0 {
		// Nothing in range was stable.
		return 0, points, nil
	}
	if edge < 0 {
		// Stable all the way up, nothing to refine against.
		return points[best].Value, points, nil
	}

	fine, err := scan(points[best].Value, points[edge].Value)
	if err != nil {
		return points[best].Value, append(points, fine...), err
	}
	points = append(points, fine...)
	if b, _ := stabilityEdge(fine); b >= 0 && fine[b].Value > points[best].Value {
		return fine[b].Value, points, nil
	}
	return points[best].Value, points, nil
}

// stabilityEdge finds the last stable point before the first unstable one,
// returning -1 when no point is stable and edge -1 when none is unstable.
func stabilityEdge(points []SweepPoint) (best, edge int) {
	best, edge = -1, -1
	for i, p := range points {
		if stable(p.Outcome) {
			if edge < 0 {
				best = i
			}
		} else if best >= 0 && edge < 0 {
			edge = i
		}
	}
	return best, edge
}
