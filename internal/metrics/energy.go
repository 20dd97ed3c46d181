package metrics

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/vkarel/advlab/internal/field"
)

// EnergyDrift tracks the worst relative excursion of the discrete L2
// energy (sum of squared cell values times cell volume) from its first
// observation. Stable schemes only dissipate, so growth flags an unstable
// scheme/step pairing even when the run ends bounded.
type EnergyDrift struct {
	name     string
	initial  float64
	maxDrift float64
	samples  int
}

func NewEnergyDrift() *EnergyDrift {
	return &EnergyDrift{name: "energy_drift"}
}

func (e *EnergyDrift) Name() string { return e.name }

func (e *EnergyDrift) Observe(f field.Field, t float64) {
	g := f.Grid()
	vol := 1.0
	for ax := 0; ax < g.Rank(); ax++ {
		vol *= g.Spacing(ax)
	}
	energy := floats.Dot(f.Data(), f.Data()) * vol

	if e.samples == 0 {
		e.initial = energy
	}
	e.samples++

	if e.initial != 0 {
		drift := math.Abs(energy-e.initial) / math.Abs(e.initial)
		e.maxDrift = math.Max(e.maxDrift, drift)
	} else {
		e.maxDrift = math.Max(e.maxDrift, energy)
	}
}

func (e *EnergyDrift) Value() float64 {
	return e.maxDrift
}

func (e *EnergyDrift) Reset() {
	e.initial = 0
	e.maxDrift = 0
	e.samples = 0
}
