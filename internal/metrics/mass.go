package metrics

import (
	"math"

	"github.com/vkarel/advlab/internal/field"
)

// MassDrift tracks the worst relative deviation of the discrete mass from
// its first observation. Conservative transport keeps it near zero;
// boundary in/outflow shows up immediately.
type MassDrift struct {
	name     string
	initial  float64
	maxDrift float64
	samples  int
}

func NewMassDrift() *MassDrift {
	return &MassDrift{name: "mass_drift"}
}

func (m *MassDrift) Name() string { return m.name }

func (m *MassDrift) Observe(f field.Field, t float64) {
	mass := f.Sum()
	if m.samples == 0 {
		m.initial = mass
	}
	m.samples++

	if m.initial != 0 {
		drift := math.Abs(mass-m.initial) / math.Abs(m.initial)
		m.maxDrift = math.Max(m.maxDrift, drift)
	} else {
		m.maxDrift = math.Max(m.maxDrift, math.Abs(mass))
	}
}

func (m *MassDrift) Value() float64 {
	return m.maxDrift
}

func (m *MassDrift) Reset() {
	m.initial = 0
	m.maxDrift = 0
	m.samples = 0
}
