package scenario

import "math"

// Modulator rescales the base flow as a function of time. Implementations
// are pure so that replaying a run reproduces the same velocity history.
type Modulator interface {
	Name() string
	Scale(t float64) float64
}

// Modulator builds the modulator the config describes, or nil when the
// flow is steady.
func (m ModulateConfig) Modulator() Modulator {
	period := m.Period
	if period <= 0 {
		period = 1
	}
	switch m.Kind {
	case "oscillate":
		return Oscillate{Period: period, Floor: m.Floor}
	case "ramp":
		return Ramp{Period: period, Floor: m.Floor}
	}
	return nil
}

// Oscillate swings the flow scale between Floor and 1 on a cosine, starting
// at full strength. A Floor of -1 reverses the flow each half period.
type Oscillate struct {
	Period float64
	Floor  float64
}

func (o Oscillate) Name() string { return "oscillate" }

func (o Oscillate) Scale(t float64) float64 {
	w := 0.5 * (1 + math.Cos(2*math.Pi*t/o.Period))
	return o.Floor + (1-o.Floor)*w
}

// Ramp raises the flow scale linearly from Floor to 1 over one period and
// holds it there.
type Ramp struct {
	Period float64
	Floor  float64
}

func (r Ramp) Name() string { return "ramp" }

func (r Ramp) Scale(t float64) float64 {
	return r.Floor + (1-r.Floor)*math.Min(1, t/r.Period)
}
