package metrics

import (
	"math"

	"github.com/vkarel/advlab/internal/field"
)

// Overshoot tracks how far the solution escapes the value range of its
// first observation. Zero for schemes that honor the maximum principle;
// the unlimited Lax-Wendroff rings visibly here.
type Overshoot struct {
	name    string
	lo, hi  float64
	worst   float64
	samples int
}

func NewOvershoot() *Overshoot {
	return &Overshoot{name: "overshoot"}
}

func (o *Overshoot) Name() string { return o.name }

func (o *Overshoot) Observe(f field.Field, t float64) {
	lo, hi := f.MinMax()
	if o.samples == 0 {
		o.lo, o.hi = lo, hi
	}
	o.samples++

	if d := o.lo - lo; d > o.worst {
		o.worst = d
	}
	if d := hi - o.hi; d > o.worst {
		o.worst = d
	}
}

func (o *Overshoot) Value() float64 {
	return o.worst
}

func (o *Overshoot) Reset() {
	o.lo, o.hi = 0, 0
	o.worst = 0
	o.samples = 0
}

// Peak reports the current maximum cell value, a cheap probe for how much
// a scheme flattens a transported pulse.
type Peak struct {
	name string
	max  float64
}

func NewPeak() *Peak {
	return &Peak{name: "peak"}
}

func (p *Peak) Name() string { return p.name }

func (p *Peak) Observe(f field.Field, t float64) {
	_, p.max = f.MinMax()
}

func (p *Peak) Value() float64 { return p.max }

func (p *Peak) Reset() { p.max = math.Inf(-1) }
