package metrics

import (
	"math"
	"testing"

	"github.com/vkarel/advlab/internal/field"
)

func lineWith(t *testing.T, vals ...float64) field.Field {
	t.Helper()
	g, err := field.NewUniform(1.0, len(vals))
	if err != nil {
		t.Fatal(err)
	}
	f := g.Current()
	for i, v := range vals {
		f.Set(v, i)
	}
	return f
}

func TestMassDrift(t *testing.T) {
	m := NewMassDrift()
	m.Observe(lineWith(t, 1, 1, 1, 1), 0) // mass 4
	m.Observe(lineWith(t, 1, 1, 1, 1), 1)
	if got := m.Value(); got != 0 {
		t.Errorf("no drift expected, got %v", got)
	}

	m.Observe(lineWith(t, 1, 1, 1, 0), 2) // mass 3, drift 0.25
	if got := m.Value(); math.Abs(got-0.25) > 1e-15 {
		t.Errorf("drift = %v, want 0.25", got)
	}

	// drift is a high-water mark
	m.Observe(lineWith(t, 1, 1, 1, 1), 3)
	if got := m.Value(); math.Abs(got-0.25) > 1e-15 {
		t.Errorf("drift after recovery = %v, want 0.25", got)
	}

	m.Reset()
	if got := m.Value(); got != 0 {
		t.Errorf("after reset = %v", got)
	}
}

func TestOvershoot(t *testing.T) {
	o := NewOvershoot()
	o.Observe(lineWith(t, 0, 1, 0), 0)
	o.Observe(lineWith(t, 0, 0.9, 0.1), 1)
	if got := o.Value(); got != 0 {
		t.Errorf("in-range evolution gave overshoot %v", got)
	}

	o.Observe(lineWith(t, -0.05, 1.1, 0), 2)
	if got := o.Value(); math.Abs(got-0.1) > 1e-12 {
		t.Errorf("overshoot = %v, want 0.1", got)
	}
}

func TestPeak(t *testing.T) {
	p := NewPeak()
	p.Reset()
	p.Observe(lineWith(t, 0.2, 0.8, 0.4), 0)
	if got := p.Value(); got != 0.8 {
		t.Errorf("peak = %v, want 0.8", got)
	}
	p.Observe(lineWith(t, 0.1, 0.3, 0.2), 1)
	if got := p.Value(); got != 0.3 {
		t.Errorf("peak tracks the current frame, got %v", got)
	}
}

func TestVarianceRetention(t *testing.T) {
	v := NewVarianceRetention()
	v.Observe(lineWith(t, 0, 1, 0, 1), 0)
	if got := v.Value(); math.Abs(got-1) > 1e-15 {
		t.Errorf("initial retention = %v, want 1", got)
	}

	// a flattened profile keeps less variance
	v.Observe(lineWith(t, 0.4, 0.6, 0.4, 0.6), 1)
	got := v.Value()
	if got <= 0 || got >= 1 {
		t.Errorf("flattened retention = %v, want in (0, 1)", got)
	}

	v.Reset()
	if got := v.Value(); got != 0 {
		t.Errorf("after reset = %v", got)
	}
}
