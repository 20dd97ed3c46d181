package metrics

import (
	"gonum.org/v1/gonum/stat"

	"github.com/vkarel/advlab/internal/field"
)

// VarianceRetention reports the ratio of the current cell variance to the
// first observation's. Pure advection preserves variance; numerical
// diffusion decays it toward zero, so the ratio ranks scheme sharpness.
type VarianceRetention struct {
	name    string
	initial float64
	current float64
	samples int
}

func NewVarianceRetention() *VarianceRetention {
	return &VarianceRetention{name: "variance_retention"}
}

func (v *VarianceRetention) Name() string { return v.name }

func (v *VarianceRetention) Observe(f field.Field, t float64) {
	vr := stat.Variance(f.Data(), nil)
	if v.samples == 0 {
		v.initial = vr
	}
	v.samples++
	v.current = vr
}

func (v *VarianceRetention) Value() float64 {
	if v.initial == 0 {
		return 0
	}
	return v.current / v.initial
}

func (v *VarianceRetention) Reset() {
	v.initial = 0
	v.current = 0
	v.samples = 0
}
