package metrics

import (
	"math"

	"github.com/vkarel/advlab/internal/field"
)

// Boundedness reports the fraction of observed steps whose extreme cell
// magnitude stayed under the threshold. A run that blows up mid-way and
// wraps back into range still scores below one.
type Boundedness struct {
	name       string
	threshold  float64
	violations int
	samples    int
}

func NewBoundedness(threshold float64) *Boundedness {
	return &Boundedness{name: "boundedness", threshold: threshold}
}

func (b *Boundedness) Name() string { return b.name }

func (b *Boundedness) Observe(f field.Field, t float64) {
	b.samples++
	lo, hi := f.MinMax()
	if math.Max(math.Abs(lo), math.Abs(hi)) > b.threshold || !f.IsValid() {
		b.violations++
	}
}

func (b *Boundedness) Value() float64 {
	if b.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(b.violations)/float64(b.samples)
}

func (b *Boundedness) Reset() {
	b.violations = 0
	b.samples = 0
}
