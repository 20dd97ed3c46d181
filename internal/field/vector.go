package field

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// VectorField stores one scalar component per grid axis, each a standalone
// field on the same geometry. It carries the transporting velocity of a
// simulation and is owned separately from the grid's two-slot arena.
type VectorField struct {
	grid  *Grid
	comps []Field
}

// NewVectorField allocates a zero vector field on the grid geometry.
func NewVectorField(g *Grid) *VectorField {
	v := &VectorField{grid: g, comps: make([]Field, g.rank)}
	for ax := range v.comps {
		v.comps[ax] = NewField(g)
	}
	return v
}

func (v *VectorField) Grid() *Grid { return v.grid }
func (v *VectorField) Rank() int   { return len(v.comps) }

// Comp returns the component field along one axis.
func (v *VectorField) Comp(ax int) Field { return v.comps[ax] }

// Matches reports whether the field's geometry agrees with a grid.
func (v *VectorField) Matches(g *Grid) bool {
	return v.grid.SameShape(g) && len(v.comps) == g.rank
}

// MaxAbs reports the largest velocity magnitude over all components.
func (v *VectorField) MaxAbs() float64 {
	m := 0.0
	for _, c := range v.comps {
		lo, hi := floats.Min(c.data), floats.Max(c.data)
		m = math.Max(m, math.Max(math.Abs(lo), math.Abs(hi)))
	}
	return m
}

// MaxRate reports the largest per-cell sum of |v|/h over the axes, the
// inverse of the tightest admissible Courant time step. The axis rates add
// because an unsplit update drains a cell along every axis at once.
func (v *VectorField) MaxRate() float64 {
	rate := 0.0
	switch len(v.comps) {
	case 1:
		hx := v.grid.spacing[0]
		for _, u := range v.comps[0].data {
			if r := math.Abs(u) / hx; r > rate {
				rate = r
			}
		}
	case 2:
		hx, hy := v.grid.spacing[0], v.grid.spacing[1]
		ux, uy := v.comps[0].data, v.comps[1].data
		for i := range ux {
			if r := math.Abs(ux[i])/hx + math.Abs(uy[i])/hy; r > rate {
				rate = r
			}
		}
	default:
		hx, hy, hz := v.grid.spacing[0], v.grid.spacing[1], v.grid.spacing[2]
		ux, uy, uz := v.comps[0].data, v.comps[1].data, v.comps[2].data
		for i := range ux {
			r := math.Abs(ux[i])/hx + math.Abs(uy[i])/hy + math.Abs(uz[i])/hz
			if r > rate {
				rate = r
			}
		}
	}
	return rate
}

// Scale multiplies every component by f in place.
func (v *VectorField) Scale(f float64) {
	for _, c := range v.comps {
		floats.Scale(f, c.data)
	}
}

// CopyFrom copies all components from a field of identical shape.
func (v *VectorField) CopyFrom(src *VectorField) error {
	if !v.Matches(src.grid) || len(src.comps) != len(v.comps) {
		return fmt.Errorf("field: vector copy between unlike grids: %w", ErrShapeMismatch)
	}
	for ax := range v.comps {
		copy(v.comps[ax].data, src.comps[ax].data)
	}
	return nil
}

// Clone returns a standalone copy of the vector field.
func (v *VectorField) Clone() *VectorField {
	c := NewVectorField(v.grid)
	for ax := range v.comps {
		copy(c.comps[ax].data, v.comps[ax].data)
	}
	return c
}

// IsValid reports whether every component cell is finite.
func (v *VectorField) IsValid() bool {
	for _, c := range v.comps {
		if !c.IsValid() {
			return false
		}
	}
	return true
}

// SampleAt interpolates every component at a continuous grid-space
// position. out must have length Rank.
func (v *VectorField) SampleAt(bc Boundaries, pos, out []float64) error {
	for ax := range v.comps {
		val, err := v.comps[ax].SampleAt(bc, pos)
		if err != nil {
			return err
		}
		out[ax] = val
	}
	return nil
}
