package field

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// Field is a dense scalar view over a grid. The zero value is unusable;
// obtain fields from [Grid.Current], [Grid.Next] or [NewField]. Fields are
// cheap to copy by value and share the underlying cell data.
type Field struct {
	grid *Grid
	data []float64
}

// NewField allocates a standalone zero field on the grid geometry, outside
// the grid's two-slot arena. Velocity components and snapshots use this.
func NewField(g *Grid) Field {
	return Field{grid: g, data: make([]float64, g.cells)}
}

func (f Field) Grid() *Grid { return f.grid }

// Data returns the backing row-major cell slice.
func (f Field) Data() []float64 { return f.data }

func (f Field) Len() int { return len(f.data) }

// At reads an in-range coordinate. No bounds resolution; use Sample for
// coordinates that may fall outside the grid.
func (f Field) At(coord ...int) float64 {
	return f.data[f.grid.Index(coord...)]
}

// Set writes an in-range coordinate.
func (f Field) Set(v float64, coord ...int) {
	f.data[f.grid.Index(coord...)] = v
}

// Fill sets every cell to v.
func (f Field) Fill(v float64) {
	for i := range f.data {
		f.data[i] = v
	}
}

// CopyFrom copies cell data from a field of identical shape.
func (f Field) CopyFrom(src Field) error {
	if !f.grid.SameShape(src.grid) {
		return fmt.Errorf("field: copy between unlike grids: %w", ErrShapeMismatch)
	}
	copy(f.data, src.data)
	return nil
}

// Clone returns a standalone copy of the field's cells.
func (f Field) Clone() Field {
	c := Field{grid: f.grid, data: make([]float64, len(f.data))}
	copy(c.data, f.data)
	return c
}

// IsValid reports whether every cell is finite.
func (f Field) IsValid() bool {
	for _, v := range f.data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// MinMax reports the extreme cell values.
func (f Field) MinMax() (lo, hi float64) {
	return floats.Min(f.data), floats.Max(f.data)
}

// Sum returns the cell total, the discrete mass up to a volume factor.
func (f Field) Sum() float64 {
	return floats.Sum(f.data)
}

// Sample reads the cell at an integer coordinate, resolving out-of-range
// axes through the boundary set. bc must carry one policy per grid axis.
func (f Field) Sample(bc Boundaries, coord ...int) (float64, error) {
	g := f.grid
	if len(coord) != g.rank {
		return 0, fmt.Errorf("field: %d coordinates for rank %d: %w", len(coord), g.rank, ErrShapeMismatch)
	}
	idx := 0
	for ax, c := range coord {
		n := g.dims[ax]
		if c < 0 || c >= n {
			j, ok := bc[ax].Resolve(c, n)
			if !ok {
				return bc[ax].Outside()
			}
			c = j
		}
		idx += c * g.stride[ax]
	}
	return f.data[idx], nil
}
