package field

import (
	"fmt"
	"math"
)

// MaxRank is the highest grid rank the package supports.
const MaxRank = 3

// Grid is a structured 1D, 2D or 3D grid. It owns a two-slot arena for the
// advected scalar: the current slot holds the readable solution, the next
// slot receives the update, and Swap exchanges them by flipping an index.
//
// Cell data is row-major with axis 0 fastest: index = x + y*nx + z*nx*ny.
type Grid struct {
	dims    [MaxRank]int
	spacing [MaxRank]float64
	origin  [MaxRank]float64
	stride  [MaxRank]int
	rank    int
	cells   int

	arena []float64
	slots [2][]float64
	front int
}

// NewGrid builds a grid from per-axis extents, spacings and origins.
// A nil spacing defaults every axis to 1, a nil origin to 0.
func NewGrid(dims []int, spacing, origin []float64) (*Grid, error) {
	rank := len(dims)
	if rank < 1 || rank > MaxRank {
		return nil, fmt.Errorf("field: rank %d: %w", rank, ErrInvalidDimension)
	}
	if spacing != nil && len(spacing) != rank {
		return nil, fmt.Errorf("field: %d spacings for rank %d: %w", len(spacing), rank, ErrShapeMismatch)
	}
	if origin != nil && len(origin) != rank {
		return nil, fmt.Errorf("field: %d origins for rank %d: %w", len(origin), rank, ErrShapeMismatch)
	}

	g := &Grid{rank: rank}
	for ax := 0; ax < rank; ax++ {
		if dims[ax] <= 0 {
			return nil, fmt.Errorf("field: axis %d extent %d: %w", ax, dims[ax], ErrInvalidDimension)
		}
		g.dims[ax] = dims[ax]
		g.spacing[ax] = 1
		if spacing != nil {
			h := spacing[ax]
			if h <= 0 || math.IsNaN(h) || math.IsInf(h, 0) {
				return nil, fmt.Errorf("field: axis %d spacing %v: %w", ax, h, ErrInvalidDimension)
			}
			g.spacing[ax] = h
		}
		if origin != nil {
			g.origin[ax] = origin[ax]
		}
	}
	g.alloc()
	return g, nil
}

// NewUniform builds a grid with the same spacing on every axis and a zero
// origin.
func NewUniform(h float64, dims ...int) (*Grid, error) {
	spacing := make([]float64, len(dims))
	for i := range spacing {
		spacing[i] = h
	}
	return NewGrid(dims, spacing, nil)
}

func (g *Grid) alloc() {
	g.cells = 1
	for ax := 0; ax < g.rank; ax++ {
		g.stride[ax] = g.cells
		g.cells *= g.dims[ax]
	}
	g.arena = make([]float64, 2*g.cells)
	g.slots[0] = g.arena[:g.cells:g.cells]
	g.slots[1] = g.arena[g.cells:]
	g.front = 0
}

// Resize reallocates the arena for new extents of the same rank and
// zero-fills both slots. Any fields previously obtained from the grid are
// invalidated.
func (g *Grid) Resize(dims []int) error {
	if len(dims) != g.rank {
		return fmt.Errorf("field: resize rank %d on rank-%d grid: %w", len(dims), g.rank, ErrInvalidDimension)
	}
	for ax, d := range dims {
		if d <= 0 {
			return fmt.Errorf("field: axis %d extent %d: %w", ax, d, ErrInvalidDimension)
		}
	}
	for ax, d := range dims {
		g.dims[ax] = d
	}
	g.alloc()
	return nil
}

func (g *Grid) Rank() int  { return g.rank }
func (g *Grid) Cells() int { return g.cells }

// Dim reports the extent of one axis.
func (g *Grid) Dim(ax int) int { return g.dims[ax] }

// Stride reports the flat-index stride of one axis.
func (g *Grid) Stride(ax int) int { return g.stride[ax] }

// Spacing reports the cell size along one axis.
func (g *Grid) Spacing(ax int) float64 { return g.spacing[ax] }

// Origin reports the world coordinate of node 0 on one axis.
func (g *Grid) Origin(ax int) float64 { return g.origin[ax] }

// Dims returns a copy of the per-axis extents.
func (g *Grid) Dims() []int {
	out := make([]int, g.rank)
	copy(out, g.dims[:g.rank])
	return out
}

// Spacings returns a copy of the per-axis cell sizes.
func (g *Grid) Spacings() []float64 {
	out := make([]float64, g.rank)
	copy(out, g.spacing[:g.rank])
	return out
}

// Origins returns a copy of the per-axis origin coordinates.
func (g *Grid) Origins() []float64 {
	out := make([]float64, g.rank)
	copy(out, g.origin[:g.rank])
	return out
}

// Index flattens an in-range coordinate. No bounds check is performed.
func (g *Grid) Index(coord ...int) int {
	idx := 0
	for ax, c := range coord {
		idx += c * g.stride[ax]
	}
	return idx
}

// Coords expands a flat index into out, which must have length Rank.
func (g *Grid) Coords(i int, out []int) {
	for ax := 0; ax < g.rank; ax++ {
		out[ax] = i % g.dims[ax]
		i /= g.dims[ax]
	}
}

// World converts a grid-space coordinate on one axis to world space.
func (g *Grid) World(ax int, i int) float64 {
	return g.origin[ax] + float64(i)*g.spacing[ax]
}

// Current returns the readable solution slot.
func (g *Grid) Current() Field { return Field{grid: g, data: g.slots[g.front]} }

// Next returns the writable update slot.
func (g *Grid) Next() Field { return Field{grid: g, data: g.slots[g.front^1]} }

// Swap exchanges the current and next slots. O(1), no cell data moves.
func (g *Grid) Swap() { g.front ^= 1 }

// SameShape reports whether two grids agree on rank and extents.
func (g *Grid) SameShape(o *Grid) bool {
	if o == nil || g.rank != o.rank {
		return false
	}
	for ax := 0; ax < g.rank; ax++ {
		if g.dims[ax] != o.dims[ax] {
			return false
		}
	}
	return true
}

// Sample reads the current slot at an integer coordinate, resolving
// out-of-range axes through the boundary set.
func (g *Grid) Sample(bc Boundaries, coord ...int) (float64, error) {
	return g.Current().Sample(bc, coord...)
}
