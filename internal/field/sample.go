package field

import (
	"fmt"
	"math"
)

// splitAxis decomposes a continuous coordinate into the lower bracketing
// node and the fraction toward the next one. t == 0 means the position
// lies exactly on a node.
func splitAxis(x float64) (i0 int, t float64) {
	f := math.Floor(x)
	return int(f), x - f
}

func resolveAxis(p Policy, i, n int) (int, bool) {
	if i >= 0 && i < n {
		return i, true
	}
	return p.Resolve(i, n)
}

// SampleAt interpolates the field at a continuous position in grid index
// space: linear, bilinear or trilinear over the bracketing nodes, each
// resolved through the boundary set. The result is continuous across cell
// boundaries and reduces exactly to the stored value at integer positions.
// Only a strict fixed policy can make it fail, with ErrOutOfDomain.
func (f Field) SampleAt(bc Boundaries, pos []float64) (float64, error) {
	g := f.grid
	if len(pos) != g.rank {
		return 0, fmt.Errorf("field: %d position components for rank %d: %w", len(pos), g.rank, ErrShapeMismatch)
	}
	switch g.rank {
	case 1:
		return f.sample1(bc, pos[0])
	case 2:
		return f.sample2(bc, pos[0], pos[1])
	default:
		return f.sample3(bc, pos[0], pos[1], pos[2])
	}
}

func (f Field) node1(bc Boundaries, ix int) (float64, error) {
	jx, ok := resolveAxis(bc[0], ix, f.grid.dims[0])
	if !ok {
		return bc[0].Outside()
	}
	return f.data[jx], nil
}

func (f Field) node2(bc Boundaries, ix, iy int) (float64, error) {
	g := f.grid
	jx, ok := resolveAxis(bc[0], ix, g.dims[0])
	if !ok {
		return bc[0].Outside()
	}
	jy, ok := resolveAxis(bc[1], iy, g.dims[1])
	if !ok {
		return bc[1].Outside()
	}
	return f.data[jx+jy*g.stride[1]], nil
}

func (f Field) node3(bc Boundaries, ix, iy, iz int) (float64, error) {
	g := f.grid
	jx, ok := resolveAxis(bc[0], ix, g.dims[0])
	if !ok {
		return bc[0].Outside()
	}
	jy, ok := resolveAxis(bc[1], iy, g.dims[1])
	if !ok {
		return bc[1].Outside()
	}
	jz, ok := resolveAxis(bc[2], iz, g.dims[2])
	if !ok {
		return bc[2].Outside()
	}
	return f.data[jx+jy*g.stride[1]+jz*g.stride[2]], nil
}

func (f Field) sample1(bc Boundaries, x float64) (float64, error) {
	ix, tx := splitAxis(x)
	v0, err := f.node1(bc, ix)
	if err != nil || tx == 0 {
		return v0, err
	}
	v1, err := f.node1(bc, ix+1)
	if err != nil {
		return 0, err
	}
	return (1-tx)*v0 + tx*v1, nil
}

// lineAt2 interpolates along x within one y-row.
func (f Field) lineAt2(bc Boundaries, ix int, tx float64, iy int) (float64, error) {
	v0, err := f.node2(bc, ix, iy)
	if err != nil || tx == 0 {
		return v0, err
	}
	v1, err := f.node2(bc, ix+1, iy)
	if err != nil {
		return 0, err
	}
	return (1-tx)*v0 + tx*v1, nil
}

func (f Field) sample2(bc Boundaries, x, y float64) (float64, error) {
	ix, tx := splitAxis(x)
	iy, ty := splitAxis(y)
	v0, err := f.lineAt2(bc, ix, tx, iy)
	if err != nil || ty == 0 {
		return v0, err
	}
	v1, err := f.lineAt2(bc, ix, tx, iy+1)
	if err != nil {
		return 0, err
	}
	return (1-ty)*v0 + ty*v1, nil
}

// planeAt3 interpolates bilinearly within one z-plane.
func (f Field) planeAt3(bc Boundaries, ix int, tx float64, iy int, ty float64, iz int) (float64, error) {
	line := func(jy int) (float64, error) {
		v0, err := f.node3(bc, ix, jy, iz)
		if err != nil || tx == 0 {
			return v0, err
		}
		v1, err := f.node3(bc, ix+1, jy, iz)
		if err != nil {
			return 0, err
		}
		return (1-tx)*v0 + tx*v1, nil
	}
	v0, err := line(iy)
	if err != nil || ty == 0 {
		return v0, err
	}
	v1, err := line(iy + 1)
	if err != nil {
		return 0, err
	}
	return (1-ty)*v0 + ty*v1, nil
}

func (f Field) sample3(bc Boundaries, x, y, z float64) (float64, error) {
	ix, tx := splitAxis(x)
	iy, ty := splitAxis(y)
	iz, tz := splitAxis(z)
	v0, err := f.planeAt3(bc, ix, tx, iy, ty, iz)
	if err != nil || tz == 0 {
		return v0, err
	}
	v1, err := f.planeAt3(bc, ix, tx, iy, ty, iz+1)
	if err != nil {
		return 0, err
	}
	return (1-tz)*v0 + tz*v1, nil
}
