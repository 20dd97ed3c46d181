package scheme

import (
	"github.com/vkarel/advlab/internal/compute"
	"github.com/vkarel/advlab/internal/field"
)

// Upwind is the first-order donor-cell scheme: each axis contributes a
// one-sided difference chosen by the local velocity sign, backward where
// the flow comes from the left and forward where it comes from the right.
// Diffusive but monotone inside the Courant bound.
type Upwind struct{}

func NewUpwind() *Upwind { return &Upwind{} }

func (*Upwind) Name() string   { return "upwind" }
func (*Upwind) CFLBound() bool { return true }

func (u *Upwind) Advect(dst, src field.Field, vel *field.VectorField, bc field.Boundaries, dt float64) error {
	if err := validate(dst, src, vel, bc, dt); err != nil {
		return err
	}
	g := src.Grid()
	d, s := dst.Data(), src.Data()
	switch g.Rank() {
	case 1:
		u.advect1(d, s, vel, g, bc, dt)
	case 2:
		u.advect2(d, s, vel, g, bc, dt)
	default:
		u.advect3(d, s, vel, g, bc, dt)
	}
	return nil
}

func (u *Upwind) advect1(d, s []float64, vel *field.VectorField, g *field.Grid, bc field.Boundaries, dt float64) {
	n := g.Dim(0)
	r := dt / g.Spacing(0)
	vx := vel.Comp(0).Data()
	px := bc[0]

	compute.ParallelFor(n, 2048, func(start, end int) {
		for i := start; i < end; i++ {
			c := s[i]
			acc := 0.0
			if v := vx[i]; v > 0 {
				acc = r * v * (c - axisValue(s, px, 0, 1, i-1, n))
			} else if v < 0 {
				acc = r * v * (axisValue(s, px, 0, 1, i+1, n) - c)
			}
			d[i] = c - acc
		}
	})
}

func (u *Upwind) advect2(d, s []float64, vel *field.VectorField, g *field.Grid, bc field.Boundaries, dt float64) {
	nx, ny := g.Dim(0), g.Dim(1)
	sy := g.Stride(1)
	rx, ry := dt/g.Spacing(0), dt/g.Spacing(1)
	vx := vel.Comp(0).Data()
	vy := vel.Comp(1).Data()
	px, py := bc[0], bc[1]

	compute.ParallelFor(ny, 8, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			row := y * sy
			for x := 0; x < nx; x++ {
				i := row + x
				c := s[i]
				acc := 0.0
				if v := vx[i]; v > 0 {
					acc += rx * v * (c - axisValue(s, px, row, 1, x-1, nx))
				} else if v < 0 {
					acc += rx * v * (axisValue(s, px, row, 1, x+1, nx) - c)
				}
				if v := vy[i]; v > 0 {
					acc += ry * v * (c - axisValue(s, py, x, sy, y-1, ny))
				} else if v < 0 {
					acc += ry * v * (axisValue(s, py, x, sy, y+1, ny) - c)
				}
				d[i] = c - acc
			}
		}
	})
}

func (u *Upwind) advect3(d, s []float64, vel *field.VectorField, g *field.Grid, bc field.Boundaries, dt float64) {
	nx, ny, nz := g.Dim(0), g.Dim(1), g.Dim(2)
	sy, sz := g.Stride(1), g.Stride(2)
	rx, ry, rz := dt/g.Spacing(0), dt/g.Spacing(1), dt/g.Spacing(2)
	vx := vel.Comp(0).Data()
	vy := vel.Comp(1).Data()
	vz := vel.Comp(2).Data()
	px, py, pz := bc[0], bc[1], bc[2]

	compute.ParallelFor(nz, 2, func(z0, z1 int) {
		for z := z0; z < z1; z++ {
			plane := z * sz
			for y := 0; y < ny; y++ {
				row := plane + y*sy
				for x := 0; x < nx; x++ {
					i := row + x
					c := s[i]
					acc := 0.0
					if v := vx[i]; v > 0 {
						acc += rx * v * (c - axisValue(s, px, row, 1, x-1, nx))
					} else if v < 0 {
						acc += rx * v * (axisValue(s, px, row, 1, x+1, nx) - c)
					}
					if v := vy[i]; v > 0 {
						acc += ry * v * (c - axisValue(s, py, plane+x, sy, y-1, ny))
					} else if v < 0 {
						acc += ry * v * (axisValue(s, py, plane+x, sy, y+1, ny) - c)
					}
					if v := vz[i]; v > 0 {
						acc += rz * v * (c - axisValue(s, pz, y*sy+x, sz, z-1, nz))
					} else if v < 0 {
						acc += rz * v * (axisValue(s, pz, y*sy+x, sz, z+1, nz) - c)
					}
					d[i] = c - acc
				}
			}
		}
	})
}
