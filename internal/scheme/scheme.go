package scheme

import (
	"fmt"
	"math"

	"github.com/vkarel/advlab/internal/field"
)

// Scheme advances a scalar field by one advection step. Implementations
// are stateless apart from reusable scratch buffers and may be swapped
// between steps without touching the grid.
type Scheme interface {
	Name() string

	// CFLBound reports whether the scheme needs dt within the Courant
	// bound for stability. The engine sub-steps larger requests for
	// bounded schemes and passes unbounded ones through untouched.
	CFLBound() bool

	// Advect writes the transported src into dst. It reads src and vel
	// only and covers every dst cell exactly once. Validation failures
	// return before any output cell is written.
	Advect(dst, src field.Field, vel *field.VectorField, bc field.Boundaries, dt float64) error
}

// Names lists the selectable scheme names.
func Names() []string {
	return []string{"upwind", "lax-wendroff", "semi-lagrangian"}
}

// New builds a scheme from its configuration name. The limited flag only
// affects Lax-Wendroff.
func New(name string, limited bool) (Scheme, error) {
	switch name {
	case "upwind":
		return NewUpwind(), nil
	case "lax-wendroff", "laxwendroff", "maccormack":
		return NewLaxWendroff(limited), nil
	case "semi-lagrangian", "semilag":
		return NewSemiLagrangian(), nil
	default:
		return nil, fmt.Errorf("scheme: unknown scheme: %s", name)
	}
}

func validate(dst, src field.Field, vel *field.VectorField, bc field.Boundaries, dt float64) error {
	if dt <= 0 || math.IsNaN(dt) || math.IsInf(dt, 0) {
		return fmt.Errorf("scheme: dt %v: %w", dt, field.ErrInvalidTimeStep)
	}
	g := src.Grid()
	if g == nil || !g.SameShape(dst.Grid()) {
		return fmt.Errorf("scheme: source and destination disagree: %w", field.ErrShapeMismatch)
	}
	if len(dst.Data()) > 0 && len(src.Data()) > 0 && &dst.Data()[0] == &src.Data()[0] {
		return fmt.Errorf("scheme: aliased source and destination: %w", field.ErrShapeMismatch)
	}
	if vel == nil || !vel.Matches(g) {
		return fmt.Errorf("scheme: velocity does not match the grid: %w", field.ErrShapeMismatch)
	}
	return bc.Validate(g.Rank())
}

// axisValue reads the cell at coordinate j along one axis of extent n,
// where base is the flat index of the cell with that coordinate zeroed.
// Out-of-range coordinates resolve through the policy's ghost rules.
func axisValue(s []float64, p field.Policy, base, stride, j, n int) float64 {
	if j >= 0 && j < n {
		return s[base+j*stride]
	}
	if k, ok := p.Resolve(j, n); ok {
		return s[base+k*stride]
	}
	return p.Ghost()
}
