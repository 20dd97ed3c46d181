package field

import "fmt"

// Policy resolves integer coordinates that fall outside one grid axis.
// Policies are pure and stateless: resolution depends only on the
// coordinate and the axis extent.
type Policy interface {
	Name() string

	// Resolve maps coordinate i on an axis of n cells to a readable index.
	// ok == false means the lookup falls outside the stored data and
	// Outside supplies the result instead.
	Resolve(i, n int) (idx int, ok bool)

	// Outside reports the value used for coordinates Resolve refused.
	Outside() (float64, error)

	// Ghost reports the value difference stencils read at refused
	// coordinates. Unlike Outside it never refuses, so strictness only
	// binds interpolated point sampling.
	Ghost() float64
}

// Periodic wraps coordinates modulo the axis extent: the domain is a ring.
type Periodic struct{}

func (Periodic) Name() string { return "periodic" }

func (Periodic) Resolve(i, n int) (int, bool) {
	i %= n
	if i < 0 {
		i += n
	}
	return i, true
}

func (Periodic) Outside() (float64, error) { return 0, nil }

func (Periodic) Ghost() float64 { return 0 } // never reached, Resolve always succeeds

// Clamp replicates the nearest edge cell, a zero-gradient closure.
type Clamp struct{}

func (Clamp) Name() string { return "clamp" }

func (Clamp) Resolve(i, n int) (int, bool) {
	if i < 0 {
		return 0, true
	}
	if i >= n {
		return n - 1, true
	}
	return i, true
}

func (Clamp) Outside() (float64, error) { return 0, nil }

func (Clamp) Ghost() float64 { return 0 } // never reached, Resolve always succeeds

// Fixed supplies a constant for every out-of-range coordinate. The strict
// variant refuses out-of-domain lookups instead, turning them into
// ErrOutOfDomain.
type Fixed struct {
	Value  float64
	Strict bool
}

func (f Fixed) Name() string {
	if f.Strict {
		return "fixed-strict"
	}
	return "fixed"
}

func (Fixed) Resolve(i, n int) (int, bool) {
	if i < 0 || i >= n {
		return 0, false
	}
	return i, true
}

func (f Fixed) Outside() (float64, error) {
	if f.Strict {
		return 0, ErrOutOfDomain
	}
	return f.Value, nil
}

func (f Fixed) Ghost() float64 { return f.Value }

// Boundaries composes one policy per grid axis. Corner coordinates outside
// several axes resolve each axis independently; if more than one fixed
// policy refuses, the lowest axis wins.
type Boundaries []Policy

// Uniform applies the same policy to every axis of a rank-r grid.
func Uniform(p Policy, rank int) Boundaries {
	b := make(Boundaries, rank)
	for i := range b {
		b[i] = p
	}
	return b
}

// Validate checks that the set carries exactly one policy per axis.
func (b Boundaries) Validate(rank int) error {
	if len(b) != rank {
		return fmt.Errorf("field: %d boundary policies for rank %d: %w", len(b), rank, ErrShapeMismatch)
	}
	for ax, p := range b {
		if p == nil {
			return fmt.Errorf("field: nil boundary policy on axis %d: %w", ax, ErrShapeMismatch)
		}
	}
	return nil
}

// Names lists the per-axis policy names.
func (b Boundaries) Names() []string {
	out := make([]string, len(b))
	for i, p := range b {
		out[i] = p.Name()
	}
	return out
}

// ParsePolicy builds a policy from its configuration name. The value
// parameter is only meaningful for the fixed variants.
func ParsePolicy(kind string, value float64) (Policy, error) {
	switch kind {
	case "", "periodic":
		return Periodic{}, nil
	case "clamp", "clamped":
		return Clamp{}, nil
	case "fixed":
		return Fixed{Value: value}, nil
	case "fixed-strict":
		return Fixed{Value: value, Strict: true}, nil
	default:
		return nil, fmt.Errorf("field: unknown boundary policy: %s", kind)
	}
}
