package field

import "errors"

// Domain errors shared by the field, scheme and engine packages. All are
// recoverable: an operation that returns one leaves every buffer at its
// pre-call contents.
var (
	// ErrInvalidDimension indicates a grid axis that is zero, negative, or
	// of unsupported rank.
	ErrInvalidDimension = errors.New("field: invalid grid dimension")

	// ErrInvalidTimeStep indicates a non-positive or non-finite dt.
	ErrInvalidTimeStep = errors.New("field: invalid time step")

	// ErrShapeMismatch indicates fields whose grid geometry disagrees.
	ErrShapeMismatch = errors.New("field: shape mismatch")

	// ErrDegenerateVelocity indicates an identically zero velocity field
	// where a CFL-derived step was requested.
	ErrDegenerateVelocity = errors.New("field: degenerate velocity field")

	// ErrOutOfDomain indicates a lookup outside the grid that the boundary
	// policy refuses to resolve.
	ErrOutOfDomain = errors.New("field: coordinate out of domain")
)
