package engine

import (
	"errors"
	"fmt"
)

// Lifecycle errors for integrator operations.
var (
	// ErrNotReady indicates a step or snapshot request before Configure.
	ErrNotReady = errors.New("engine: integrator not configured")

	// ErrStopped indicates use after teardown.
	ErrStopped = errors.New("engine: integrator stopped")
)

// StepError wraps a step failure with simulation position.
type StepError struct {
	Step    int
	Time    float64
	Wrapped error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d (t=%.6g): %v", e.Step, e.Time, e.Wrapped)
}

func (e *StepError) Unwrap() error {
	return e.Wrapped
}
