package dynamo

import (
	"errors"
	"fmt"
)

// Domain errors for engine operations.
var (
	// ErrInvalidState indicates a body whose position, velocity or acceleration went NaN or Inf.
	ErrInvalidState = errors.New("dynamo: invalid state (NaN or Inf detected)")

	// ErrDegenerateBody indicates a body with non-positive radius or mass.
	ErrDegenerateBody = errors.New("dynamo: degenerate body (radius and mass must be positive)")

	// ErrParameterBounds indicates a parameter value is outside valid range.
	ErrParameterBounds = errors.New("dynamo: parameter out of valid bounds")

	// ErrUnknownIntegrator indicates an integrator name that is not registered.
	ErrUnknownIntegrator = errors.New("dynamo: unknown integrator")

	// ErrBodyNotFound indicates a lookup by an id that is not live.
	ErrBodyNotFound = errors.New("dynamo: body not found")
)

// TickError wraps an error with the tick it was detected on.
type TickError struct {
	Tick    int
	Time    float64
	Body    uint64
	Wrapped error
}

func (e *TickError) Error() string {
	return fmt.Sprintf("tick %d (t=%.4f) body %d: %v", e.Tick, e.Time, e.Body, e.Wrapped)
}

func (e *TickError) Unwrap() error {
	return e.Wrapped
}
