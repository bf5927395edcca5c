package dynamo

import (
	"errors"
	"fmt"
)

// Domain errors for simulation and editing operations.
var (
	// ErrInvalidHandle indicates an edit referenced a point or stick that does not exist.
	ErrInvalidHandle = errors.New("dynamo: invalid handle")

	// ErrSelfLoop indicates a stick whose two endpoints are the same point.
	ErrSelfLoop = errors.New("dynamo: stick endpoints must differ")

	// ErrNoStickInProgress indicates EndStick was called without a matching BeginStick.
	ErrNoStickInProgress = errors.New("dynamo: no stick in progress")

	// ErrParameterBounds indicates a parameter value is outside valid range.
	ErrParameterBounds = errors.New("dynamo: parameter out of valid bounds")

	// ErrInvalidState indicates a point position became NaN or Inf.
	ErrInvalidState = errors.New("dynamo: invalid state (NaN or Inf detected)")

	// ErrUnknownScene indicates a scene or driver name that is not registered.
	ErrUnknownScene = errors.New("dynamo: unknown scene")
)

// EditError wraps a failed topology edit with the operation and handle involved.
type EditError struct {
	Op      string
	Handle  int
	Wrapped error
}

func (e *EditError) Error() string {
	return fmt.Sprintf("%s %d: %v", e.Op, e.Handle, e.Wrapped)
}

func (e *EditError) Unwrap() error {
	return e.Wrapped
}

// SimulationError wraps an error with simulation context.
type SimulationError struct {
	Step    int
	Time    float64
	Wrapped error
}

func (e *SimulationError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f): %v", e.Step, e.Time, e.Wrapped)
}

func (e *SimulationError) Unwrap() error {
	return e.Wrapped
}
