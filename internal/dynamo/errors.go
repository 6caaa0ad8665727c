package dynamo

import (
	"errors"
	"fmt"
)

// Domain errors for solver and analysis operations.
var (
	// ErrInvalidParameter indicates a physical parameter precondition was
	// violated before any numerical work began.
	ErrInvalidParameter = errors.New("dynamo: invalid parameter")

	// ErrNumericalFailure indicates the adaptive step controller could not
	// satisfy its tolerances within the bounded step budget.
	ErrNumericalFailure = errors.New("dynamo: numerical failure")

	// ErrInvalidState indicates a state vector with NaN or Inf entries.
	ErrInvalidState = errors.New("dynamo: invalid state (NaN or Inf detected)")

	// ErrStepTooSmall indicates the adaptive timestep shrank below the
	// smallest representable increment of the current time.
	ErrStepTooSmall = errors.New("dynamo: adaptive timestep below minimum")
)

// ParameterError reports which parameter violated its precondition.
type ParameterError struct {
	Name   string
	Value  float64
	Reason string
}

func (e *ParameterError) Error() string {
	return fmt.Sprintf("invalid parameter %s=%g: %s", e.Name, e.Value, e.Reason)
}

func (e *ParameterError) Unwrap() error {
	return ErrInvalidParameter
}

// SolveError wraps a numerical failure with integration context.
type SolveError struct {
	Time    float64
	Step    int
	Wrapped error
}

func (e *SolveError) Error() string {
	return fmt.Sprintf("step %d (t=%.6g): %v", e.Step, e.Time, e.Wrapped)
}

func (e *SolveError) Unwrap() error {
	return e.Wrapped
}
