package kinet

import (
	"errors"
	"fmt"
)

// Domain errors for simulation runs.
var (
	// ErrUnstable indicates the integration became numerically unstable.
	ErrUnstable = errors.New("kinet: numerical instability (NaN or divergent state)")

	// ErrDimensionMismatch indicates the initial vector does not match the system.
	ErrDimensionMismatch = errors.New("kinet: dimension mismatch between state and system")

	// ErrBadRunParams indicates invalid run parameters (dt, t_end).
	ErrBadRunParams = errors.New("kinet: invalid run parameters")
)

// InstabilityError carries the diagnostic context of a failed run: the
// step index at which integration broke down and the last valid state.
type InstabilityError struct {
	Step  int
	Time  float64
	Last  State
	Cause string
}

func (e *InstabilityError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f): %s", e.Step, e.Time, e.Cause)
}

func (e *InstabilityError) Unwrap() error {
	return ErrUnstable
}
