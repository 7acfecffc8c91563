package trace

import (
	"errors"
	"fmt"
)

// Domain errors for sorting sessions.
var (
	// ErrInvalidAlgorithm indicates an algorithm id outside the registered set.
	ErrInvalidAlgorithm = errors.New("sortviz: unknown algorithm")

	// ErrSessionActive indicates a run or randomize request while a session runs.
	ErrSessionActive = errors.New("sortviz: a sort session is already active")

	// ErrSuperseded indicates the session was replaced by a newer run.
	ErrSuperseded = errors.New("sortviz: session superseded by a newer run")

	// ErrEmptyRun indicates a recorded run without any data to show.
	ErrEmptyRun = errors.New("sortviz: run has no recorded steps")
)

// StepError wraps an error with the index of the step it concerns.
type StepError struct {
	Step    int
	Wrapped error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d: %v", e.Step, e.Wrapped)
}

func (e *StepError) Unwrap() error {
	return e.Wrapped
}
