package executor

import (
	"errors"
	"fmt"
)

var (
	// ErrClosed is returned when submitting to or closing a closed runtime.
	ErrClosed = errors.New("executor: runtime closed")

	// ErrInvalidConfig is returned by New for unusable settings.
	ErrInvalidConfig = errors.New("executor: invalid config")

	// ErrSharedRuntime is returned when closing the process-wide runtime.
	ErrSharedRuntime = errors.New("executor: the default runtime cannot be closed")

	// ErrPanicked is matched by a JoinError for a job that panicked.
	ErrPanicked = errors.New("executor: task panicked")

	// ErrNoRuntime is returned when spawning on a zero Handle.
	ErrNoRuntime = errors.New("executor: handle has no runtime")
)

// JoinError reports that a task did not produce a value.
type JoinError struct {
	// Panic holds the recovered value when the job panicked.
	Panic any
	// Stack is the worker stack at the point of the panic.
	Stack []byte
	// Err is the submission or panic cause.
	Err error
}

func (e *JoinError) Error() string {
	if e.Panic != nil {
		return fmt.Sprintf("executor: task panicked: %v", e.Panic)
	}
	return fmt.Sprintf("executor: task failed: %v", e.Err)
}

func (e *JoinError) Unwrap() error {
	return e.Err
}
