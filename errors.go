package gxhash

import (
	"errors"
	"fmt"
)

var (
	// ErrAbstractType is matched by a TypeError for a width without a hash
	// function.
	ErrAbstractType = errors.New("abstract width cannot be instantiated")

	// ErrInvalidOption is returned for out-of-range option values.
	ErrInvalidOption = errors.New("invalid option")
)

// TypeError reports an attempt to build a hasher from the zero Width.
type TypeError struct {
	Width string
}

func (e *TypeError) Error() string {
	if e.Width == "" {
		return "gxhash: cannot construct a hasher without a width; use New32, New64 or New128"
	}
	return fmt.Sprintf("gxhash: width %q has no hash function", e.Width)
}

func (e *TypeError) Unwrap() error { return ErrAbstractType }

// AsyncHashError reports a failed offloaded hash.
//
// The underlying error (an *executor.JoinError, a context error or a memory
// budget rejection) can be accessed via errors.Unwrap.
type AsyncHashError struct {
	Width string
	Size  int
	cause error
}

func (e *AsyncHashError) Error() string {
	return fmt.Sprintf("gxhash: %s of %d bytes failed: %v", e.Width, e.Size, e.cause)
}

func (e *AsyncHashError) Unwrap() error { return e.cause }
