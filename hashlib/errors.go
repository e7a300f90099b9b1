package hashlib

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownAlgorithm is matched by an UnknownAlgorithmError.
	ErrUnknownAlgorithm = errors.New("unsupported hash type")

	// ErrInvalidState is returned by UnmarshalBinary for foreign or
	// truncated state.
	ErrInvalidState = errors.New("hashlib: invalid hash state")

	// ErrNilConstructor is returned by FileDigestFunc when it has no digest
	// to write into.
	ErrNilConstructor = errors.New("hashlib: nil digest constructor")
)

// UnknownAlgorithmError reports an algorithm name that is not registered.
type UnknownAlgorithmError struct {
	Name string
}

func (e *UnknownAlgorithmError) Error() string {
	return fmt.Sprintf("unsupported hash type %s", e.Name)
}

func (e *UnknownAlgorithmError) Unwrap() error { return ErrUnknownAlgorithm }
