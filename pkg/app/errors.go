package app

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when no task or goal has the requested id.
	ErrNotFound = errors.New("app: not found")
	// ErrValidation matches every *ValidationError.
	ErrValidation = errors.New("app: validation failed")
	// ErrInvalidFormat rejects an import whose top level shape is wrong.
	ErrInvalidFormat = errors.New("app: invalid snapshot format")
	// ErrWrite wraps persistence write failures.
	ErrWrite = errors.New("app: write failed")
)

// ValidationError names the field that made a request unacceptable.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("app: invalid %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

func notFound(kind, id string) error {
	return fmt.Errorf("%w: %s %q", ErrNotFound, kind, id)
}
