package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrUnknownClass = errors.New("unknown class")
	ErrValidation   = errors.New("validation failed")
	ErrNoStorage    = errors.New("no storage bound")
	ErrAccessDenied = errors.New("access denied")
)

// ValidationError reports a rejected attribute value.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

func invalid(field, format string, args ...any) error {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}
