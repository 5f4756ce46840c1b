package domain

import (
	"errors"
	"fmt"
)

// Client-input errors. They are never retried and are always reported to the
// caller together with the violated constraint.
var (
	// ErrInvalidInput is returned when the prompt is missing, empty, not a
	// string, or the request body cannot be decoded.
	ErrInvalidInput = errors.New("invalid input")

	// ErrPromptTooLong is returned when the prompt exceeds MaxPromptLength.
	ErrPromptTooLong = errors.New("prompt too long")

	// ErrUnknownWorld is returned when the world key is not configured.
	ErrUnknownWorld = errors.New("unknown world")
)

// ValidationError describes which constraint a request violated.
// It wraps one of the sentinel errors above so callers can use errors.Is.
type ValidationError struct {
	// Field is the request field at fault, e.g. "prompt" or "world".
	Field string
	// Constraint names the rule, e.g. "required", "max", "oneof".
	Constraint string
	// Limit is the rule's parameter, if it has one (e.g. "1000").
	Limit string
	// Message is safe to show to the client.
	Message string
	// Err is the sentinel classification.
	Err error
}

// NewValidationError creates a ValidationError for the given field.
func NewValidationError(field, constraint, limit, message string, err error) *ValidationError {
	return &ValidationError{
		Field:      field,
		Constraint: constraint,
		Limit:      limit,
		Message:    message,
		Err:        err,
	}
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Limit != "" {
		return fmt.Sprintf("%s: %s %s=%s: %s", e.Err, e.Field, e.Constraint, e.Limit, e.Message)
	}
	return fmt.Sprintf("%s: %s %s: %s", e.Err, e.Field, e.Constraint, e.Message)
}

// Unwrap returns the sentinel classification.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// IsValidationError reports whether err is a client-input error.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput) ||
		errors.Is(err, ErrPromptTooLong) ||
		errors.Is(err, ErrUnknownWorld)
}
