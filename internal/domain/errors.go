// Package domain defines the core business entities and errors.
package domain

import (
	"errors"
	"fmt"
)

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a request or entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidID is returned when a task ID is malformed or out of range.
	ErrInvalidID = errors.New("invalid ID")

	// ErrEmptyContent is returned when a task has neither a title nor a
	// description, leaving nothing to classify.
	ErrEmptyContent = errors.New("content cannot be empty")

	// ErrMissingTags is returned when a status-only update arrives without
	// the tag list that must be carried over.
	ErrMissingTags = errors.New("tags are required for status-only updates")
)

// ValidationError describes a single invalid field. It wraps ErrValidation
// (or a more specific sentinel) so callers can match with errors.Is.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// NewValidationError creates a ValidationError for field. If err is nil the
// error wraps ErrValidation.
func NewValidationError(field, message string, err error) *ValidationError {
	if err == nil {
		err = ErrValidation
	}
	return &ValidationError{Field: field, Message: message, Err: err}
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s: %s", ErrValidation, e.Message)
	}
	return fmt.Sprintf("%s: %s %s", ErrValidation, e.Field, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Is reports every ValidationError as an ErrValidation, whatever the more
// specific sentinel it wraps.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
