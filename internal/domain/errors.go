package domain

import (
	"errors"
	"fmt"
)

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// It is wrapped by ValidationError with the offending field.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidID is returned when an ID is malformed or invalid.
	ErrInvalidID = errors.New("invalid ID")

	// ErrUnauthorized is returned when an operation is not permitted.
	ErrUnauthorized = errors.New("unauthorized operation")

	// ErrForbidden is returned when the caller may not act on the target record.
	ErrForbidden = errors.New("forbidden operation")
)

// ValidationError describes the first field of an entity that failed validation.
type ValidationError struct {
	Entity  string // e.g. "Paper"
	Field   string // JSON field name, e.g. "title"
	Message string // e.g. "is required"
	Err     error
}

// NewValidationError creates a ValidationError. A nil err defaults to ErrValidation.
func NewValidationError(entity, field, message string, err error) *ValidationError {
	if err == nil {
		err = ErrValidation
	}
	return &ValidationError{Entity: entity, Field: field, Message: message, Err: err}
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return e.UserMessage()
}

// UserMessage is the client-safe description of the failure.
func (e *ValidationError) UserMessage() string {
	if e.Field == "" {
		return fmt.Sprintf("%s validation failed: %s", e.Entity, e.Message)
	}
	return fmt.Sprintf("%s validation failed: %s %s", e.Entity, e.Field, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ValidationError) Unwrap() error {
	return e.Err
}
