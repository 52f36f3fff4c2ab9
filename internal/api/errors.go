package api

import (
	"errors"
	"net/http"

	"github.com/phrazzld/question-api/internal/api/shared"
	"github.com/phrazzld/question-api/internal/domain"
	"github.com/phrazzld/question-api/internal/service/auth"
	"github.com/phrazzld/question-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to their semantic HTTP status.
func MapErrorToStatusCode(err error) int {
	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized

	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden

	// Not found errors
	case store.IsNotFoundError(err):
		return http.StatusNotFound

	// Conflict errors
	case store.IsDuplicateError(err):
		return http.StatusConflict

	// Bad request errors
	case errors.Is(err, shared.ErrInvalidRequest),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, store.ErrInvalidID):
		return http.StatusBadRequest

	default:
		return http.StatusInternalServerError
	}
}

// StatusPolicy decides the HTTP status written for successes and failures.
// In legacy mode every failure is a 400 and list, update and delete successes
// are a 201; otherwise statuses follow their usual meaning.
type StatusPolicy struct {
	Legacy bool
}

// LegacyStatusPolicy returns the policy clients of the original API expect.
func LegacyStatusPolicy() StatusPolicy {
	return StatusPolicy{Legacy: true}
}

// StrictStatusPolicy returns the policy with semantic status codes.
func StrictStatusPolicy() StatusPolicy {
	return StatusPolicy{}
}

// Collection is the success status for list, update and delete.
func (p StatusPolicy) Collection() int {
	if p.Legacy {
		return http.StatusCreated
	}
	return http.StatusOK
}

// Failure is the status written for err.
func (p StatusPolicy) Failure(err error) int {
	if p.Legacy {
		return http.StatusBadRequest
	}
	return MapErrorToStatusCode(err)
}

// credentialsError hides whether the email or the password was wrong.
type credentialsError struct {
	err error
}

func (e *credentialsError) Error() string       { return e.err.Error() }
func (e *credentialsError) UserMessage() string { return "Invalid credentials" }
func (e *credentialsError) Unwrap() error       { return auth.ErrInvalidCredentials }

// errInvalidCredentials wraps err so the client sees only "Invalid credentials".
func errInvalidCredentials(err error) error {
	return &credentialsError{err: err}
}

// errNotAccountOwner is returned when a caller targets another user's account.
var errNotAccountOwner = &ownerError{}

type ownerError struct{}

func (e *ownerError) Error() string       { return "caller does not own the target account" }
func (e *ownerError) UserMessage() string { return "You can only modify your own account" }
func (e *ownerError) Unwrap() error       { return domain.ErrForbidden }
