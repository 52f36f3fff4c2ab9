package api

import (
	"github.com/phrazzld/question-api/internal/store"
)

// OutcomeKind classifies the result of a store call.
type OutcomeKind int

const (
	// Found means the call produced a value.
	Found OutcomeKind = iota
	// NotFound means the addressed record does not exist.
	NotFound
	// Failed means the store reported an error.
	Failed
)

// String returns the kind's name for logging.
func (k OutcomeKind) String() string {
	switch k {
	case Found:
		return "found"
	case NotFound:
		return "not_found"
	default:
		return "failed"
	}
}

// Outcome is the classified result of a single store call. Not-found is a
// regular outcome, not a failure.
type Outcome[T any] struct {
	Kind  OutcomeKind
	Value T
	Err   error
}

// Classify turns a store return pair into an Outcome.
func Classify[T any](value T, err error) Outcome[T] {
	switch {
	case err == nil:
		return Outcome[T]{Kind: Found, Value: value}
	case store.IsNotFoundError(err):
		return Outcome[T]{Kind: NotFound, Err: err}
	default:
		return Outcome[T]{Kind: Failed, Err: err}
	}
}
