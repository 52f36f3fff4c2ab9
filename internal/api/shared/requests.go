package shared

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
)

// ErrInvalidRequest is returned when a request body is not valid JSON.
var ErrInvalidRequest = errors.New("invalid request format")

// RequestError carries a client-facing message for a malformed request.
type RequestError struct {
	Err error
}

// Error implements the error interface.
func (e *RequestError) Error() string {
	return ErrInvalidRequest.Error() + ": " + e.Err.Error()
}

// UserMessage returns the message sent back to the client.
func (e *RequestError) UserMessage() string {
	return "Invalid request format"
}

// Unwrap supports errors.Is(err, ErrInvalidRequest).
func (e *RequestError) Unwrap() []error {
	return []error{ErrInvalidRequest, e.Err}
}

// DecodeJSON decodes the request body into v. An empty body leaves v
// untouched and is not an error.
func DecodeJSON(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return nil
	}
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return &RequestError{Err: err}
	}
	return nil
}
