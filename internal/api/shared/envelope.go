package shared

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/phrazzld/question-api/internal/platform/logger"
	"github.com/phrazzld/question-api/internal/redact"
)

// Envelope is the uniform response body: exactly code, message and body.
type Envelope struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Body    interface{} `json:"body"`
}

// emptyBody serializes as [].
var emptyBody = []interface{}{}

// userMessager is implemented by errors that carry a client-safe message.
type userMessager interface {
	UserMessage() string
}

// ErrorMessage extracts a human-readable message from err: the message of the
// first error in the chain that carries one, otherwise the redacted error text.
func ErrorMessage(err error) string {
	if err == nil {
		return "unknown error"
	}
	var um userMessager
	if errors.As(err, &um) {
		if msg := um.UserMessage(); msg != "" {
			return msg
		}
	}
	return redact.Error(err)
}

// RespondWithJSON writes a JSON response with the given status code and data.
func RespondWithJSON(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.FromContextOrDefault(r.Context(), slog.Default()).
			Error("failed to encode JSON response", "error", err)
	}
}

// RespondSuccess writes an envelope with status code. A nil body is sent as [].
func RespondSuccess(w http.ResponseWriter, r *http.Request, code int, message string, body interface{}) {
	if body == nil {
		body = emptyBody
	}
	RespondWithJSON(w, r, code, Envelope{Code: code, Message: message, Body: body})
}

// RespondMessage writes an envelope with an empty body.
func RespondMessage(w http.ResponseWriter, r *http.Request, code int, message string) {
	RespondWithJSON(w, r, code, Envelope{Code: code, Message: message, Body: emptyBody})
}

// RespondFailure logs err and writes an envelope carrying its message with an empty body.
func RespondFailure(w http.ResponseWriter, r *http.Request, code int, err error) {
	traceID := GetTraceID(r.Context())
	message := ErrorMessage(err)

	attrs := []slog.Attr{
		slog.String("trace_id", traceID),
		slog.String("path", r.URL.Path),
		slog.String("method", r.Method),
		slog.Int("status_code", code),
		slog.String("user_message", message),
	}
	if err != nil {
		attrs = append(attrs,
			slog.String("error", redact.Error(err)),
			slog.String("error_type", fmt.Sprintf("%T", err)))
	}

	log := logger.FromContextOrDefault(r.Context(), slog.Default())
	log.LogAttrs(r.Context(), slog.LevelError, "API error response", attrs...)

	RespondWithJSON(w, r, code, Envelope{Code: code, Message: message, Body: emptyBody})
}
