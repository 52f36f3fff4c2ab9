package api

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/question-api/internal/api/middleware"
	"github.com/phrazzld/question-api/internal/api/shared"
	"github.com/phrazzld/question-api/internal/domain"
	"github.com/phrazzld/question-api/internal/platform/logger"
)

// getPathID extracts the raw identifier from the URL path. The store decides
// whether it is well formed.
func getPathID(r *http.Request, entity string) (string, error) {
	id := strings.TrimSpace(chi.URLParam(r, "id"))
	if id == "" {
		return "", domain.NewValidationError(entity, "id", "is required", domain.ErrInvalidID)
	}
	return id, nil
}

// requireIdentity returns the authenticated user's identifier, writing a
// failure response when the request carries none.
func requireIdentity(w http.ResponseWriter, r *http.Request, policy StatusPolicy, fallback *slog.Logger) (string, bool) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		logger.FromContextOrDefault(r.Context(), fallback).
			Warn("user ID not found in request context")
		shared.RespondFailure(w, r, policy.Failure(domain.ErrUnauthorized), domain.ErrUnauthorized)
		return "", false
	}
	return userID, true
}

// respondOutcome writes a Found outcome with foundCode and message, a NotFound
// outcome as a 404 with an empty body and a Failed outcome through the policy.
func respondOutcome[T any](
	w http.ResponseWriter,
	r *http.Request,
	policy StatusPolicy,
	outcome Outcome[T],
	foundCode int,
	foundMessage string,
	notFoundMessage string,
	body func(T) interface{},
) {
	switch outcome.Kind {
	case Found:
		var payload interface{}
		if body != nil {
			payload = body(outcome.Value)
		}
		shared.RespondSuccess(w, r, foundCode, foundMessage, payload)
	case NotFound:
		shared.RespondMessage(w, r, http.StatusNotFound, notFoundMessage)
	default:
		shared.RespondFailure(w, r, policy.Failure(outcome.Err), outcome.Err)
	}
}

// asBody returns the value itself as the response body.
func asBody[T any](v T) interface{} {
	return v
}
