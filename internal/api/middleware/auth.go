package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/phrazzld/question-api/internal/api/shared"
	"github.com/phrazzld/question-api/internal/platform/logger"
	"github.com/phrazzld/question-api/internal/redact"
	"github.com/phrazzld/question-api/internal/service/auth"
)

// Messages sent in 401 envelopes.
const (
	MsgMissingHeader = "Authorization header required"
	MsgInvalidFormat = "Invalid authorization format"
	MsgInvalidToken  = "Invalid token"
	MsgExpiredToken  = "Token expired"
)

// AuthMiddleware provides JWT authentication for routes.
type AuthMiddleware struct {
	jwtService auth.JWTService
}

// NewAuthMiddleware creates a new AuthMiddleware with the given dependencies.
func NewAuthMiddleware(jwtService auth.JWTService) *AuthMiddleware {
	if jwtService == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("jwtService cannot be nil")
	}
	return &AuthMiddleware{
		jwtService: jwtService,
	}
}

// Authenticate validates the bearer token from the Authorization header and
// stores the caller's identity in the request context. Rejected requests get
// a 401 envelope and never reach next.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			unauthorized(w, r, MsgMissingHeader)
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
			unauthorized(w, r, MsgInvalidFormat)
			return
		}

		claims, err := m.jwtService.ValidateToken(r.Context(), parts[1])
		if err != nil {
			if errors.Is(err, auth.ErrExpiredToken) {
				unauthorized(w, r, MsgExpiredToken)
				return
			}
			if !isTokenError(err) {
				logger.FromContext(r.Context()).Error("failed to validate token",
					slog.String("error", redact.Error(err)))
			}
			unauthorized(w, r, MsgInvalidToken)
			return
		}

		if claims == nil || claims.UserID == "" {
			unauthorized(w, r, MsgInvalidToken)
			return
		}

		ctx := shared.WithUserID(r.Context(), claims.UserID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func isTokenError(err error) bool {
	return errors.Is(err, auth.ErrInvalidToken) ||
		errors.Is(err, auth.ErrTokenNotYetValid) ||
		errors.Is(err, auth.ErrWrongTokenType)
}

func unauthorized(w http.ResponseWriter, r *http.Request, message string) {
	logger.FromContext(r.Context()).Debug("request rejected by auth guard",
		slog.String("reason", message),
		slog.String("path", r.URL.Path),
		slog.String("method", r.Method))
	shared.RespondMessage(w, r, http.StatusUnauthorized, message)
}

// GetUserID extracts the authenticated user's identifier from the request context.
func GetUserID(r *http.Request) (string, bool) {
	return shared.UserIDFromContext(r.Context())
}
