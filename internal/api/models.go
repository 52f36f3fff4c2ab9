package api

import (
	"time"

	"github.com/phrazzld/question-api/internal/domain"
)

// PaperRequest is the payload for creating a paper. Any author supplied by
// the client is ignored; the author is the authenticated caller.
type PaperRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse is the body of a successful login.
type LoginResponse struct {
	// Token is the JWT used for API authorization
	Token string `json:"token"`

	// ExpiresAt is the RFC 3339 timestamp when the token expires
	ExpiresAt time.Time `json:"expiresAt"`

	User *domain.User `json:"user"`
}
