package store

import (
	"context"

	"github.com/phrazzld/question-api/internal/domain"
)

// UserStore defines the interface for user data persistence.
type UserStore interface {
	// Create saves a new user. The caller must set HashedPassword.
	// Returns ErrEmailExists if the email is already taken.
	Create(ctx context.Context, user *domain.User) error

	// List returns every user. An empty store yields an empty, non-nil slice.
	List(ctx context.Context) ([]*domain.User, error)

	// GetByID retrieves a user by ID.
	// Returns ErrUserNotFound if the user does not exist.
	GetByID(ctx context.Context, id string) (*domain.User, error)

	// GetByEmail retrieves a user by (normalized) email address, including
	// the hashed password.
	// Returns ErrUserNotFound if the user does not exist.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// Update applies patch and returns the post-update record.
	// Plaintext passwords are never stored; only patch.HashedPassword is used.
	// Returns ErrUserNotFound or ErrEmailExists.
	Update(ctx context.Context, id string, patch domain.UserPatch) (*domain.User, error)

	// Delete removes a user and returns the removed record. Papers authored by
	// the user are left in place.
	// Returns ErrUserNotFound if the user does not exist.
	Delete(ctx context.Context, id string) (*domain.User, error)
}
