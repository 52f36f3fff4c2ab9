package store

import (
	"context"

	"github.com/phrazzld/question-api/internal/domain"
)

// PaperStore defines the interface for paper persistence.
// Every method performs a single round trip (population may add one read).
type PaperStore interface {
	// Create saves a new paper and assigns its ID and timestamps.
	// The stored author reference is returned unpopulated.
	Create(ctx context.Context, paper *domain.Paper) error

	// List returns every paper with its author populated. An empty store
	// yields an empty, non-nil slice.
	List(ctx context.Context) ([]*domain.Paper, error)

	// GetByID returns the paper with its author populated.
	// Returns ErrPaperNotFound if no paper has the ID and ErrInvalidID
	// if the ID is malformed.
	GetByID(ctx context.Context, id string) (*domain.Paper, error)

	// Update applies patch and returns the post-update record, unpopulated.
	// Returns ErrPaperNotFound if no paper has the ID.
	Update(ctx context.Context, id string, patch domain.PaperPatch) (*domain.Paper, error)

	// Delete removes the paper and returns the removed record.
	// Returns ErrPaperNotFound if no paper has the ID.
	Delete(ctx context.Context, id string) (*domain.Paper, error)
}
