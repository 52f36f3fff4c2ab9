package postgres

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/phrazzld/question-api/internal/store"
)

// parseID converts an opaque identifier into a UUID, reporting malformed
// input as store.ErrInvalidID.
func parseID(entity, operation, id string) (uuid.UUID, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, store.NewStoreError(
			entity,
			operation,
			fmt.Sprintf("invalid %s id %q", entity, id),
			store.ErrInvalidID,
		)
	}
	return parsed, nil
}
