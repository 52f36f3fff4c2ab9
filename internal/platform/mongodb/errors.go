package mongodb

import (
	"errors"
	"fmt"

	"github.com/phrazzld/question-api/internal/store"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// MapError maps a driver error to an appropriate store error, wrapping the original.
func MapError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		return fmt.Errorf("%w: %v", store.ErrNotFound, err)
	case mongo.IsDuplicateKeyError(err):
		return fmt.Errorf("%w: %v", store.ErrDuplicate, err)
	}

	return err
}

// parseObjectID converts a hex identifier, reporting malformed input as store.ErrInvalidID.
func parseObjectID(entity, operation, id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, store.NewStoreError(
			entity,
			operation,
			fmt.Sprintf("invalid %s id %q", entity, id),
			store.ErrInvalidID,
		)
	}
	return oid, nil
}
