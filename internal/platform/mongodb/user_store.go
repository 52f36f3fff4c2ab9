package mongodb

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/question-api/internal/domain"
	"github.com/phrazzld/question-api/internal/platform/logger"
	"github.com/phrazzld/question-api/internal/redact"
	"github.com/phrazzld/question-api/internal/store"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoUserStore implements store.UserStore on a MongoDB collection.
type MongoUserStore struct {
	users  *mongo.Collection
	logger *slog.Logger
}

// NewMongoUserStore creates a user store backed by db.
// If logger is nil, the default logger is used.
func NewMongoUserStore(db *mongo.Database, logger *slog.Logger) *MongoUserStore {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &MongoUserStore{
		users:  db.Collection(UsersCollection),
		logger: logger.With(slog.String("component", "user_store")),
	}
}

// Ensure MongoUserStore implements store.UserStore interface
var _ store.UserStore = (*MongoUserStore)(nil)

func duplicateEmail(operation string, err error) error {
	return store.NewStoreError("user", operation, "email already exists",
		fmt.Errorf("%w: %v", store.ErrEmailExists, err))
}

// Create implements store.UserStore.Create.
func (s *MongoUserStore) Create(ctx context.Context, user *domain.User) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := user.Validate(); err != nil {
		log.Warn("user validation failed during create", slog.String("error", err.Error()))
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}
	if user.HashedPassword == "" {
		return store.NewStoreError("user", "create", "password must be hashed before storing",
			store.ErrInvalidEntity)
	}

	ts := now()
	doc := userDocument{
		ID:        primitive.NewObjectID(),
		Name:      user.Name,
		Email:     domain.NormalizeEmail(user.Email),
		Password:  user.HashedPassword,
		CreatedAt: ts,
		UpdatedAt: ts,
	}

	if _, err := s.users.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			log.Warn("attempt to create user with existing email")
			return duplicateEmail("create", err)
		}
		log.Error("failed to create user", slog.String("error", redact.Error(err)))
		return store.NewStoreError("user", "create", "failed to create user", MapError(err))
	}

	*user = *doc.toDomain()
	log.Info("user created", slog.String("user_id", user.ID))
	return nil
}

// List implements store.UserStore.List.
func (s *MongoUserStore) List(ctx context.Context) ([]*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	cursor, err := s.users.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}}))
	if err != nil {
		log.Error("failed to list users", slog.String("error", redact.Error(err)))
		return nil, store.NewStoreError("user", "list", "failed to list users", MapError(err))
	}

	var docs []userDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, store.NewStoreError("user", "list", "failed to read users", MapError(err))
	}

	users := make([]*domain.User, 0, len(docs))
	for _, d := range docs {
		users = append(users, d.toDomain())
	}
	return users, nil
}

// GetByID implements store.UserStore.GetByID.
func (s *MongoUserStore) GetByID(ctx context.Context, id string) (*domain.User, error) {
	oid, err := parseObjectID("user", "get", id)
	if err != nil {
		return nil, err
	}
	return s.findOne(ctx, bson.M{"_id": oid})
}

// GetByEmail implements store.UserStore.GetByEmail.
func (s *MongoUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.findOne(ctx, bson.M{"email": domain.NormalizeEmail(email)})
}

func (s *MongoUserStore) findOne(ctx context.Context, filter bson.M) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var doc userDocument
	if err := s.users.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, store.ErrUserNotFound
		}
		log.Error("failed to get user", slog.String("error", redact.Error(err)))
		return nil, store.NewStoreError("user", "get", "failed to get user", MapError(err))
	}
	return doc.toDomain(), nil
}

// Update implements store.UserStore.Update.
func (s *MongoUserStore) Update(
	ctx context.Context,
	id string,
	patch domain.UserPatch,
) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	oid, err := parseObjectID("user", "update", id)
	if err != nil {
		return nil, err
	}

	set := bson.D{{Key: "updatedAt", Value: now()}}
	if patch.Name != nil {
		set = append(set, bson.E{Key: "name", Value: *patch.Name})
	}
	if patch.Email != nil {
		set = append(set, bson.E{Key: "email", Value: domain.NormalizeEmail(*patch.Email)})
	}
	if patch.HashedPassword != nil {
		set = append(set, bson.E{Key: "password", Value: *patch.HashedPassword})
	}

	var doc userDocument
	err = s.users.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.D{{Key: "$set", Value: set}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		switch {
		case errors.Is(err, mongo.ErrNoDocuments):
			return nil, store.ErrUserNotFound
		case mongo.IsDuplicateKeyError(err):
			log.Warn("attempt to update user to existing email", slog.String("user_id", id))
			return nil, duplicateEmail("update", err)
		}
		log.Error("failed to update user",
			slog.String("error", redact.Error(err)),
			slog.String("user_id", id))
		return nil, store.NewStoreError("user", "update", "failed to update user", MapError(err))
	}

	log.Info("user updated", slog.String("user_id", id))
	return doc.toDomain(), nil
}

// Delete implements store.UserStore.Delete.
func (s *MongoUserStore) Delete(ctx context.Context, id string) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	oid, err := parseObjectID("user", "delete", id)
	if err != nil {
		return nil, err
	}

	var doc userDocument
	if err := s.users.FindOneAndDelete(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, store.ErrUserNotFound
		}
		log.Error("failed to delete user",
			slog.String("error", redact.Error(err)),
			slog.String("user_id", id))
		return nil, store.NewStoreError("user", "delete", "failed to delete user", MapError(err))
	}

	log.Info("user deleted", slog.String("user_id", id))
	return doc.toDomain(), nil
}
