package mongodb

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/question-api/internal/domain"
	"github.com/phrazzld/question-api/internal/platform/logger"
	"github.com/phrazzld/question-api/internal/redact"
	"github.com/phrazzld/question-api/internal/store"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoPaperStore implements store.PaperStore on a MongoDB collection.
type MongoPaperStore struct {
	papers *mongo.Collection
	users  *mongo.Collection
	logger *slog.Logger
}

// NewMongoPaperStore creates a paper store backed by db.
// If logger is nil, the default logger is used.
func NewMongoPaperStore(db *mongo.Database, logger *slog.Logger) *MongoPaperStore {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &MongoPaperStore{
		papers: db.Collection(PapersCollection),
		users:  db.Collection(UsersCollection),
		logger: logger.With(slog.String("component", "paper_store")),
	}
}

// Ensure MongoPaperStore implements store.PaperStore interface
var _ store.PaperStore = (*MongoPaperStore)(nil)

// now truncates to the millisecond precision BSON dates keep.
func now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}

// Create implements store.PaperStore.Create.
func (s *MongoPaperStore) Create(ctx context.Context, paper *domain.Paper) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := paper.Validate(); err != nil {
		log.Warn("paper validation failed during create", slog.String("error", err.Error()))
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	authorID, err := parseObjectID("paper", "create", paper.Author.ID)
	if err != nil {
		return err
	}

	ts := now()
	doc := paperDocument{
		ID:        primitive.NewObjectID(),
		Title:     paper.Title,
		Content:   paper.Content,
		Author:    authorID,
		CreatedAt: ts,
		UpdatedAt: ts,
	}

	if _, err := s.papers.InsertOne(ctx, doc); err != nil {
		log.Error("failed to create paper",
			slog.String("error", redact.Error(err)),
			slog.String("author_id", authorID.Hex()))
		return store.NewStoreError("paper", "create", "failed to create paper", MapError(err))
	}

	*paper = *doc.toDomain()
	log.Info("paper created", slog.String("paper_id", paper.ID))
	return nil
}

// List implements store.PaperStore.List.
func (s *MongoPaperStore) List(ctx context.Context) ([]*domain.Paper, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	cursor, err := s.papers.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}}))
	if err != nil {
		log.Error("failed to list papers", slog.String("error", redact.Error(err)))
		return nil, store.NewStoreError("paper", "list", "failed to list papers", MapError(err))
	}

	var docs []paperDocument
	if err := cursor.All(ctx, &docs); err != nil {
		log.Error("failed to decode papers", slog.String("error", redact.Error(err)))
		return nil, store.NewStoreError("paper", "list", "failed to read papers", MapError(err))
	}

	papers, err := s.populate(ctx, docs)
	if err != nil {
		return nil, store.NewStoreError("paper", "list", "failed to populate authors", MapError(err))
	}

	log.Debug("papers listed", slog.Int("count", len(papers)))
	return papers, nil
}

// GetByID implements store.PaperStore.GetByID.
func (s *MongoPaperStore) GetByID(ctx context.Context, id string) (*domain.Paper, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	oid, err := parseObjectID("paper", "get", id)
	if err != nil {
		return nil, err
	}

	var doc paperDocument
	if err := s.papers.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			log.Debug("paper not found", slog.String("paper_id", id))
			return nil, store.ErrPaperNotFound
		}
		log.Error("failed to get paper",
			slog.String("error", redact.Error(err)),
			slog.String("paper_id", id))
		return nil, store.NewStoreError("paper", "get", "failed to get paper", MapError(err))
	}

	papers, err := s.populate(ctx, []paperDocument{doc})
	if err != nil {
		return nil, store.NewStoreError("paper", "get", "failed to populate author", MapError(err))
	}
	return papers[0], nil
}

// populate resolves the authors of docs with a single $in query. Papers whose
// author no longer exists get a populated reference with a nil profile.
func (s *MongoPaperStore) populate(ctx context.Context, docs []paperDocument) ([]*domain.Paper, error) {
	papers := make([]*domain.Paper, 0, len(docs))
	if len(docs) == 0 {
		return papers, nil
	}

	seen := make(map[primitive.ObjectID]struct{}, len(docs))
	ids := make([]primitive.ObjectID, 0, len(docs))
	for _, d := range docs {
		if _, ok := seen[d.Author]; !ok {
			seen[d.Author] = struct{}{}
			ids = append(ids, d.Author)
		}
	}

	cursor, err := s.users.Find(ctx,
		bson.M{"_id": bson.M{"$in": ids}},
		options.Find().SetProjection(bson.M{"name": 1, "email": 1}),
	)
	if err != nil {
		return nil, err
	}

	var users []userDocument
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}

	profiles := make(map[primitive.ObjectID]*domain.Author, len(users))
	for _, u := range users {
		profiles[u.ID] = u.profile()
	}

	for _, d := range docs {
		p := d.toDomain()
		p.Author = domain.PopulatedAuthor(d.Author.Hex(), profiles[d.Author])
		papers = append(papers, p)
	}
	return papers, nil
}

// Update implements store.PaperStore.Update.
func (s *MongoPaperStore) Update(
	ctx context.Context,
	id string,
	patch domain.PaperPatch,
) (*domain.Paper, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	oid, err := parseObjectID("paper", "update", id)
	if err != nil {
		return nil, err
	}
	if err := patch.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	set := bson.D{{Key: "updatedAt", Value: now()}}
	if patch.Title != nil {
		set = append(set, bson.E{Key: "title", Value: *patch.Title})
	}
	if patch.Content != nil {
		set = append(set, bson.E{Key: "content", Value: *patch.Content})
	}

	var doc paperDocument
	err = s.papers.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.D{{Key: "$set", Value: set}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			log.Debug("paper not found for update", slog.String("paper_id", id))
			return nil, store.ErrPaperNotFound
		}
		log.Error("failed to update paper",
			slog.String("error", redact.Error(err)),
			slog.String("paper_id", id))
		return nil, store.NewStoreError("paper", "update", "failed to update paper", MapError(err))
	}

	log.Info("paper updated", slog.String("paper_id", id))
	return doc.toDomain(), nil
}

// Delete implements store.PaperStore.Delete.
func (s *MongoPaperStore) Delete(ctx context.Context, id string) (*domain.Paper, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	oid, err := parseObjectID("paper", "delete", id)
	if err != nil {
		return nil, err
	}

	var doc paperDocument
	if err := s.papers.FindOneAndDelete(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			log.Debug("paper not found for delete", slog.String("paper_id", id))
			return nil, store.ErrPaperNotFound
		}
		log.Error("failed to delete paper",
			slog.String("error", redact.Error(err)),
			slog.String("paper_id", id))
		return nil, store.NewStoreError("paper", "delete", "failed to delete paper", MapError(err))
	}

	log.Info("paper deleted", slog.String("paper_id", id))
	return doc.toDomain(), nil
}
