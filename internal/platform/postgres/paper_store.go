package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/phrazzld/question-api/internal/domain"
	"github.com/phrazzld/question-api/internal/platform/logger"
	"github.com/phrazzld/question-api/internal/redact"
	"github.com/phrazzld/question-api/internal/store"
)

// psql builds queries with PostgreSQL positional placeholders.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const paperColumns = "id, title, content, author_id, created_at, updated_at"

// PostgresPaperStore implements store.PaperStore on PostgreSQL.
type PostgresPaperStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresPaperStore creates a new PostgreSQL implementation of the PaperStore interface.
// If logger is nil, the default logger is used.
func NewPostgresPaperStore(db store.DBTX, logger *slog.Logger) *PostgresPaperStore {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresPaperStore{
		db:     db,
		logger: logger.With(slog.String("component", "paper_store")),
	}
}

// Ensure PostgresPaperStore implements store.PaperStore interface
var _ store.PaperStore = (*PostgresPaperStore)(nil)

// Create implements store.PaperStore.Create.
func (s *PostgresPaperStore) Create(ctx context.Context, paper *domain.Paper) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := paper.Validate(); err != nil {
		log.Warn("paper validation failed during create", slog.String("error", err.Error()))
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	authorID, err := parseID("paper", "create", paper.Author.ID)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	id := uuid.New()

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO papers (id, title, content, author_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, id.String(), paper.Title, paper.Content, authorID.String(), now, now)
	if err != nil {
		log.Error("failed to create paper",
			slog.String("error", redact.Error(err)),
			slog.String("author_id", authorID.String()))
		return store.NewStoreError("paper", "create", "failed to create paper", MapError(err))
	}

	paper.ID = id.String()
	paper.Author = domain.AuthorID(authorID.String())
	paper.CreatedAt = now
	paper.UpdatedAt = now

	log.Info("paper created", slog.String("paper_id", paper.ID))
	return nil
}

// populatedSelect selects papers joined with their authors. Papers whose
// author no longer exists come back with NULL author columns.
func populatedSelect() sq.SelectBuilder {
	return psql.Select(
		"p.id", "p.title", "p.content", "p.author_id", "p.created_at", "p.updated_at",
		"u.id", "u.name", "u.email",
	).
		From("papers p").
		LeftJoin("users u ON u.id = p.author_id")
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPopulatedPaper(row rowScanner) (*domain.Paper, error) {
	var (
		p                   domain.Paper
		authorID            string
		userID, name, email sql.NullString
	)
	if err := row.Scan(
		&p.ID, &p.Title, &p.Content, &authorID, &p.CreatedAt, &p.UpdatedAt,
		&userID, &name, &email,
	); err != nil {
		return nil, err
	}

	var profile *domain.Author
	if userID.Valid {
		profile = &domain.Author{ID: userID.String, Name: name.String, Email: email.String}
	}
	p.Author = domain.PopulatedAuthor(authorID, profile)
	return &p, nil
}

func scanPaper(row rowScanner) (*domain.Paper, error) {
	var (
		p        domain.Paper
		authorID string
	)
	if err := row.Scan(&p.ID, &p.Title, &p.Content, &authorID, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	p.Author = domain.AuthorID(authorID)
	return &p, nil
}

// List implements store.PaperStore.List.
func (s *PostgresPaperStore) List(ctx context.Context) ([]*domain.Paper, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query, args, err := populatedSelect().OrderBy("p.created_at ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build paper list query: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to list papers", slog.String("error", redact.Error(err)))
		return nil, store.NewStoreError("paper", "list", "failed to list papers", MapError(err))
	}
	defer func() { _ = rows.Close() }()

	papers := make([]*domain.Paper, 0)
	for rows.Next() {
		p, err := scanPopulatedPaper(rows)
		if err != nil {
			log.Error("failed to scan paper row", slog.String("error", err.Error()))
			return nil, store.NewStoreError("paper", "list", "failed to read papers", err)
		}
		papers = append(papers, p)
	}
	if err := rows.Err(); err != nil {
		log.Error("error iterating paper rows", slog.String("error", redact.Error(err)))
		return nil, store.NewStoreError("paper", "list", "failed to read papers", MapError(err))
	}

	log.Debug("papers listed", slog.Int("count", len(papers)))
	return papers, nil
}

// GetByID implements store.PaperStore.GetByID.
func (s *PostgresPaperStore) GetByID(ctx context.Context, id string) (*domain.Paper, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	paperID, err := parseID("paper", "get", id)
	if err != nil {
		return nil, err
	}

	query, args, err := populatedSelect().Where(sq.Eq{"p.id": paperID.String()}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build paper query: %w", err)
	}

	paper, err := scanPopulatedPaper(s.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("paper not found", slog.String("paper_id", id))
			return nil, store.ErrPaperNotFound
		}
		log.Error("failed to get paper",
			slog.String("error", redact.Error(err)),
			slog.String("paper_id", id))
		return nil, store.NewStoreError("paper", "get", "failed to get paper", MapError(err))
	}

	return paper, nil
}

// Update implements store.PaperStore.Update. Only the fields set in patch
// are written; updated_at is always refreshed.
func (s *PostgresPaperStore) Update(
	ctx context.Context,
	id string,
	patch domain.PaperPatch,
) (*domain.Paper, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	paperID, err := parseID("paper", "update", id)
	if err != nil {
		return nil, err
	}
	if err := patch.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	builder := psql.Update("papers").Set("updated_at", time.Now().UTC())
	if patch.Title != nil {
		builder = builder.Set("title", *patch.Title)
	}
	if patch.Content != nil {
		builder = builder.Set("content", *patch.Content)
	}
	query, args, err := builder.
		Where(sq.Eq{"id": paperID.String()}).
		Suffix("RETURNING " + paperColumns).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build paper update query: %w", err)
	}

	paper, err := scanPaper(s.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("paper not found for update", slog.String("paper_id", id))
			return nil, store.ErrPaperNotFound
		}
		log.Error("failed to update paper",
			slog.String("error", redact.Error(err)),
			slog.String("paper_id", id))
		return nil, store.NewStoreError("paper", "update", "failed to update paper", MapError(err))
	}

	log.Info("paper updated", slog.String("paper_id", id))
	return paper, nil
}

// Delete implements store.PaperStore.Delete.
func (s *PostgresPaperStore) Delete(ctx context.Context, id string) (*domain.Paper, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	paperID, err := parseID("paper", "delete", id)
	if err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx,
		"DELETE FROM papers WHERE id = $1 RETURNING "+paperColumns, paperID.String())
	paper, err := scanPaper(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("paper not found for delete", slog.String("paper_id", id))
			return nil, store.ErrPaperNotFound
		}
		log.Error("failed to delete paper",
			slog.String("error", redact.Error(err)),
			slog.String("paper_id", id))
		return nil, store.NewStoreError("paper", "delete", "failed to delete paper", MapError(err))
	}

	log.Info("paper deleted", slog.String("paper_id", id))
	return paper, nil
}
