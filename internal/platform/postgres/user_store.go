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

const userColumns = "id, name, email, password_hash, created_at, updated_at"

// PostgresUserStore implements the store.UserStore interface
// using a PostgreSQL database as the storage backend.
type PostgresUserStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresUserStore creates a new PostgreSQL implementation of the UserStore interface.
// If logger is nil, the default logger is used.
func NewPostgresUserStore(db store.DBTX, logger *slog.Logger) *PostgresUserStore {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresUserStore{
		db:     db,
		logger: logger.With(slog.String("component", "user_store")),
	}
}

// Ensure PostgresUserStore implements store.UserStore interface
var _ store.UserStore = (*PostgresUserStore)(nil)

func scanUser(row rowScanner) (*domain.User, error) {
	var u domain.User
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.HashedPassword, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, err
	}
	return &u, nil
}

// duplicateEmail wraps a unique violation on users.email.
func duplicateEmail(operation string, err error) error {
	return store.NewStoreError("user", operation, "email already exists",
		fmt.Errorf("%w: %v", store.ErrEmailExists, err))
}

// Create implements store.UserStore.Create.
// Returns store.ErrEmailExists if the email is already taken.
func (s *PostgresUserStore) Create(ctx context.Context, user *domain.User) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := user.Validate(); err != nil {
		log.Warn("user validation failed during create", slog.String("error", err.Error()))
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}
	if user.HashedPassword == "" {
		return store.NewStoreError("user", "create", "password must be hashed before storing",
			store.ErrInvalidEntity)
	}

	now := time.Now().UTC()
	id := uuid.New().String()
	email := domain.NormalizeEmail(user.Email)

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (id, name, email, password_hash, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, id, user.Name, email, user.HashedPassword, now, now)
	if err != nil {
		if IsUniqueViolation(err) {
			log.Warn("attempt to create user with existing email")
			return duplicateEmail("create", err)
		}
		log.Error("failed to create user", slog.String("error", redact.Error(err)))
		return store.NewStoreError("user", "create", "failed to create user", MapError(err))
	}

	user.ID = id
	user.Email = email
	user.Password = ""
	user.CreatedAt = now
	user.UpdatedAt = now

	log.Info("user created", slog.String("user_id", id))
	return nil
}

// List implements store.UserStore.List.
func (s *PostgresUserStore) List(ctx context.Context) ([]*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx,
		"SELECT "+userColumns+" FROM users ORDER BY created_at ASC")
	if err != nil {
		log.Error("failed to list users", slog.String("error", redact.Error(err)))
		return nil, store.NewStoreError("user", "list", "failed to list users", MapError(err))
	}
	defer func() { _ = rows.Close() }()

	users := make([]*domain.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, store.NewStoreError("user", "list", "failed to read users", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("user", "list", "failed to read users", MapError(err))
	}

	return users, nil
}

// GetByID implements store.UserStore.GetByID.
func (s *PostgresUserStore) GetByID(ctx context.Context, id string) (*domain.User, error) {
	userID, err := parseID("user", "get", id)
	if err != nil {
		return nil, err
	}
	return s.getOne(ctx, "id", userID.String())
}

// GetByEmail implements store.UserStore.GetByEmail.
func (s *PostgresUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.getOne(ctx, "email", domain.NormalizeEmail(email))
}

func (s *PostgresUserStore) getOne(ctx context.Context, column, value string) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query, args, err := psql.Select(userColumns).From("users").Where(sq.Eq{column: value}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build user query: %w", err)
	}

	user, err := scanUser(s.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("user not found", slog.String("by", column))
			return nil, store.ErrUserNotFound
		}
		log.Error("failed to get user",
			slog.String("error", redact.Error(err)),
			slog.String("by", column))
		return nil, store.NewStoreError("user", "get", "failed to get user", MapError(err))
	}
	return user, nil
}

// Update implements store.UserStore.Update.
func (s *PostgresUserStore) Update(
	ctx context.Context,
	id string,
	patch domain.UserPatch,
) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	userID, err := parseID("user", "update", id)
	if err != nil {
		return nil, err
	}

	builder := psql.Update("users").Set("updated_at", time.Now().UTC())
	if patch.Name != nil {
		builder = builder.Set("name", *patch.Name)
	}
	if patch.Email != nil {
		builder = builder.Set("email", domain.NormalizeEmail(*patch.Email))
	}
	if patch.HashedPassword != nil {
		builder = builder.Set("password_hash", *patch.HashedPassword)
	}
	query, args, err := builder.
		Where(sq.Eq{"id": userID.String()}).
		Suffix("RETURNING " + userColumns).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build user update query: %w", err)
	}

	user, err := scanUser(s.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, store.ErrUserNotFound
		case IsUniqueViolation(err):
			log.Warn("attempt to update user to existing email", slog.String("user_id", id))
			return nil, duplicateEmail("update", err)
		}
		log.Error("failed to update user",
			slog.String("error", redact.Error(err)),
			slog.String("user_id", id))
		return nil, store.NewStoreError("user", "update", "failed to update user", MapError(err))
	}

	log.Info("user updated", slog.String("user_id", id))
	return user, nil
}

// Delete implements store.UserStore.Delete.
func (s *PostgresUserStore) Delete(ctx context.Context, id string) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	userID, err := parseID("user", "delete", id)
	if err != nil {
		return nil, err
	}

	user, err := scanUser(s.db.QueryRowContext(ctx,
		"DELETE FROM users WHERE id = $1 RETURNING "+userColumns, userID.String()))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrUserNotFound
		}
		log.Error("failed to delete user",
			slog.String("error", redact.Error(err)),
			slog.String("user_id", id))
		return nil, store.NewStoreError("user", "delete", "failed to delete user", MapError(err))
	}

	log.Info("user deleted", slog.String("user_id", id))
	return user, nil
}
