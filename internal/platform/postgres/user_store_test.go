package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgerrcode"
	"github.com/phrazzld/question-api/internal/domain"
	"github.com/phrazzld/question-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var userCols = []string{"id", "name", "email", "password_hash", "created_at", "updated_at"}

const testHash = "$2a$10$abcdefghijklmnopqrstuuJ0eXk4m7Vf3x0V1nQ2b6yYt8M2pQWmS"

func newTestUser(t *testing.T) *domain.User {
	t.Helper()
	user, err := domain.NewUser("Ada", "Ada@Example.com", "password123")
	require.NoError(t, err)
	user.HashedPassword = testHash
	return user
}

func TestUserStore_Create(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := NewPostgresUserStore(db, nil)

		mock.ExpectExec("INSERT INTO users").
			WithArgs(sqlmock.AnyArg(), "Ada", "ada@example.com", testHash, sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))

		user := newTestUser(t)
		require.NoError(t, s.Create(context.Background(), user))
		assert.NotEmpty(t, user.ID)
		assert.Empty(t, user.Password)
		assert.False(t, user.CreatedAt.IsZero())
	})

	t.Run("duplicate email", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := NewPostgresUserStore(db, nil)

		mock.ExpectExec("INSERT INTO users").WillReturnError(pgError(pgerrcode.UniqueViolation))

		err := s.Create(context.Background(), newTestUser(t))
		assert.ErrorIs(t, err, store.ErrEmailExists)
		assert.True(t, store.IsDuplicateError(err))

		var storeErr *store.StoreError
		require.ErrorAs(t, err, &storeErr)
		assert.Equal(t, "email already exists", storeErr.UserMessage())
	})

	t.Run("unhashed password rejected", func(t *testing.T) {
		db, _ := newMockDB(t)
		s := NewPostgresUserStore(db, nil)

		user, err := domain.NewUser("Ada", "ada@example.com", "password123")
		require.NoError(t, err)
		assert.ErrorIs(t, s.Create(context.Background(), user), store.ErrInvalidEntity)
	})

	t.Run("invalid user", func(t *testing.T) {
		db, _ := newMockDB(t)
		s := NewPostgresUserStore(db, nil)

		err := s.Create(context.Background(), &domain.User{Email: "x@y.z", HashedPassword: testHash})
		assert.ErrorIs(t, err, domain.ErrValidation)
	})
}

func TestUserStore_Get(t *testing.T) {
	now := time.Now().UTC()

	t.Run("by id", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := NewPostgresUserStore(db, nil)

		mock.ExpectQuery("SELECT (.+) FROM users WHERE id = \\$1").
			WithArgs(testAuthorID).
			WillReturnRows(sqlmock.NewRows(userCols).
				AddRow(testAuthorID, "Ada", "ada@example.com", testHash, now, now))

		user, err := s.GetByID(context.Background(), testAuthorID)
		require.NoError(t, err)
		assert.Equal(t, "Ada", user.Name)
		assert.Equal(t, testHash, user.HashedPassword)
	})

	t.Run("by email is normalized", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := NewPostgresUserStore(db, nil)

		mock.ExpectQuery("SELECT (.+) FROM users WHERE email = \\$1").
			WithArgs("ada@example.com").
			WillReturnRows(sqlmock.NewRows(userCols).
				AddRow(testAuthorID, "Ada", "ada@example.com", testHash, now, now))

		user, err := s.GetByEmail(context.Background(), " ADA@example.com")
		require.NoError(t, err)
		assert.Equal(t, testAuthorID, user.ID)
	})

	t.Run("not found", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := NewPostgresUserStore(db, nil)

		mock.ExpectQuery("SELECT (.+) FROM users").WillReturnRows(sqlmock.NewRows(userCols))

		_, err := s.GetByID(context.Background(), testAuthorID)
		assert.ErrorIs(t, err, store.ErrUserNotFound)
	})

	t.Run("malformed id", func(t *testing.T) {
		db, _ := newMockDB(t)
		s := NewPostgresUserStore(db, nil)

		_, err := s.GetByID(context.Background(), "not-a-uuid")
		assert.ErrorIs(t, err, store.ErrInvalidID)
	})
}

func TestUserStore_List(t *testing.T) {
	now := time.Now().UTC()
	db, mock := newMockDB(t)
	s := NewPostgresUserStore(db, nil)

	mock.ExpectQuery("SELECT (.+) FROM users ORDER BY created_at").
		WillReturnRows(sqlmock.NewRows(userCols).
			AddRow(testAuthorID, "Ada", "ada@example.com", testHash, now, now))

	users, err := s.List(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "ada@example.com", users[0].Email)
}

func TestUserStore_Update(t *testing.T) {
	now := time.Now().UTC()

	t.Run("name and password", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := NewPostgresUserStore(db, nil)

		mock.ExpectQuery("UPDATE users SET updated_at = \\$1, name = \\$2, password_hash = \\$3 WHERE id = \\$4 RETURNING").
			WithArgs(sqlmock.AnyArg(), "Grace", "newhash", testAuthorID).
			WillReturnRows(sqlmock.NewRows(userCols).
				AddRow(testAuthorID, "Grace", "ada@example.com", "newhash", now, now))

		user, err := s.Update(context.Background(), testAuthorID, domain.UserPatch{
			Name:           strPtr("Grace"),
			Password:       strPtr("ignored-plaintext"),
			HashedPassword: strPtr("newhash"),
		})
		require.NoError(t, err)
		assert.Equal(t, "Grace", user.Name)
	})

	t.Run("duplicate email", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := NewPostgresUserStore(db, nil)

		mock.ExpectQuery("UPDATE users").WillReturnError(pgError(pgerrcode.UniqueViolation))

		_, err := s.Update(context.Background(), testAuthorID, domain.UserPatch{Email: strPtr("taken@example.com")})
		assert.ErrorIs(t, err, store.ErrEmailExists)
	})

	t.Run("not found", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := NewPostgresUserStore(db, nil)

		mock.ExpectQuery("UPDATE users").WillReturnRows(sqlmock.NewRows(userCols))

		_, err := s.Update(context.Background(), testAuthorID, domain.UserPatch{Name: strPtr("x")})
		assert.ErrorIs(t, err, store.ErrUserNotFound)
	})
}

func TestUserStore_Delete(t *testing.T) {
	now := time.Now().UTC()

	t.Run("success", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := NewPostgresUserStore(db, nil)

		mock.ExpectQuery("DELETE FROM users WHERE id = \\$1 RETURNING").
			WithArgs(testAuthorID).
			WillReturnRows(sqlmock.NewRows(userCols).
				AddRow(testAuthorID, "Ada", "ada@example.com", testHash, now, now))

		user, err := s.Delete(context.Background(), testAuthorID)
		require.NoError(t, err)
		assert.Equal(t, testAuthorID, user.ID)
	})

	t.Run("database error", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := NewPostgresUserStore(db, nil)

		mock.ExpectQuery("DELETE FROM users").WillReturnError(errors.New("boom"))

		_, err := s.Delete(context.Background(), testAuthorID)
		var storeErr *store.StoreError
		assert.ErrorAs(t, err, &storeErr)
	})
}
