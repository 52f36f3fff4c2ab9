// Package storetest holds behavioural checks shared by every store.PaperStore
// and store.UserStore implementation. Backend integration tests run them
// against a live database.
package storetest

import (
	"context"
	"errors"
	"testing"

	"github.com/phrazzld/question-api/internal/domain"
	"github.com/phrazzld/question-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string {
	return &s
}

func createUser(t *testing.T, users store.UserStore, name, email string) *domain.User {
	t.Helper()

	user, err := domain.NewUser(name, email, "password123")
	require.NoError(t, err)
	user.HashedPassword = "$2a$04$abcdefghijklmnopqrstuuJ6b0Jb2ePaK1rPiJbAaCk5UuM0rGt6y"
	user.Password = ""

	require.NoError(t, users.Create(context.Background(), user))
	require.NotEmpty(t, user.ID)
	return user
}

// RunUserStoreTests checks the UserStore contract. The duplicate email case
// runs last because some backends abort the surrounding transaction on it.
func RunUserStoreTests(t *testing.T, users store.UserStore, missingID string) {
	ctx := context.Background()

	user := createUser(t, users, "Ada", "Ada@Example.com")
	assert.Equal(t, "ada@example.com", user.Email)
	assert.False(t, user.CreatedAt.IsZero())

	got, err := users.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ada", got.Name)
	assert.NotEmpty(t, got.HashedPassword)

	byEmail, err := users.GetByEmail(ctx, "ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byEmail.ID)

	all, err := users.List(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, all)

	updated, err := users.Update(ctx, user.ID, domain.UserPatch{Name: strPtr("Grace")})
	require.NoError(t, err)
	assert.Equal(t, "Grace", updated.Name)
	assert.Equal(t, "ada@example.com", updated.Email)

	_, err = users.GetByID(ctx, missingID)
	assert.True(t, errors.Is(err, store.ErrUserNotFound), "got %v", err)

	_, err = users.Update(ctx, missingID, domain.UserPatch{Name: strPtr("Nobody")})
	assert.True(t, errors.Is(err, store.ErrUserNotFound), "got %v", err)

	_, err = users.GetByID(ctx, "not-an-id")
	assert.True(t, errors.Is(err, store.ErrInvalidID), "got %v", err)

	deleted, err := users.Delete(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.ID, deleted.ID)

	_, err = users.Delete(ctx, user.ID)
	assert.True(t, errors.Is(err, store.ErrUserNotFound), "got %v", err)

	createUser(t, users, "First", "dup@example.com")
	dup, err := domain.NewUser("Second", "dup@example.com", "password123")
	require.NoError(t, err)
	dup.HashedPassword = "hash"
	err = users.Create(ctx, dup)
	assert.True(t, errors.Is(err, store.ErrEmailExists), "got %v", err)
}

// RunPaperStoreTests checks the PaperStore contract, including author
// population on reads.
func RunPaperStoreTests(t *testing.T, papers store.PaperStore, users store.UserStore, missingID string) {
	ctx := context.Background()

	author := createUser(t, users, "Ada", "ada.papers@example.com")

	paper, err := domain.NewPaper("T", "C", author.ID)
	require.NoError(t, err)
	require.NoError(t, papers.Create(ctx, paper))
	require.NotEmpty(t, paper.ID)
	assert.False(t, paper.Author.IsPopulated())
	assert.Equal(t, author.ID, paper.Author.ID)

	got, err := papers.GetByID(ctx, paper.ID)
	require.NoError(t, err)
	require.True(t, got.Author.IsPopulated())
	require.NotNil(t, got.Author.Profile)
	assert.Equal(t, "Ada", got.Author.Profile.Name)
	assert.Equal(t, "ada.papers@example.com", got.Author.Profile.Email)

	list, err := papers.List(ctx)
	require.NoError(t, err)
	var found bool
	for _, p := range list {
		if p.ID == paper.ID {
			found = true
			assert.True(t, p.Author.IsPopulated())
		}
	}
	assert.True(t, found, "created paper missing from list")

	updated, err := papers.Update(ctx, paper.ID, domain.PaperPatch{Title: strPtr("T2")})
	require.NoError(t, err)
	assert.Equal(t, "T2", updated.Title)
	assert.Equal(t, "C", updated.Content)
	assert.Equal(t, author.ID, updated.Author.ID)
	assert.False(t, updated.Author.IsPopulated())

	_, err = papers.GetByID(ctx, missingID)
	assert.True(t, errors.Is(err, store.ErrPaperNotFound), "got %v", err)

	_, err = papers.GetByID(ctx, "not-an-id")
	assert.True(t, errors.Is(err, store.ErrInvalidID), "got %v", err)

	_, err = users.Delete(ctx, author.ID)
	require.NoError(t, err)

	orphan, err := papers.GetByID(ctx, paper.ID)
	require.NoError(t, err, "deleting the author must not delete the paper")
	assert.True(t, orphan.Author.IsPopulated())
	assert.Nil(t, orphan.Author.Profile)

	deleted, err := papers.Delete(ctx, paper.ID)
	require.NoError(t, err)
	assert.Equal(t, paper.ID, deleted.ID)

	for i := 0; i < 2; i++ {
		_, err = papers.Delete(ctx, paper.ID)
		assert.True(t, errors.Is(err, store.ErrPaperNotFound), "got %v", err)
	}
}
