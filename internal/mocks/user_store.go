package mocks

import (
	"context"
	"sync"

	"github.com/phrazzld/question-api/internal/domain"
	"github.com/phrazzld/question-api/internal/store"
)

// MockUserStore implements store.UserStore for testing.
type MockUserStore struct {
	CreateFn     func(ctx context.Context, user *domain.User) error
	ListFn       func(ctx context.Context) ([]*domain.User, error)
	GetByIDFn    func(ctx context.Context, id string) (*domain.User, error)
	GetByEmailFn func(ctx context.Context, email string) (*domain.User, error)
	UpdateFn     func(ctx context.Context, id string, patch domain.UserPatch) (*domain.User, error)
	DeleteFn     func(ctx context.Context, id string) (*domain.User, error)

	mu    sync.Mutex
	calls []string
}

// Ensure MockUserStore implements store.UserStore
var _ store.UserStore = (*MockUserStore)(nil)

func (m *MockUserStore) record(method string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, method)
}

// Calls returns the names of the methods invoked so far, in order.
func (m *MockUserStore) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}

// Create implements store.UserStore
func (m *MockUserStore) Create(ctx context.Context, user *domain.User) error {
	m.record("Create")
	if m.CreateFn != nil {
		return m.CreateFn(ctx, user)
	}
	return nil
}

// List implements store.UserStore
func (m *MockUserStore) List(ctx context.Context) ([]*domain.User, error) {
	m.record("List")
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}
	return []*domain.User{}, nil
}

// GetByID implements store.UserStore
func (m *MockUserStore) GetByID(ctx context.Context, id string) (*domain.User, error) {
	m.record("GetByID")
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, store.ErrUserNotFound
}

// GetByEmail implements store.UserStore
func (m *MockUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	m.record("GetByEmail")
	if m.GetByEmailFn != nil {
		return m.GetByEmailFn(ctx, email)
	}
	return nil, store.ErrUserNotFound
}

// Update implements store.UserStore
func (m *MockUserStore) Update(ctx context.Context, id string, patch domain.UserPatch) (*domain.User, error) {
	m.record("Update")
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, id, patch)
	}
	return nil, store.ErrUserNotFound
}

// Delete implements store.UserStore
func (m *MockUserStore) Delete(ctx context.Context, id string) (*domain.User, error) {
	m.record("Delete")
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	return nil, store.ErrUserNotFound
}
