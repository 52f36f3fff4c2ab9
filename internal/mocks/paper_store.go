package mocks

import (
	"context"
	"sync"

	"github.com/phrazzld/question-api/internal/domain"
	"github.com/phrazzld/question-api/internal/store"
)

// MockPaperStore implements store.PaperStore for testing.
// Unset function fields return zero values.
type MockPaperStore struct {
	CreateFn  func(ctx context.Context, paper *domain.Paper) error
	ListFn    func(ctx context.Context) ([]*domain.Paper, error)
	GetByIDFn func(ctx context.Context, id string) (*domain.Paper, error)
	UpdateFn  func(ctx context.Context, id string, patch domain.PaperPatch) (*domain.Paper, error)
	DeleteFn  func(ctx context.Context, id string) (*domain.Paper, error)

	mu    sync.Mutex
	calls []string
}

// Ensure MockPaperStore implements store.PaperStore
var _ store.PaperStore = (*MockPaperStore)(nil)

func (m *MockPaperStore) record(method string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, method)
}

// Calls returns the names of the methods invoked so far, in order.
func (m *MockPaperStore) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}

// Create implements store.PaperStore
func (m *MockPaperStore) Create(ctx context.Context, paper *domain.Paper) error {
	m.record("Create")
	if m.CreateFn != nil {
		return m.CreateFn(ctx, paper)
	}
	return nil
}

// List implements store.PaperStore
func (m *MockPaperStore) List(ctx context.Context) ([]*domain.Paper, error) {
	m.record("List")
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}
	return []*domain.Paper{}, nil
}

// GetByID implements store.PaperStore
func (m *MockPaperStore) GetByID(ctx context.Context, id string) (*domain.Paper, error) {
	m.record("GetByID")
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, store.ErrPaperNotFound
}

// Update implements store.PaperStore
func (m *MockPaperStore) Update(ctx context.Context, id string, patch domain.PaperPatch) (*domain.Paper, error) {
	m.record("Update")
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, id, patch)
	}
	return nil, store.ErrPaperNotFound
}

// Delete implements store.PaperStore
func (m *MockPaperStore) Delete(ctx context.Context, id string) (*domain.Paper, error) {
	m.record("Delete")
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	return nil, store.ErrPaperNotFound
}
