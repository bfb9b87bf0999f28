package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/soloadmin/admin-api/internal/domain"
	"github.com/soloadmin/admin-api/internal/store"
)

// MockTokenStore is an in-memory store.TokenStore.
type MockTokenStore struct {
	mu     sync.Mutex
	tokens map[uuid.UUID]domain.AccessToken

	CreateFn func(ctx context.Context, token *domain.AccessToken) error
	GetFn    func(ctx context.Context, id uuid.UUID) (*domain.AccessToken, error)
	TouchFn  func(ctx context.Context, id uuid.UUID, at time.Time) error
	DeleteFn func(ctx context.Context, id uuid.UUID) error
}

var _ store.TokenStore = (*MockTokenStore)(nil)

// NewMockTokenStore returns an empty store.
func NewMockTokenStore() *MockTokenStore {
	return &MockTokenStore{tokens: make(map[uuid.UUID]domain.AccessToken)}
}

// Create implements store.TokenStore.Create
func (m *MockTokenStore) Create(ctx context.Context, token *domain.AccessToken) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, token)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tokens[token.ID] = *token
	return nil
}

// Get implements store.TokenStore.Get
func (m *MockTokenStore) Get(ctx context.Context, id uuid.UUID) (*domain.AccessToken, error) {
	if m.GetFn != nil {
		return m.GetFn(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	token, ok := m.tokens[id]
	if !ok {
		return nil, store.ErrTokenNotFound
	}
	return &token, nil
}

// Touch implements store.TokenStore.Touch
func (m *MockTokenStore) Touch(ctx context.Context, id uuid.UUID, at time.Time) error {
	if m.TouchFn != nil {
		return m.TouchFn(ctx, id, at)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	token, ok := m.tokens[id]
	if !ok {
		return store.ErrTokenNotFound
	}
	token.LastUsedAt = &at
	m.tokens[id] = token
	return nil
}

// Delete implements store.TokenStore.Delete
func (m *MockTokenStore) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.tokens[id]; !ok {
		return store.ErrTokenNotFound
	}
	delete(m.tokens, id)
	return nil
}

// DeleteForAdmin removes every token of adminID. Wire it to MockAdminStore.OnDelete
// to mirror the SQL store's cascade.
func (m *MockTokenStore) DeleteForAdmin(adminID uuid.UUID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, token := range m.tokens {
		if token.AdministratorID == adminID {
			delete(m.tokens, id)
		}
	}
}

// Len returns the number of stored tokens.
func (m *MockTokenStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.tokens)
}
