package mocks

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/soloadmin/admin-api/internal/domain"
	"github.com/soloadmin/admin-api/internal/store"
)

// MockAdminStore is an in-memory store.AdminStore that enforces the same
// single-administrator and unique-email rules as the SQL store.
type MockAdminStore struct {
	mu     sync.Mutex
	admins map[uuid.UUID]domain.Administrator

	CountFn       func(ctx context.Context) (int, error)
	CreateFn      func(ctx context.Context, admin *domain.Administrator) error
	GetByIDFn     func(ctx context.Context, id uuid.UUID) (*domain.Administrator, error)
	GetByEmailFn  func(ctx context.Context, email string) (*domain.Administrator, error)
	EmailExistsFn func(ctx context.Context, email string, exclude uuid.UUID) (bool, error)
	UpdateFn      func(ctx context.Context, admin *domain.Administrator) error
	DeleteFn      func(ctx context.Context, id uuid.UUID) error

	// OnDelete is called with the ID of every administrator removed by Delete.
	OnDelete func(id uuid.UUID)
}

var _ store.AdminStore = (*MockAdminStore)(nil)

// NewMockAdminStore returns an empty store.
func NewMockAdminStore() *MockAdminStore {
	return &MockAdminStore{admins: make(map[uuid.UUID]domain.Administrator)}
}

// Seed inserts admin directly, bypassing the uniqueness rules.
func (m *MockAdminStore) Seed(admin *domain.Administrator) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.admins[admin.ID] = *admin
}

// Count implements store.AdminStore.Count
func (m *MockAdminStore) Count(ctx context.Context) (int, error) {
	if m.CountFn != nil {
		return m.CountFn(ctx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.admins), nil
}

// Create implements store.AdminStore.Create
func (m *MockAdminStore) Create(ctx context.Context, admin *domain.Administrator) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, admin)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.admins) > 0 {
		return store.ErrAdminExists
	}
	m.admins[admin.ID] = *admin
	return nil
}

// GetByID implements store.AdminStore.GetByID
func (m *MockAdminStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Administrator, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	admin, ok := m.admins[id]
	if !ok {
		return nil, store.ErrAdminNotFound
	}
	return &admin, nil
}

// GetByEmail implements store.AdminStore.GetByEmail
func (m *MockAdminStore) GetByEmail(ctx context.Context, email string) (*domain.Administrator, error) {
	if m.GetByEmailFn != nil {
		return m.GetByEmailFn(ctx, email)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, admin := range m.admins {
		if admin.Email == email {
			return &admin, nil
		}
	}
	return nil, store.ErrAdminNotFound
}

// EmailExists implements store.AdminStore.EmailExists
func (m *MockAdminStore) EmailExists(ctx context.Context, email string, exclude uuid.UUID) (bool, error) {
	if m.EmailExistsFn != nil {
		return m.EmailExistsFn(ctx, email, exclude)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, admin := range m.admins {
		if admin.Email == email && id != exclude {
			return true, nil
		}
	}
	return false, nil
}

// Update implements store.AdminStore.Update
func (m *MockAdminStore) Update(ctx context.Context, admin *domain.Administrator) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, admin)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.admins[admin.ID]; !ok {
		return store.ErrAdminNotFound
	}
	for id, other := range m.admins {
		if id != admin.ID && other.Email == admin.Email {
			return store.ErrEmailExists
		}
	}
	m.admins[admin.ID] = *admin
	return nil
}

// Delete implements store.AdminStore.Delete
func (m *MockAdminStore) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	m.mu.Lock()
	if _, ok := m.admins[id]; !ok {
		m.mu.Unlock()
		return store.ErrAdminNotFound
	}
	delete(m.admins, id)
	m.mu.Unlock()

	if m.OnDelete != nil {
		m.OnDelete(id)
	}
	return nil
}
