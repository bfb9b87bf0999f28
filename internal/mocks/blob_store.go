package mocks

import (
	"context"
	"sync"

	"github.com/soloadmin/admin-api/internal/store"
)

// MockBlobStore is an in-memory store.BlobStore that records every call.
type MockBlobStore struct {
	mu    sync.Mutex
	blobs map[string][]byte

	PutFn    func(ctx context.Context, key string, data []byte, contentType string) error
	DeleteFn func(ctx context.Context, key string) error

	PutKeys     []string
	DeletedKeys []string
}

var _ store.BlobStore = (*MockBlobStore)(nil)

// NewMockBlobStore returns an empty store.
func NewMockBlobStore() *MockBlobStore {
	return &MockBlobStore{blobs: make(map[string][]byte)}
}

// Put implements store.BlobStore.Put
func (m *MockBlobStore) Put(ctx context.Context, key string, data []byte, contentType string) error {
	m.mu.Lock()
	m.PutKeys = append(m.PutKeys, key)
	m.mu.Unlock()

	if m.PutFn != nil {
		return m.PutFn(ctx, key, data, contentType)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.blobs[key] = append([]byte(nil), data...)
	return nil
}

// Delete implements store.BlobStore.Delete
func (m *MockBlobStore) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	m.DeletedKeys = append(m.DeletedKeys, key)
	m.mu.Unlock()

	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, key)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.blobs, key)
	return nil
}

// Has reports whether a blob is stored under key.
func (m *MockBlobStore) Has(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.blobs[key]
	return ok
}

// Len returns the number of stored blobs.
func (m *MockBlobStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.blobs)
}
