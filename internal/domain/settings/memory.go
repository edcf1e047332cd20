package settings

import (
	"context"
	"sync"
)

// MemoryStore is an in-memory ParamStore for tests and tooling.
type MemoryStore struct {
	mu     sync.RWMutex
	params map[string]string
}

// NewMemoryStore creates an empty in-memory parameter store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{params: make(map[string]string)}
}

// GetParam returns the stored value or "" when the key is absent.
func (m *MemoryStore) GetParam(ctx context.Context, key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.params[key], nil
}

// SetParam stores a value.
func (m *MemoryStore) SetParam(ctx context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.params[key] = value
	return nil
}

var _ ParamStore = (*MemoryStore)(nil)
