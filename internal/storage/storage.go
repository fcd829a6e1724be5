// Package storage provides the scoped key-value store used for client-side
// persistence (filter preference and similar small state). Adapters are
// allowed to fail; callers treat persistence as best-effort.
package storage

import (
	"fmt"
	"sync"
)

// KV is a scoped string key-value store
type KV interface {
	GetItem(key string) (string, error)
	SetItem(key, value string) error
}

// ErrNotFound is returned by GetItem when the key has no value
var ErrNotFound = fmt.Errorf("key not found")

// Memory is an in-memory KV adapter, primarily for tests
type Memory struct {
	mu    sync.RWMutex
	items map[string]string
}

// NewMemory creates an empty in-memory store
func NewMemory() *Memory {
	return &Memory{items: make(map[string]string)}
}

// GetItem returns the stored value or ErrNotFound
func (m *Memory) GetItem(key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	value, ok := m.items[key]
	if !ok {
		return "", ErrNotFound
	}
	return value, nil
}

// SetItem stores the value under key
func (m *Memory) SetItem(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[key] = value
	return nil
}
