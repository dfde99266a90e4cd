package store

import (
	"context"
	"sync"

	"github.com/SemBeacon/shortener/internal/shortener"
)

// MemoryStore is an in-memory implementation of shortener.KV for tests and
// local development.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]string
}

// NewMemoryStore creates a new in-memory key-value store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]string)}
}

func (m *MemoryStore) Get(_ context.Context, key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	value, ok := m.entries[key]
	if !ok {
		return "", shortener.ErrNotFound
	}

	return value, nil
}

func (m *MemoryStore) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries[key] = value

	return nil
}

func (m *MemoryStore) SetNX(_ context.Context, key, value string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.entries[key]; ok {
		return false, nil
	}

	m.entries[key] = value

	return true, nil
}

// Ping always succeeds.
func (m *MemoryStore) Ping(_ context.Context) error {
	return nil
}

// Compile-time check.
var _ shortener.KV = (*MemoryStore)(nil)
