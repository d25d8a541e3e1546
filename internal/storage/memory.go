package storage

import (
	"context"
	"fmt"
	"sync"

	"github.com/Veraticus/finanzas/internal/common"
)

// MemoryStorage is an in-process KeyValue used by tests and ":memory:" runs.
type MemoryStorage struct {
	slots map[string][]byte
	// FailPuts makes every Put fail, for exercising save-failure paths.
	FailPuts error
	mu       sync.RWMutex
}

// NewMemoryStorage creates an empty in-memory store.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		slots: make(map[string][]byte),
	}
}

// Get returns a copy of the slot contents.
func (m *MemoryStorage) Get(ctx context.Context, key string) ([]byte, error) {
	if err := checkSlot(ctx, key); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	value, ok := m.slots[key]
	if !ok {
		return nil, fmt.Errorf("slot %q: %w", key, common.ErrNotFound)
	}
	return append([]byte(nil), value...), nil
}

// Put stores a copy of value under key.
func (m *MemoryStorage) Put(ctx context.Context, key string, value []byte) error {
	if err := checkSlot(ctx, key); err != nil {
		return err
	}
	if err := validateValue(value); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FailPuts != nil {
		return m.FailPuts
	}
	m.slots[key] = append([]byte(nil), value...)
	return nil
}

// Delete removes a slot. Missing slots are ignored.
func (m *MemoryStorage) Delete(ctx context.Context, key string) error {
	if err := checkSlot(ctx, key); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.slots, key)
	return nil
}

// Close is a no-op.
func (m *MemoryStorage) Close() error {
	return nil
}
