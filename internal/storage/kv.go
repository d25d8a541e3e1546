package storage

import (
	"context"
)

// KeyValue is the persistence boundary: a set of named slots holding opaque bytes.
// Get returns common.ErrNotFound when the slot has never been written.
type KeyValue interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// New opens the store configured by dbPath. ":memory:" selects the
// in-process implementation; anything else is a SQLite database file.
func New(ctx context.Context, dbPath string) (KeyValue, error) {
	if dbPath == ":memory:" {
		return NewMemoryStorage(), nil
	}

	store, err := NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, err
	}

	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, err
	}

	return store, nil
}
