// Package ledger owns the canonical transaction collection and its
// load/save lifecycle against a single key-value slot.
//
// A Store is not safe for concurrent use. Every operation validates,
// mutates and persists before returning.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Veraticus/finanzas/internal/common"
	"github.com/Veraticus/finanzas/internal/model"
	"github.com/Veraticus/finanzas/internal/storage"
)

// DefaultKey is the slot holding the document.
const DefaultKey = "finance_app_data_v1"

// Store holds the in-memory collection in insertion order.
type Store struct {
	kv           storage.KeyValue
	now          func() time.Time
	key          string
	transactions []model.Transaction
	lastID       int64
}

// Option configures a Store.
type Option func(*Store)

// WithKey overrides the slot name.
func WithKey(key string) Option {
	return func(s *Store) {
		if key != "" {
			s.key = key
		}
	}
}

// WithClock overrides the wall clock used for ids and default dates.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// Load reads the slot and returns a ready Store. An absent, unreadable or
// malformed slot yields an empty collection; Load never fails.
func Load(ctx context.Context, kv storage.KeyValue, opts ...Option) *Store {
	s := &Store{
		kv:           kv,
		key:          DefaultKey,
		now:          time.Now,
		transactions: []model.Transaction{},
	}
	for _, opt := range opts {
		opt(s)
	}

	data, err := kv.Get(ctx, s.key)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			slog.Debug("No saved ledger, starting empty", "key", s.key)
		} else {
			slog.Warn("Failed to read ledger, starting empty", "key", s.key, "error", err)
		}
		return s
	}

	doc, err := DecodeDocument(data)
	if err != nil {
		slog.Warn("Saved ledger is malformed, starting empty",
			"key", s.key, "error", fmt.Errorf("slot %q: %w", s.key, err))
		return s
	}

	s.transactions = normalize(doc.Transactions)
	s.lastID = maxID(s.transactions)

	slog.Debug("Loaded ledger", "key", s.key, "transactions", len(s.transactions))
	return s
}

// Save writes the full collection to the slot. The in-memory state is
// never changed by a failed save.
func (s *Store) Save(ctx context.Context) error {
	data, err := Encode(s.Document(), false)
	if err != nil {
		return common.NewPersistenceError("save ledger", err)
	}
	if err := s.kv.Put(ctx, s.key, data); err != nil {
		return common.NewPersistenceError("save ledger", err)
	}
	return nil
}

// Replace swaps the entire collection for doc and persists it. Documents
// with missing or repeated ids, or with an entry that fails validation, are
// rejected and the current state is kept.
func (s *Store) Replace(ctx context.Context, doc Document) error {
	if err := checkIdentities(doc.Transactions); err != nil {
		return err
	}

	next := normalize(doc.Transactions)
	if err := checkEntries(next); err != nil {
		return err
	}

	s.transactions = next
	if id := maxID(next); id > s.lastID {
		s.lastID = id
	}

	slog.Info("Replaced ledger", "transactions", len(next))
	return s.Save(ctx)
}

// ReplaceRaw validates the document shape in data before calling Replace.
func (s *Store) ReplaceRaw(ctx context.Context, data []byte) error {
	doc, err := DecodeDocument(data)
	if err != nil {
		return err
	}
	return s.Replace(ctx, doc)
}

// Snapshot returns a copy of the collection in insertion order.
func (s *Store) Snapshot() []model.Transaction {
	out := make([]model.Transaction, len(s.transactions))
	copy(out, s.transactions)
	return out
}

// Document returns the collection in persisted form.
func (s *Store) Document() Document {
	return Document{Transactions: s.Snapshot()}
}

// Len returns the number of stored transactions.
func (s *Store) Len() int {
	return len(s.transactions)
}

// Now returns the store's clock reading.
func (s *Store) Now() time.Time {
	return s.now()
}

func normalize(txns []model.Transaction) []model.Transaction {
	out := make([]model.Transaction, len(txns))
	for i, txn := range txns {
		txn.Category = model.NormalizeCategory(txn.Category)
		out[i] = txn
	}
	return out
}

func maxID(txns []model.Transaction) int64 {
	var largest int64
	for _, txn := range txns {
		if txn.ID > largest {
			largest = txn.ID
		}
	}
	return largest
}
