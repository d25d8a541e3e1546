package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/Veraticus/finanzas/internal/common"
	"github.com/Veraticus/finanzas/internal/model"
	"github.com/Veraticus/finanzas/internal/query"
	"github.com/shopspring/decimal"
)

// NewTransaction is the caller-supplied part of a transaction. A zero
// Date defaults to the creation instant.
type NewTransaction struct {
	Date        time.Time
	Amount      decimal.Decimal
	Type        model.TransactionType
	Category    model.Category
	Description string
}

// Patch lists the fields to change in Update. Nil fields are kept.
type Patch struct {
	Type        *model.TransactionType
	Amount      *decimal.Decimal
	Category    *model.Category
	Description *string
	Date        *time.Time
}

// IsEmpty reports whether the patch changes nothing.
func (p Patch) IsEmpty() bool {
	return p.Type == nil && p.Amount == nil && p.Category == nil && p.Description == nil && p.Date == nil
}

// Add validates, assigns identity and timestamp, appends and persists.
// If only the save fails, the created record is returned with the error.
func (s *Store) Add(ctx context.Context, in NewTransaction) (model.Transaction, error) {
	now := s.now()
	txn := s.build(in, now)
	if err := txn.Validate(); err != nil {
		return model.Transaction{}, err
	}

	txn.ID = s.nextID(now)
	s.transactions = append(s.transactions, txn)

	return txn, s.Save(ctx)
}

// AddAll validates every entry before appending any of them, then
// persists once.
func (s *Store) AddAll(ctx context.Context, in []NewTransaction) ([]model.Transaction, error) {
	now := s.now()

	built := make([]model.Transaction, len(in))
	for i, entry := range in {
		txn := s.build(entry, now)
		if err := txn.Validate(); err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		built[i] = txn
	}

	for i := range built {
		built[i].ID = s.nextID(now)
	}
	s.transactions = append(s.transactions, built...)

	return built, s.Save(ctx)
}

// Update merges patch into the transaction with id, re-validates and persists.
func (s *Store) Update(ctx context.Context, id int64, patch Patch) (model.Transaction, error) {
	idx := s.indexOf(id)
	if idx < 0 {
		return model.Transaction{}, &common.NotFoundError{ID: id}
	}

	merged := s.transactions[idx]
	if patch.Type != nil {
		merged.Type = *patch.Type
	}
	if patch.Amount != nil {
		merged.Amount = *patch.Amount
	}
	if patch.Category != nil {
		merged.Category = *patch.Category
	}
	if patch.Description != nil {
		merged.Description = *patch.Description
	}
	if patch.Date != nil {
		merged.Date = *patch.Date
	}

	if err := merged.Validate(); err != nil {
		return model.Transaction{}, err
	}

	s.transactions[idx] = merged
	return merged, s.Save(ctx)
}

// Remove deletes the transaction with id. Unknown ids are a no-op.
func (s *Store) Remove(ctx context.Context, id int64) error {
	kept := s.transactions[:0:0]
	for _, txn := range s.transactions {
		if txn.ID != id {
			kept = append(kept, txn)
		}
	}
	s.transactions = kept

	return s.Save(ctx)
}

// Get returns the transaction with id.
func (s *Store) Get(id int64) (model.Transaction, error) {
	txn, ok := query.ByID(s.transactions, id)
	if !ok {
		return model.Transaction{}, &common.NotFoundError{ID: id}
	}
	return txn, nil
}

func (s *Store) build(in NewTransaction, now time.Time) model.Transaction {
	date := in.Date
	if date.IsZero() {
		date = now
	}
	return model.Transaction{
		Type:        in.Type,
		Amount:      in.Amount,
		Category:    in.Category,
		Description: in.Description,
		Date:        date,
	}
}

func (s *Store) indexOf(id int64) int {
	for i, txn := range s.transactions {
		if txn.ID == id {
			return i
		}
	}
	return -1
}

// nextID returns a millisecond timestamp, bumped past the last issued id
// so rapid successive calls stay unique and increasing.
func (s *Store) nextID(now time.Time) int64 {
	id := now.UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id
	return id
}
