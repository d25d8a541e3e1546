package ledger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Veraticus/finanzas/internal/common"
	"github.com/Veraticus/finanzas/internal/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_Add(t *testing.T) {
	tests := []struct {
		name      string
		in        NewTransaction
		wantField string
	}{
		{
			name: "valid expense",
			in:   NewTransaction{Type: model.TypeExpense, Amount: decimal.NewFromInt(250000), Category: model.CategoryFood, Description: "Mercado"},
		},
		{
			name:      "zero amount",
			in:        NewTransaction{Type: model.TypeExpense, Amount: decimal.Zero, Category: model.CategoryFood},
			wantField: "amount",
		},
		{
			name:      "negative amount",
			in:        NewTransaction{Type: model.TypeIncome, Amount: decimal.NewFromInt(-1), Category: model.CategorySalary},
			wantField: "amount",
		},
		{
			name:      "unknown type",
			in:        NewTransaction{Type: "loan", Amount: decimal.NewFromInt(1), Category: model.CategoryOther},
			wantField: "type",
		},
		{
			name:      "unknown category",
			in:        NewTransaction{Type: model.TypeExpense, Amount: decimal.NewFromInt(1), Category: "travel"},
			wantField: "category",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, kv := newTestStore(t)

			txn, err := s.Add(context.Background(), tt.in)
			if tt.wantField != "" {
				var vErr *common.ValidationError
				require.True(t, errors.As(err, &vErr), "want ValidationError, got %v", err)
				assert.Equal(t, tt.wantField, vErr.Field)
				assert.Equal(t, 0, s.Len())

				_, getErr := kv.Get(context.Background(), DefaultKey)
				assert.ErrorIs(t, getErr, common.ErrNotFound, "nothing should be persisted")
				return
			}

			require.NoError(t, err)
			assert.Equal(t, fixedNow.UnixMilli(), txn.ID)
			assert.True(t, fixedNow.Equal(txn.Date))
			assert.Equal(t, tt.in.Description, txn.Description)
			assert.Equal(t, 1, Load(context.Background(), kv).Len())
		})
	}
}

func TestStore_Add_KeepsBackdatedDate(t *testing.T) {
	s, _ := newTestStore(t)
	backdated := time.Date(2025, 12, 31, 18, 0, 0, 0, time.UTC)

	txn, err := s.Add(context.Background(), NewTransaction{
		Type: model.TypeExpense, Amount: decimal.NewFromInt(1), Category: model.CategoryOther, Date: backdated,
	})
	require.NoError(t, err)
	assert.True(t, backdated.Equal(txn.Date))
}

func TestStore_Add_UniqueIDsForRapidCalls(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	seen := make(map[int64]bool)
	var last int64
	for i := 0; i < 50; i++ {
		txn, err := s.Add(ctx, NewTransaction{Type: model.TypeExpense, Amount: decimal.NewFromInt(1), Category: model.CategoryFood})
		require.NoError(t, err)
		assert.False(t, seen[txn.ID], "id %d reused", txn.ID)
		assert.Greater(t, txn.ID, last)
		seen[txn.ID] = true
		last = txn.ID
	}
}

func TestStore_AddAll(t *testing.T) {
	s, kv := newTestStore(t)
	ctx := context.Background()

	created, err := s.AddAll(ctx, []NewTransaction{
		{Type: model.TypeIncome, Amount: decimal.NewFromInt(10), Category: model.CategorySalary},
		{Type: model.TypeExpense, Amount: decimal.NewFromInt(3), Category: model.CategoryFood},
	})
	require.NoError(t, err)
	require.Len(t, created, 2)
	assert.Less(t, created[0].ID, created[1].ID)
	assert.Equal(t, 2, Load(ctx, kv).Len())

	_, err = s.AddAll(ctx, []NewTransaction{
		{Type: model.TypeIncome, Amount: decimal.NewFromInt(10), Category: model.CategorySalary},
		{Type: model.TypeExpense, Amount: decimal.Zero, Category: model.CategoryFood},
	})
	assert.ErrorIs(t, err, common.ErrValidation)
	assert.Equal(t, 2, s.Len(), "a failing batch adds nothing")
}

func TestStore_Update(t *testing.T) {
	s, kv := newTestStore(t)
	ctx := context.Background()

	original, err := s.Add(ctx, NewTransaction{Type: model.TypeExpense, Amount: decimal.NewFromInt(100), Category: model.CategoryFood, Description: "Almuerzo"})
	require.NoError(t, err)

	newAmount := decimal.NewFromInt(120)
	newCategory := model.CategoryEntertainment
	updated, err := s.Update(ctx, original.ID, Patch{Amount: &newAmount, Category: &newCategory})
	require.NoError(t, err)

	assert.Equal(t, original.ID, updated.ID)
	assert.True(t, newAmount.Equal(updated.Amount))
	assert.Equal(t, newCategory, updated.Category)
	assert.Equal(t, "Almuerzo", updated.Description, "unpatched fields are kept")
	assert.Equal(t, model.TypeExpense, updated.Type)
	assert.True(t, original.Date.Equal(updated.Date))

	reloaded, err := Load(ctx, kv).Get(original.ID)
	require.NoError(t, err)
	assert.True(t, newAmount.Equal(reloaded.Amount))
}

func TestStore_Update_Errors(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	_, err := s.Update(ctx, 42, Patch{})
	var nfErr *common.NotFoundError
	require.True(t, errors.As(err, &nfErr))
	assert.Equal(t, int64(42), nfErr.ID)
	assert.ErrorIs(t, err, common.ErrNotFound)

	txn, err := s.Add(ctx, NewTransaction{Type: model.TypeExpense, Amount: decimal.NewFromInt(100), Category: model.CategoryFood})
	require.NoError(t, err)

	zero := decimal.Zero
	_, err = s.Update(ctx, txn.ID, Patch{Amount: &zero})
	assert.ErrorIs(t, err, common.ErrValidation)

	badType := model.TransactionType("gift")
	_, err = s.Update(ctx, txn.ID, Patch{Type: &badType})
	assert.ErrorIs(t, err, common.ErrValidation)

	stored, err := s.Get(txn.ID)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(100).Equal(stored.Amount), "rejected update leaves the record untouched")
	assert.Equal(t, model.TypeExpense, stored.Type)
}

func TestStore_Remove_Idempotent(t *testing.T) {
	s, kv := newTestStore(t)
	ctx := context.Background()

	keep, err := s.Add(ctx, NewTransaction{Type: model.TypeIncome, Amount: decimal.NewFromInt(1), Category: model.CategorySalary})
	require.NoError(t, err)
	drop, err := s.Add(ctx, NewTransaction{Type: model.TypeExpense, Amount: decimal.NewFromInt(1), Category: model.CategoryFood})
	require.NoError(t, err)

	require.NoError(t, s.Remove(ctx, drop.ID))
	after := s.Snapshot()

	require.NoError(t, s.Remove(ctx, drop.ID))
	assert.Equal(t, after, s.Snapshot())
	require.Len(t, after, 1)
	assert.Equal(t, keep.ID, after[0].ID)
	assert.Equal(t, 1, Load(ctx, kv).Len())

	_, err = s.Get(drop.ID)
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestPatch_IsEmpty(t *testing.T) {
	assert.True(t, Patch{}.IsEmpty())
	desc := "x"
	assert.False(t, Patch{Description: &desc}.IsEmpty())
}
