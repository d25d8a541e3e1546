package backup

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Veraticus/finanzas/internal/common"
	"github.com/Veraticus/finanzas/internal/ledger"
	"github.com/Veraticus/finanzas/internal/model"
	"github.com/Veraticus/finanzas/internal/storage"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 10, 14, 9, 30, 0, 0, time.UTC)

func newStore(t *testing.T) *ledger.Store {
	t.Helper()
	clock := fixedNow
	return ledger.Load(context.Background(), storage.NewMemoryStorage(), ledger.WithClock(func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}))
}

func populate(t *testing.T, store *ledger.Store) {
	t.Helper()
	ctx := context.Background()
	entries := []ledger.NewTransaction{
		{Type: model.TypeIncome, Amount: decimal.RequireFromString("1000000"), Category: model.CategorySalary, Description: "Nómina"},
		{Type: model.TypeExpense, Amount: decimal.RequireFromString("250000.50"), Category: model.CategoryFood, Description: "Mercado"},
		{Type: model.TypeExpense, Amount: decimal.RequireFromString("12000"), Category: model.CategoryTransport, Date: fixedNow.AddDate(0, -1, 0)},
	}
	for _, e := range entries {
		_, err := store.Add(ctx, e)
		require.NoError(t, err)
	}
}

func assertSameTransactions(t *testing.T, want, got []model.Transaction) {
	t.Helper()
	require.Len(t, got, len(want))
	for i := range want {
		assert.Equal(t, want[i].ID, got[i].ID)
		assert.Equal(t, want[i].Type, got[i].Type)
		assert.True(t, want[i].Amount.Equal(got[i].Amount), "amount %s != %s", want[i].Amount, got[i].Amount)
		assert.Equal(t, want[i].Category, got[i].Category)
		assert.Equal(t, want[i].Description, got[i].Description)
		assert.True(t, want[i].Date.Equal(got[i].Date))
	}
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "finanzas_backup_2026-10-14.json", FileName(fixedNow))

	// 21:00 in Bogotá is already the next day in UTC.
	bogota := time.FixedZone("COT", -5*60*60)
	late := time.Date(2026, 10, 14, 21, 0, 0, 0, bogota)
	assert.Equal(t, "finanzas_backup_2026-10-15.json", FileName(late))
}

func TestExport_IsIndentedDocument(t *testing.T) {
	store := newStore(t)
	populate(t, store)

	var buf bytes.Buffer
	require.NoError(t, Export(&buf, store))

	assert.True(t, strings.HasPrefix(buf.String(), "{\n  \"transactions\": [\n    {"))

	var decoded map[string][]map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded["transactions"], 3)
	assert.Equal(t, "expense", decoded["transactions"][1]["type"])
	assert.InDelta(t, 250000.50, decoded["transactions"][1]["amount"], 0.001)
}

func TestExport_EmptyStore(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Export(&buf, newStore(t)))
	assert.JSONEq(t, `{"transactions": []}`, buf.String())
}

func TestRoundTrip(t *testing.T) {
	ctx := context.Background()
	source := newStore(t)
	populate(t, source)

	var buf bytes.Buffer
	require.NoError(t, Export(&buf, source))

	target := newStore(t)
	_, err := target.Add(ctx, ledger.NewTransaction{
		Type: model.TypeExpense, Amount: decimal.NewFromInt(5), Category: model.CategoryOther,
	})
	require.NoError(t, err)

	require.NoError(t, Restore(ctx, target, &buf))
	assertSameTransactions(t, source.Snapshot(), target.Snapshot())
}

func TestRestore_RejectsBadShapes(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "missing transactions", input: `{"items": []}`},
		{name: "transactions not an array", input: `{"transactions": {"id": 1}}`},
		{name: "top level array", input: `[{"id": 1}]`},
		{name: "not json", input: `hello`},
		{name: "repeated ids", input: `{"transactions": [
			{"id": 1, "type": "income", "amount": 1, "category": "salary", "date": "2026-10-01T00:00:00Z"},
			{"id": 1, "type": "expense", "amount": 1, "category": "food", "date": "2026-10-01T00:00:00Z"}
		]}`},
		{name: "negative amount", input: `{"transactions": [
			{"id": 7, "type": "expense", "amount": -500, "category": "food", "date": "2026-10-01T00:00:00Z"}
		]}`},
		{name: "unknown type", input: `{"transactions": [
			{"id": 7, "type": "bogus", "amount": 500, "category": "food", "date": "2026-10-01T00:00:00Z"}
		]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newStore(t)
			populate(t, store)
			before := store.Snapshot()

			err := Restore(context.Background(), store, strings.NewReader(tt.input))
			require.Error(t, err)
			assert.True(t, errors.Is(err, common.ErrImportFormat), "got %v", err)
			assertSameTransactions(t, before, store.Snapshot())
		})
	}
}

func TestManager_CreateAndList(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "backups")
	m, err := NewManager(dir)
	require.NoError(t, err)
	assert.Equal(t, dir, m.Dir())

	store := newStore(t)
	populate(t, store)

	info, err := m.Create(store, fixedNow, false)
	require.NoError(t, err)
	assert.Equal(t, "finanzas_backup_2026-10-14.json", info.Name)
	assert.Equal(t, filepath.Join(dir, info.Name), info.Path)
	assert.Positive(t, info.Size)

	_, err = m.Create(store, fixedNow, false)
	assert.ErrorIs(t, err, ErrBackupExists)

	_, err = m.Create(store, fixedNow, true)
	require.NoError(t, err)

	_, err = m.Create(store, fixedNow.AddDate(0, 0, -3), false)
	require.NoError(t, err)

	// Unrelated files are ignored.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "finanzas_backup_latest.json"), []byte("{}"), 0600))

	backups, err := m.List()
	require.NoError(t, err)
	require.Len(t, backups, 2)
	assert.Equal(t, "finanzas_backup_2026-10-14.json", backups[0].Name)
	assert.Equal(t, "finanzas_backup_2026-10-11.json", backups[1].Name)
}

func TestRestoreFile(t *testing.T) {
	ctx := context.Background()
	m, err := NewManager(t.TempDir())
	require.NoError(t, err)

	source := newStore(t)
	populate(t, source)
	info, err := m.Create(source, fixedNow, false)
	require.NoError(t, err)

	target := newStore(t)
	require.NoError(t, RestoreFile(ctx, target, info.Path))
	assertSameTransactions(t, source.Snapshot(), target.Snapshot())

	err = RestoreFile(ctx, target, filepath.Join(m.Dir(), "missing.json"))
	assert.Error(t, err)
}
