package tui

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Veraticus/finanzas/internal/ledger"
	"github.com/Veraticus/finanzas/internal/model"
	"github.com/Veraticus/finanzas/internal/query"
	"github.com/Veraticus/finanzas/internal/storage"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 10, 14, 9, 30, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

func newTestModel(t *testing.T, seed ...ledger.NewTransaction) (Model, *ledger.Store, *storage.MemoryStorage) {
	t.Helper()

	kv := storage.NewMemoryStorage()
	store := ledger.Load(context.Background(), kv, ledger.WithClock(clock))
	if len(seed) > 0 {
		_, err := store.AddAll(context.Background(), seed)
		require.NoError(t, err)
	}

	m, err := New(WithStore(store), WithClock(clock), WithSize(100, 40))
	require.NoError(t, err)
	return m, store, kv
}

func entry(typ model.TransactionType, amount int64, cat model.Category, date time.Time) ledger.NewTransaction {
	return ledger.NewTransaction{
		Type:     typ,
		Amount:   decimal.NewFromInt(amount),
		Category: cat,
		Date:     date,
	}
}

func press(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "tab":
			msg = tea.KeyMsg{Type: tea.KeyTab}
		case "shift+tab":
			msg = tea.KeyMsg{Type: tea.KeyShiftTab}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		next, _ := m.Update(msg)
		var ok bool
		m, ok = next.(Model)
		require.True(t, ok)
	}
	return m
}

func septemberAndOctober() []ledger.NewTransaction {
	return []ledger.NewTransaction{
		entry(model.TypeIncome, 1000000, model.CategorySalary, time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)),
		entry(model.TypeExpense, 250000, model.CategoryFood, time.Date(2026, 10, 3, 12, 0, 0, 0, time.UTC)),
		entry(model.TypeExpense, 80000, model.CategoryTransport, time.Date(2026, 9, 20, 12, 0, 0, 0, time.UTC)),
	}
}

func TestNew_RequiresStore(t *testing.T) {
	_, err := New()
	assert.ErrorIs(t, err, ErrNoStore)
}

func TestModel_InitialState(t *testing.T) {
	m, _, _ := newTestModel(t, septemberAndOctober()...)

	assert.Equal(t, TabMovements, m.tab)
	assert.Len(t, m.movements, 2)
	assert.Equal(t, query.Month{Year: 2026, Month: time.October}, m.CurrentMonth())
	assert.Equal(t, []query.Month{{Year: 2026, Month: time.September}}, m.months)

	stats := m.statsPanel.Stats()
	assert.True(t, stats.Balance.Equal(decimal.NewFromInt(750000)))
	assert.Equal(t, query.ThisMonth, stats.Range)

	require.Len(t, m.suggestions, 2)
	assert.Equal(t, model.CategoryFood, m.suggestions[0].Category)
}

func TestModel_TabNavigation(t *testing.T) {
	m, _, _ := newTestModel(t)

	m = press(t, m, "tab")
	assert.Equal(t, TabStats, m.tab)
	m = press(t, m, "tab", "tab", "tab")
	assert.Equal(t, TabMovements, m.tab)
	m = press(t, m, "shift+tab")
	assert.Equal(t, TabReport, m.tab)
	m = press(t, m, "2")
	assert.Equal(t, TabStats, m.tab)
}

func TestModel_MonthNavigation(t *testing.T) {
	m, _, _ := newTestModel(t, septemberAndOctober()...)

	m = press(t, m, "h")
	assert.Equal(t, -1, m.monthOffset)
	require.Len(t, m.movements, 1)
	assert.Equal(t, model.CategoryTransport, m.movements[0].Category)

	m = press(t, m, "l", "l")
	assert.Equal(t, 0, m.monthOffset, "cannot move past the current month")
	assert.Len(t, m.movements, 2)
}

func TestModel_CursorBounds(t *testing.T) {
	m, _, _ := newTestModel(t, septemberAndOctober()...)

	m = press(t, m, "k")
	assert.Equal(t, 0, m.cursor)
	m = press(t, m, "j", "j", "j")
	assert.Equal(t, 1, m.cursor)

	selected, ok := m.Selected()
	require.True(t, ok)
	assert.Equal(t, model.CategorySalary, selected.Category, "movements are newest id first")
}

func TestModel_DeleteConfirmed(t *testing.T) {
	m, store, _ := newTestModel(t, septemberAndOctober()...)
	selected, ok := m.Selected()
	require.True(t, ok)

	m = press(t, m, "d")
	assert.True(t, m.confirming)
	assert.Contains(t, m.View(), "¿Eliminar")

	m = press(t, m, "s")
	assert.False(t, m.confirming)
	assert.Equal(t, 2, store.Len())
	assert.Len(t, m.movements, 1)
	assert.Equal(t, "Movimiento eliminado.", m.status)

	_, err := store.Get(selected.ID)
	assert.Error(t, err)
}

func TestModel_DeleteCancelled(t *testing.T) {
	m, store, _ := newTestModel(t, septemberAndOctober()...)

	m = press(t, m, "d", "n")
	assert.False(t, m.confirming)
	assert.Equal(t, 3, store.Len())
	assert.Len(t, m.movements, 2)
}

func TestModel_DeletePersistenceFailure(t *testing.T) {
	m, store, kv := newTestModel(t, septemberAndOctober()...)
	kv.FailPuts = errors.New("disk full")

	m = press(t, m, "d", "s")
	assert.True(t, m.statusErr)
	assert.Contains(t, m.status, "No se pudo guardar")
	assert.Equal(t, 2, store.Len(), "the removal stays applied in memory")
	assert.Len(t, m.movements, 1)
}

func TestModel_DeleteOnEmptyMonth(t *testing.T) {
	m, _, _ := newTestModel(t)

	m = press(t, m, "d")
	assert.False(t, m.confirming)
}

func TestModel_StatsRange(t *testing.T) {
	m, _, _ := newTestModel(t, septemberAndOctober()...)
	m = press(t, m, "2")

	m = press(t, m, "a")
	stats := m.statsPanel.Stats()
	assert.Equal(t, query.All, stats.Range)
	assert.Equal(t, 3, stats.Count)
	assert.True(t, stats.Totals.Expense.Equal(decimal.NewFromInt(330000)))

	m = press(t, m, "w")
	stats = m.statsPanel.Stats()
	assert.Equal(t, query.LastWeek, stats.Range)
	assert.Equal(t, 0, stats.Count)

	m = press(t, m, "y")
	assert.Equal(t, 3, m.statsPanel.Stats().Count)
}

func TestModel_ReportTab(t *testing.T) {
	m, _, _ := newTestModel(t, septemberAndOctober()...)
	m = press(t, m, "4")

	month, ok := m.SelectedMonth()
	require.True(t, ok)
	assert.Equal(t, query.Month{Year: 2026, Month: time.September}, month)

	view := m.View()
	assert.Contains(t, view, "septiembre de 2026")
	assert.Contains(t, view, "Transporte")
}

func TestModel_HelpAndQuit(t *testing.T) {
	m, _, _ := newTestModel(t)

	m = press(t, m, "?")
	assert.True(t, m.showHelp)
	m = press(t, m, "q")
	assert.True(t, m.showHelp, "quit is ignored while help is open")
	m = press(t, m, "?")
	assert.False(t, m.showHelp)

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	assert.True(t, next.(Model).quitting)
	assert.Empty(t, next.(Model).View())
}

func TestModel_WindowResize(t *testing.T) {
	m, _, _ := newTestModel(t)

	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 50})
	resized := next.(Model)
	assert.Equal(t, 120, resized.width)
	assert.Equal(t, 50, resized.height)
}

func TestModel_EmptyViews(t *testing.T) {
	m, _, _ := newTestModel(t)

	assert.Contains(t, m.View(), "No hay movimientos")
	m = press(t, m, "3")
	assert.Contains(t, m.View(), "sugerencias")
	m = press(t, m, "4")
	assert.Contains(t, m.View(), "meses anteriores")
}

func TestTab_String(t *testing.T) {
	assert.Equal(t, "Movimientos", TabMovements.String())
	assert.Equal(t, "Reporte", TabReport.String())
	assert.Equal(t, "?", Tab(9).String())
}
