package tui

import (
	"fmt"
	"log/slog"

	"github.com/Veraticus/finanzas/internal/model"
	"github.com/Veraticus/finanzas/internal/query"
	"github.com/Veraticus/finanzas/internal/report"
	"github.com/Veraticus/finanzas/internal/tui/components"
	"github.com/Veraticus/finanzas/internal/tui/themes"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Model holds the dashboard state. Every view is recomputed from a fresh
// snapshot after each mutation or filter change.
type Model struct {
	theme        themes.Theme
	statsRange   query.Range
	view         query.View
	config       Config
	status       string
	help         help.Model
	keymap       KeyMap
	movements    []model.Transaction
	months       []query.Month
	suggestions  []report.Suggestion
	statsPanel   components.StatsPanelModel
	width        int
	height       int
	monthOffset  int
	cursor       int
	reportCursor int
	tab          Tab
	statusErr    bool
	confirming   bool
	showHelp     bool
	quitting     bool
}

// newModel creates a new model with the given configuration.
func newModel(cfg Config) Model {
	m := Model{
		config:     cfg,
		theme:      cfg.Theme,
		keymap:     DefaultKeyMap(),
		help:       help.New(),
		statsRange: query.ThisMonth,
		statsPanel: components.NewStatsPanelModel(cfg.Theme),
		width:      cfg.Width,
		height:     cfg.Height,
	}
	m.statsPanel.Resize(m.width, m.height)
	m.refresh()
	return m
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.statsPanel.Resize(msg.Width, msg.Height)
		return m, nil

	case statusMsg:
		m.status = msg.text
		m.statusErr = msg.isErr
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.confirming {
		switch {
		case key.Matches(msg, m.keymap.Confirm):
			m.confirming = false
			m.deleteSelected()
		case key.Matches(msg, m.keymap.Cancel):
			m.confirming = false
			m.setStatus("Eliminación cancelada.", false)
		}
		return m, nil
	}

	if m.showHelp {
		if key.Matches(msg, m.keymap.Help, m.keymap.Cancel) {
			m.showHelp = false
		}
		return m, nil
	}

	switch {
	case msg.String() == "ctrl+c", key.Matches(msg, m.keymap.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keymap.Help):
		m.showHelp = true
		return m, nil
	case key.Matches(msg, m.keymap.NextTab):
		m.tab = (m.tab + 1) % Tab(len(tabNames))
		return m, nil
	case key.Matches(msg, m.keymap.PrevTab):
		m.tab = (m.tab + Tab(len(tabNames)) - 1) % Tab(len(tabNames))
		return m, nil
	}

	if msg.Type == tea.KeyRunes && len(msg.Runes) == 1 {
		if r := msg.Runes[0]; r >= '1' && int(r-'1') < len(tabNames) {
			m.tab = Tab(r - '1')
			return m, nil
		}
	}

	switch m.tab {
	case TabMovements:
		m.handleMovementsKey(msg)
	case TabStats:
		m.handleStatsKey(msg)
	case TabSuggestions:
		m.handleMonthKeys(msg)
	case TabReport:
		m.handleReportKey(msg)
	}
	return m, nil
}

func (m *Model) handleMovementsKey(msg tea.KeyMsg) {
	switch {
	case key.Matches(msg, m.keymap.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keymap.Down):
		if m.cursor < len(m.movements)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keymap.Delete):
		if _, ok := m.Selected(); ok {
			m.confirming = true
		}
	default:
		m.handleMonthKeys(msg)
	}
}

func (m *Model) handleMonthKeys(msg tea.KeyMsg) {
	switch {
	case key.Matches(msg, m.keymap.PrevMonth):
		m.monthOffset--
	case key.Matches(msg, m.keymap.NextMonth):
		if m.monthOffset >= 0 {
			return
		}
		m.monthOffset++
	default:
		return
	}
	m.cursor = 0
	m.refresh()
}

func (m *Model) handleStatsKey(msg tea.KeyMsg) {
	switch {
	case key.Matches(msg, m.keymap.RangeWeek):
		m.statsRange = query.LastWeek
	case key.Matches(msg, m.keymap.RangeMonth):
		m.statsRange = query.ThisMonth
	case key.Matches(msg, m.keymap.RangeYear):
		m.statsRange = query.ThisYear
	case key.Matches(msg, m.keymap.RangeAll):
		m.statsRange = query.All
	default:
		return
	}
	m.refresh()
}

func (m *Model) handleReportKey(msg tea.KeyMsg) {
	switch {
	case key.Matches(msg, m.keymap.Up):
		if m.reportCursor > 0 {
			m.reportCursor--
		}
	case key.Matches(msg, m.keymap.Down):
		if m.reportCursor < len(m.months)-1 {
			m.reportCursor++
		}
	}
}

// refresh rebuilds every derived view from the store.
func (m *Model) refresh() {
	var txns []model.Transaction
	if m.config.Store != nil {
		txns = m.config.Store.Snapshot()
	}
	m.view = query.NewView(txns, m.config.Now())

	m.movements = m.view.ByMonthOffset(m.monthOffset)
	m.cursor = clamp(m.cursor, len(m.movements))

	m.months = m.view.AvailableMonths()
	m.reportCursor = clamp(m.reportCursor, len(m.months))

	m.suggestions = report.Suggestions(m.movements)
	m.statsPanel.SetStats(report.PeriodFor(txns, m.view.Now(), m.statsRange))
}

func (m *Model) deleteSelected() {
	txn, ok := m.Selected()
	if !ok || m.config.Store == nil {
		return
	}

	err := m.config.Store.Remove(m.config.Ctx, txn.ID)
	m.refresh()
	if err != nil {
		slog.Error("Failed to persist deletion", "id", txn.ID, "error", err)
		m.setStatus(fmt.Sprintf("No se pudo guardar: %v", err), true)
		return
	}
	m.setStatus("Movimiento eliminado.", false)
}

func (m *Model) setStatus(text string, isErr bool) {
	m.status = text
	m.statusErr = isErr
}

// Selected returns the movement under the cursor.
func (m Model) Selected() (model.Transaction, bool) {
	if m.cursor < 0 || m.cursor >= len(m.movements) {
		return model.Transaction{}, false
	}
	return m.movements[m.cursor], true
}

// SelectedMonth returns the month highlighted in the report tab.
func (m Model) SelectedMonth() (query.Month, bool) {
	if m.reportCursor < 0 || m.reportCursor >= len(m.months) {
		return query.Month{}, false
	}
	return m.months[m.reportCursor], true
}

// CurrentMonth is the month shown by the movements and suggestions tabs.
func (m Model) CurrentMonth() query.Month {
	return m.view.CurrentMonth().Add(m.monthOffset)
}

func clamp(i, n int) int {
	if n == 0 || i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
