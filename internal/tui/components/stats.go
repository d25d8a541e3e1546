package components

import (
	"fmt"
	"strings"

	"github.com/Veraticus/finanzas/internal/cli"
	"github.com/Veraticus/finanzas/internal/report"
	"github.com/Veraticus/finanzas/internal/tui/themes"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
)

const maxBarWidth = 20

// StatsPanelModel displays the aggregates of one range.
type StatsPanelModel struct {
	theme       themes.Theme
	stats       report.PeriodStats
	progressBar progress.Model
	width       int
	height      int
}

// NewStatsPanelModel creates a new stats panel.
func NewStatsPanelModel(theme themes.Theme) StatsPanelModel {
	prog := progress.New(progress.WithSolidFill(string(theme.Error)))
	prog.ShowPercentage = false
	prog.Width = 30

	return StatsPanelModel{
		theme:       theme,
		progressBar: prog,
		stats:       report.Period(nil),
	}
}

// SetStats replaces the aggregates shown by the panel.
func (m *StatsPanelModel) SetStats(stats report.PeriodStats) {
	m.stats = stats
}

// Stats returns the aggregates currently shown.
func (m StatsPanelModel) Stats() report.PeriodStats {
	return m.stats
}

// Update handles messages.
func (m StatsPanelModel) Update(msg tea.Msg) (StatsPanelModel, tea.Cmd) {
	if msg, ok := msg.(tea.WindowSizeMsg); ok {
		m.Resize(msg.Width, msg.Height)
	}
	return m, nil
}

// View renders the stats panel.
func (m StatsPanelModel) View() string {
	sections := []string{
		m.theme.Subtitle.Render("Rango: " + cli.RangeLabel(m.stats.Range)),
		m.renderTotals(),
		m.renderRatio(),
		m.renderBreakdown(),
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m StatsPanelModel) renderTotals() string {
	lines := []string{
		fmt.Sprintf("%-10s %s", "Ingresos:", m.theme.Income.Render(cli.FormatMoney(m.stats.Totals.Income))),
		fmt.Sprintf("%-10s %s", "Gastos:", m.theme.Expense.Render(cli.FormatMoney(m.stats.Totals.Expense))),
		fmt.Sprintf("%-10s %s", "Balance:", m.balanceStyle().Render(cli.FormatMoney(m.stats.Balance))),
		fmt.Sprintf("%-10s %d", "Registros:", m.stats.Count),
	}
	return m.theme.Normal.Render(strings.Join(lines, "\n"))
}

// renderRatio shows how much of the income the expenses consumed.
func (m StatsPanelModel) renderRatio() string {
	if m.stats.Totals.Income.IsZero() {
		return ""
	}

	pct := report.PercentageOfTotal(m.stats.Totals.Expense, m.stats.Totals.Income)
	ratio := min(float64(pct)/100, 1)

	return lipgloss.JoinVertical(
		lipgloss.Left,
		"",
		m.theme.Subtitle.Render("Gastos sobre ingresos"),
		fmt.Sprintf("%s %d%%", m.progressBar.ViewAs(ratio), pct),
	)
}

func (m StatsPanelModel) renderBreakdown() string {
	rows := m.stats.Breakdown.Sorted()
	if len(rows) == 0 {
		return lipgloss.JoinVertical(
			lipgloss.Left,
			"",
			lipgloss.NewStyle().Foreground(m.theme.Muted).Render("Sin gastos en este rango."),
		)
	}

	total := m.stats.Breakdown.Total()
	top := rows[0].Amount
	barStyle := lipgloss.NewStyle().Foreground(m.theme.Primary)

	lines := []string{"", m.theme.Subtitle.Render("Gastos por categoría")}
	for _, row := range rows {
		barLen := 0
		if top.IsPositive() {
			barLen = int(row.Amount.Div(top).Mul(decimal.NewFromInt(maxBarWidth)).IntPart())
		}
		lines = append(lines, fmt.Sprintf("%s %-16s %s %s (%d%%)",
			themes.GetCategoryIcon(row.Category),
			truncate(cli.CategoryLabel(row.Category), 16),
			barStyle.Render(strings.Repeat("█", max(barLen, 1))),
			cli.FormatMoney(row.Amount),
			report.PercentageOfTotal(row.Amount, total),
		))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m StatsPanelModel) balanceStyle() lipgloss.Style {
	if m.stats.Balance.IsNegative() {
		return m.theme.Expense
	}
	return m.theme.Income
}

// Resize updates the component size.
func (m *StatsPanelModel) Resize(width, height int) {
	m.width = width
	m.height = height
	m.progressBar.Width = max(min(width-10, 40), 10)
}

func truncate(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width <= 1 {
		return string(runes[:width])
	}
	return string(runes[:width-1]) + "…"
}
