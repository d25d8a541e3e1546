package tui

import (
	"fmt"
	"strings"

	"github.com/Veraticus/finanzas/internal/cli"
	"github.com/Veraticus/finanzas/internal/report"
	"github.com/Veraticus/finanzas/internal/tui/themes"
	"github.com/charmbracelet/lipgloss"
)

// View renders the UI.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.showHelp {
		return m.renderHelp()
	}

	var body string
	switch m.tab {
	case TabMovements:
		body = m.renderMovements()
	case TabStats:
		body = m.statsPanel.View()
	case TabSuggestions:
		body = m.renderSuggestions()
	case TabReport:
		body = m.renderReport()
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderTabs(),
		m.renderCards(),
		body,
		"",
		m.renderStatusBar(),
	)
}

func (m Model) renderTabs() string {
	tabs := make([]string, 0, len(tabNames))
	for i, name := range tabNames {
		label := fmt.Sprintf("%d %s", i+1, name)
		if Tab(i) == m.tab {
			tabs = append(tabs, m.theme.ActiveTab.Render(label))
		} else {
			tabs = append(tabs, m.theme.Tab.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)
}

// renderCards shows income, expense and balance for the selected month.
func (m Model) renderCards() string {
	totals := report.ComputeTotals(m.movements)
	balance := report.Balance(m.movements)

	balanceStyle := m.theme.Income
	if balance.IsNegative() {
		balanceStyle = m.theme.Expense
	}

	cards := []string{
		m.theme.Card.Render("Ingresos\n" + m.theme.Income.Render(cli.FormatMoney(totals.Income))),
		m.theme.Card.Render("Gastos\n" + m.theme.Expense.Render(cli.FormatMoney(totals.Expense))),
		m.theme.Card.Render("Balance\n" + balanceStyle.Render(cli.FormatMoney(balance))),
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.theme.Title.Render(cli.CalendarIcon+" "+m.CurrentMonth().Label()),
		lipgloss.JoinHorizontal(lipgloss.Top, cards...),
	)
}

func (m Model) renderMovements() string {
	if len(m.movements) == 0 {
		return lipgloss.NewStyle().Foreground(m.theme.Muted).Render("No hay movimientos este mes.")
	}

	start, end := m.visibleWindow()
	lines := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		txn := m.movements[i]
		amountStyle := m.theme.Expense
		if txn.Type.IsIncome() {
			amountStyle = m.theme.Income
		}

		desc := txn.Description
		if desc == "" {
			desc = cli.CategoryLabel(txn.Category)
		}

		line := fmt.Sprintf("%s %s  %-28s %-16s %s",
			themes.GetCategoryIcon(txn.Category),
			cli.FormatDate(txn.Date),
			truncate(desc, 28),
			cli.CategoryLabel(txn.Category),
			amountStyle.Render(cli.FormatSignedAmount(txn)),
		)
		if i == m.cursor {
			line = m.theme.Selected.Render(line)
		}
		lines = append(lines, line)
	}

	return strings.Join(lines, "\n")
}

// visibleWindow keeps the cursor on screen.
func (m Model) visibleWindow() (int, int) {
	rows := max(m.height-12, 3)
	start := 0
	if m.cursor >= rows {
		start = m.cursor - rows + 1
	}
	return start, min(start+rows, len(m.movements))
}

func (m Model) renderSuggestions() string {
	if len(m.suggestions) == 0 {
		return lipgloss.NewStyle().Foreground(m.theme.Muted).
			Render("Aún no hay gastos suficientes para darte sugerencias.")
	}

	cards := make([]string, 0, len(m.suggestions))
	for _, s := range m.suggestions {
		title := cli.TipIcon + " " + cli.SuggestionTitle(s)
		body := s.Tip
		if s.Kind == report.SuggestionAttention {
			title = cli.AlertIcon + " " + cli.SuggestionTitle(s)
			body = fmt.Sprintf("%s (%d%% de tus gastos)\n%s", cli.FormatMoney(s.Amount), s.Percentage, s.Tip)
		}
		cards = append(cards, m.theme.RoundedBox.
			Width(min(max(m.width-4, 30), 70)).
			Render(m.theme.Bold.Render(title)+"\n"+body))
	}

	return lipgloss.JoinVertical(lipgloss.Left, cards...)
}

func (m Model) renderReport() string {
	if len(m.months) == 0 {
		return lipgloss.NewStyle().Foreground(m.theme.Muted).
			Render("Aún no hay meses anteriores para reportar.")
	}

	list := make([]string, 0, len(m.months))
	for i, month := range m.months {
		line := month.Label()
		if i == m.reportCursor {
			line = m.theme.Selected.Render(line)
		}
		list = append(list, line)
	}

	month, _ := m.SelectedMonth()
	r := report.Monthly(m.view.All(), month, m.view.Now().Location())

	balanceStyle := m.theme.Income
	if !r.IsPositive() {
		balanceStyle = m.theme.Expense
	}

	detail := m.theme.RoundedBox.Render(strings.Join([]string{
		m.theme.Bold.Render(r.Label),
		fmt.Sprintf("%-20s %s", "Ingresos:", m.theme.Income.Render(cli.FormatMoney(r.Totals.Income))),
		fmt.Sprintf("%-20s %s", "Gastos:", m.theme.Expense.Render(cli.FormatMoney(r.Totals.Expense))),
		fmt.Sprintf("%-20s %s", "Balance:", balanceStyle.Render(cli.FormatMoney(r.Balance))),
		fmt.Sprintf("%-20s %s", "Categoría principal:", cli.TopCategoryLabel(r)),
		"",
		r.Advice.Message(),
	}, "\n"))

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		m.theme.Card.Render(strings.Join(list, "\n")),
		detail,
	)
}

func (m Model) renderHelp() string {
	title := m.theme.Title.Render("Atajos de teclado")
	m.help.ShowAll = true

	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		m.theme.RoundedBox.Render(lipgloss.JoinVertical(
			lipgloss.Left,
			title,
			m.help.View(m.keymap),
			"",
			lipgloss.NewStyle().Foreground(m.theme.Muted).Render("? o Esc para cerrar"),
		)),
	)
}

// renderStatusBar renders the bottom status bar.
func (m Model) renderStatusBar() string {
	if m.confirming {
		txn, _ := m.Selected()
		return m.theme.StatusWarn.Render(fmt.Sprintf(
			"¿Eliminar %s de %s? [s/N]", cli.FormatSignedAmount(txn), cli.FormatDate(txn.Date),
		))
	}
	if m.status != "" {
		if m.statusErr {
			return m.theme.StatusError.Render(m.status)
		}
		return m.theme.StatusInfo.Render(m.status)
	}
	return m.help.View(m.keymap)
}

func truncate(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	return string(runes[:width-1]) + "…"
}
