package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all keyboard shortcuts.
type KeyMap struct {
	// Navigation
	Up        key.Binding
	Down      key.Binding
	PrevMonth key.Binding
	NextMonth key.Binding
	NextTab   key.Binding
	PrevTab   key.Binding

	// Stats range
	RangeWeek  key.Binding
	RangeMonth key.Binding
	RangeYear  key.Binding
	RangeAll   key.Binding

	// Actions
	Delete  key.Binding
	Confirm key.Binding
	Cancel  key.Binding

	// Application
	Help key.Binding
	Quit key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("↑/k", "arriba"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("↓/j", "abajo"),
		),
		PrevMonth: key.NewBinding(
			key.WithKeys("h", "left", "["),
			key.WithHelp("←/h", "mes anterior"),
		),
		NextMonth: key.NewBinding(
			key.WithKeys("l", "right", "]"),
			key.WithHelp("→/l", "mes siguiente"),
		),
		NextTab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("Tab", "siguiente vista"),
		),
		PrevTab: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("Shift+Tab", "vista anterior"),
		),

		RangeWeek: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "semana"),
		),
		RangeMonth: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "mes"),
		),
		RangeYear: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "año"),
		),
		RangeAll: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "todo"),
		),

		Delete: key.NewBinding(
			key.WithKeys("d", "delete"),
			key.WithHelp("d", "eliminar"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("s", "y", "enter"),
			key.WithHelp("s", "confirmar"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("n", "esc"),
			key.WithHelp("n/Esc", "cancelar"),
		),

		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "ayuda"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "salir"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextTab, k.Help, k.Quit}
}

// FullHelp returns all key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PrevMonth, k.NextMonth},
		{k.NextTab, k.PrevTab, k.Delete},
		{k.RangeWeek, k.RangeMonth, k.RangeYear, k.RangeAll},
		{k.Help, k.Quit},
	}
}
