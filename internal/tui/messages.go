package tui

// Tab identifies one dashboard view.
type Tab int

const (
	TabMovements Tab = iota
	TabStats
	TabSuggestions
	TabReport
)

var tabNames = [...]string{
	TabMovements:   "Movimientos",
	TabStats:       "Estadísticas",
	TabSuggestions: "Sugerencias",
	TabReport:      "Reporte",
}

// String is the tab label.
func (t Tab) String() string {
	if t < 0 || int(t) >= len(tabNames) {
		return "?"
	}
	return tabNames[t]
}

// statusMsg replaces the status line.
type statusMsg struct {
	text  string
	isErr bool
}
