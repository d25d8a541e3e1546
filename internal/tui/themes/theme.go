package themes

import (
	"github.com/Veraticus/finanzas/internal/model"
	"github.com/charmbracelet/lipgloss"
)

// Theme defines the visual style for the TUI.
type Theme struct {
	Selected    lipgloss.Style
	Title       lipgloss.Style
	Subtitle    lipgloss.Style
	Normal      lipgloss.Style
	Bold        lipgloss.Style
	Income      lipgloss.Style
	Expense     lipgloss.Style
	ActiveTab   lipgloss.Style
	Tab         lipgloss.Style
	Card        lipgloss.Style
	RoundedBox  lipgloss.Style
	StatusInfo  lipgloss.Style
	StatusError lipgloss.Style
	StatusWarn  lipgloss.Style
	Primary     lipgloss.Color
	Muted       lipgloss.Color
	Border      lipgloss.Color
	Foreground  lipgloss.Color
	Success     lipgloss.Color
	Error       lipgloss.Color
	Warning     lipgloss.Color
}

func build(primary, success, errColor, warning, fg, subtle, border, muted lipgloss.Color) Theme {
	return Theme{
		Primary:    primary,
		Success:    success,
		Error:      errColor,
		Warning:    warning,
		Foreground: fg,
		Border:     border,
		Muted:      muted,

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(fg).
			MarginBottom(1),
		Subtitle: lipgloss.NewStyle().
			Foreground(subtle),
		Normal: lipgloss.NewStyle().
			Foreground(fg),
		Bold: lipgloss.NewStyle().
			Bold(true).
			Foreground(fg),
		Income: lipgloss.NewStyle().
			Foreground(success),
		Expense: lipgloss.NewStyle().
			Foreground(errColor),
		Selected: lipgloss.NewStyle().
			Background(primary).
			Foreground(lipgloss.Color("#ffffff")).
			Bold(true),

		ActiveTab: lipgloss.NewStyle().
			Bold(true).
			Foreground(primary).
			Border(lipgloss.RoundedBorder(), true, true, false, true).
			BorderForeground(primary).
			Padding(0, 1),
		Tab: lipgloss.NewStyle().
			Foreground(muted).
			Border(lipgloss.RoundedBorder(), true, true, false, true).
			BorderForeground(border).
			Padding(0, 1),
		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(border).
			Padding(0, 2).
			MarginRight(1),
		RoundedBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(border).
			Padding(1, 2),

		StatusInfo: lipgloss.NewStyle().
			Foreground(primary).
			Bold(true),
		StatusError: lipgloss.NewStyle().
			Foreground(errColor).
			Bold(true),
		StatusWarn: lipgloss.NewStyle().
			Foreground(warning).
			Bold(true),
	}
}

// Default mirrors the dark palette of the web app.
var Default = build(
	lipgloss.Color("#3b82f6"),
	lipgloss.Color("#10b981"),
	lipgloss.Color("#ef4444"),
	lipgloss.Color("#f59e0b"),
	lipgloss.Color("#f1f5f9"),
	lipgloss.Color("#94a3b8"),
	lipgloss.Color("#334155"),
	lipgloss.Color("#64748b"),
)

// Light is the light palette of the web app.
var Light = build(
	lipgloss.Color("#2563eb"),
	lipgloss.Color("#059669"),
	lipgloss.Color("#dc2626"),
	lipgloss.Color("#d97706"),
	lipgloss.Color("#1e293b"),
	lipgloss.Color("#475569"),
	lipgloss.Color("#cbd5e1"),
	lipgloss.Color("#94a3b8"),
)

// CatppuccinMocha is the Catppuccin Mocha theme.
var CatppuccinMocha = build(
	lipgloss.Color("#cba6f7"),
	lipgloss.Color("#a6e3a1"),
	lipgloss.Color("#f38ba8"),
	lipgloss.Color("#f9e2af"),
	lipgloss.Color("#cdd6f4"),
	lipgloss.Color("#a6adc8"),
	lipgloss.Color("#45475a"),
	lipgloss.Color("#6c7086"),
)

// GetTheme returns a theme by name.
func GetTheme(name string) Theme {
	switch name {
	case "light":
		return Light
	case "catppuccin-mocha":
		return CatppuccinMocha
	default:
		return Default
	}
}

// CategoryIcons maps categories to emoji icons.
var CategoryIcons = map[model.Category]string{
	model.CategoryFood:          "🍔",
	model.CategoryTransport:     "🚌",
	model.CategoryUtilities:     "💡",
	model.CategoryEntertainment: "🎬",
	model.CategoryShopping:      "🛍️",
	model.CategoryHealth:        "💊",
	model.CategorySalary:        "💼",
	model.CategoryOther:         "📦",
}

// GetCategoryIcon returns an icon for a category.
func GetCategoryIcon(c model.Category) string {
	if icon, ok := CategoryIcons[c]; ok {
		return icon
	}
	return "📦"
}
