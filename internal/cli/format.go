package cli

import (
	"time"

	"github.com/Veraticus/finanzas/internal/model"
	"github.com/Veraticus/finanzas/internal/query"
	"github.com/Veraticus/finanzas/internal/report"
	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// moneyFormat groups thousands with dots and drops decimals, as es-CO
// formats COP.
const moneyFormat = "#.###,"

var categoryLabels = map[model.Category]string{
	model.CategoryFood:          "Comida",
	model.CategoryTransport:     "Transporte",
	model.CategoryUtilities:     "Servicios",
	model.CategoryEntertainment: "Entretenimiento",
	model.CategoryShopping:      "Compras",
	model.CategoryHealth:        "Salud",
	model.CategorySalary:        "Salario",
	model.CategoryOther:         "Varios",
}

// FormatMoney renders amount as pesos, e.g. "$1.000.000" or "-$80".
func FormatMoney(amount decimal.Decimal) string {
	rounded := amount.Round(0)
	sign := ""
	if rounded.IsNegative() {
		sign = "-"
		rounded = rounded.Neg()
	}
	return sign + "$" + humanize.FormatInteger(moneyFormat, int(rounded.IntPart()))
}

// FormatSignedAmount prefixes the amount with + for income and - otherwise.
func FormatSignedAmount(t model.Transaction) string {
	if t.Type.IsIncome() {
		return "+" + FormatMoney(t.Amount)
	}
	return "-" + FormatMoney(t.Amount)
}

// StyleAmount colors a signed amount for t.
func StyleAmount(t model.Transaction) string {
	if t.Type.IsIncome() {
		return IncomeStyle.Render(FormatSignedAmount(t))
	}
	return ExpenseStyle.Render(FormatSignedAmount(t))
}

// StyleBalance colors balance green when non-negative and red otherwise.
func StyleBalance(balance decimal.Decimal) string {
	if balance.IsNegative() {
		return ExpenseStyle.Render(FormatMoney(balance))
	}
	return IncomeStyle.Render(FormatMoney(balance))
}

// CategoryLabel is the Spanish display name of c. Unknown values are shown
// as is.
func CategoryLabel(c model.Category) string {
	if label, ok := categoryLabels[c]; ok {
		return label
	}
	return string(c)
}

// TypeLabel is the Spanish display name of t.
func TypeLabel(t model.TransactionType) string {
	if t.IsIncome() {
		return "Ingreso"
	}
	return "Gasto"
}

// FormatDate renders the local calendar date as DD/MM/YYYY.
func FormatDate(t time.Time) string {
	return t.Local().Format("02/01/2006")
}

// TopCategoryLabel names a report's top category, or "Ninguna".
func TopCategoryLabel(r report.MonthlyReport) string {
	if !r.HasTop {
		return "Ninguna"
	}
	return CategoryLabel(r.TopCategory)
}

// SuggestionTitle is the heading of a suggestion card.
func SuggestionTitle(s report.Suggestion) string {
	if s.Kind == report.SuggestionSavingsRule {
		return report.SavingsRuleTitle
	}
	return "Atención en " + CategoryLabel(s.Category)
}

// RangeLabel names a stats range for display.
func RangeLabel(r query.Range) string {
	switch r.Kind {
	case query.RangeWeek:
		return "Última semana"
	case query.RangeMonth:
		return "Este mes"
	case query.RangeYear:
		return "Este año"
	case query.RangeCustom:
		return FormatDate(r.Start) + " – " + FormatDate(r.End)
	default:
		return "Todo"
	}
}
