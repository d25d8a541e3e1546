package report

import (
	"time"

	"github.com/Veraticus/finanzas/internal/model"
	"github.com/Veraticus/finanzas/internal/query"
	"github.com/shopspring/decimal"
)

// MonthlyReport summarizes one calendar month.
type MonthlyReport struct {
	Balance     decimal.Decimal
	TopCategory model.Category
	Label       string
	Month       query.Month
	Totals      Totals
	Advice      AdviceKind
	Count       int
	HasTop      bool
}

// Monthly builds the report for m, reading calendar dates in loc.
func Monthly(txns []model.Transaction, m query.Month, loc *time.Location) MonthlyReport {
	subset := query.ByYearMonth(txns, m, loc)
	totals := ComputeTotals(subset)
	balance := totals.Balance()
	top, hasTop := TopCategory(CategoryBreakdown(subset))

	return MonthlyReport{
		Month:       m,
		Label:       m.Label(),
		Count:       len(subset),
		Totals:      totals,
		Balance:     balance,
		TopCategory: top,
		HasTop:      hasTop,
		Advice:      Advice(balance),
	}
}

// IsPositive reports whether the month closed at or above zero.
func (r MonthlyReport) IsPositive() bool {
	return !r.Balance.IsNegative()
}
