// Package report aggregates transaction subsets into totals, category
// breakdowns, advice and monthly reports.
//
// Everything here is a pure function of its input. Amounts are summed with
// decimal arithmetic so two different folds over the same subset always
// agree exactly.
package report

import (
	"github.com/Veraticus/finanzas/internal/model"
	"github.com/shopspring/decimal"
)

// Totals holds the income and expense sums of a subset.
type Totals struct {
	Income  decimal.Decimal
	Expense decimal.Decimal
}

// Balance is income minus expense.
func (t Totals) Balance() decimal.Decimal {
	return t.Income.Sub(t.Expense)
}

// ComputeTotals sums income and expense. Any type other than income counts
// as expense.
func ComputeTotals(txns []model.Transaction) Totals {
	totals := Totals{Income: decimal.Zero, Expense: decimal.Zero}
	for _, t := range txns {
		if t.Type.IsIncome() {
			totals.Income = totals.Income.Add(t.Amount)
		} else {
			totals.Expense = totals.Expense.Add(t.Amount)
		}
	}
	return totals
}

// Balance folds the subset into a running balance, adding income and
// subtracting everything else.
func Balance(txns []model.Transaction) decimal.Decimal {
	balance := decimal.Zero
	for _, t := range txns {
		if t.Type.IsIncome() {
			balance = balance.Add(t.Amount)
			continue
		}
		balance = balance.Sub(t.Amount)
	}
	return balance
}
