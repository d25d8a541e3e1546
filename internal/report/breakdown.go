package report

import (
	"sort"

	"github.com/Veraticus/finanzas/internal/model"
	"github.com/shopspring/decimal"
)

// Breakdown maps a category to its summed expense amount. Only categories
// with at least one expense are present.
type Breakdown map[model.Category]decimal.Decimal

// CategoryAmount is one breakdown entry.
type CategoryAmount struct {
	Category model.Category
	Amount   decimal.Decimal
}

// CategoryBreakdown sums expenses per category. Income is ignored.
func CategoryBreakdown(txns []model.Transaction) Breakdown {
	b := Breakdown{}
	for _, t := range txns {
		if t.Type.IsIncome() {
			continue
		}
		current, ok := b[t.Category]
		if !ok {
			current = decimal.Zero
		}
		b[t.Category] = current.Add(t.Amount)
	}
	return b
}

// Sorted returns the entries by amount descending. Equal amounts keep
// category enum order; unknown categories sort after known ones by name.
func (b Breakdown) Sorted() []CategoryAmount {
	entries := make([]CategoryAmount, 0, len(b))
	for c, amount := range b {
		entries = append(entries, CategoryAmount{Category: c, Amount: amount})
	}

	sort.Slice(entries, func(i, j int) bool {
		if cmp := entries[i].Amount.Cmp(entries[j].Amount); cmp != 0 {
			return cmp > 0
		}
		return categoryLess(entries[i].Category, entries[j].Category)
	})
	return entries
}

// Total sums every entry.
func (b Breakdown) Total() decimal.Decimal {
	total := decimal.Zero
	for _, amount := range b {
		total = total.Add(amount)
	}
	return total
}

// TopCategory returns the category with the largest expense sum. The second
// result is false when the breakdown is empty.
func TopCategory(b Breakdown) (model.Category, bool) {
	sorted := b.Sorted()
	if len(sorted) == 0 {
		return "", false
	}
	return sorted[0].Category, true
}

// PercentageOfTotal returns amount as a whole percentage of total, rounded
// half away from zero. A zero total yields 0.
func PercentageOfTotal(amount, total decimal.Decimal) int {
	if total.IsZero() {
		return 0
	}
	pct := amount.Mul(decimal.NewFromInt(100)).Div(total).Round(0)
	return int(pct.IntPart())
}

func categoryLess(a, b model.Category) bool {
	ra, rb := a.Rank(), b.Rank()
	switch {
	case ra >= 0 && rb >= 0:
		return ra < rb
	case ra >= 0:
		return true
	case rb >= 0:
		return false
	default:
		return a < b
	}
}
