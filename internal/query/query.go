// Package query computes filtered, ordered views over a transaction snapshot.
//
// Every function is pure: it never mutates its input and never performs I/O.
// Calendar questions (which month, which day) are answered in the location
// of the supplied now, so all callers given the same snapshot and the same
// instant agree exactly.
package query

import (
	"sort"
	"time"

	"github.com/Veraticus/finanzas/internal/model"
)

// AllSorted returns every transaction ordered by id, newest first.
func AllSorted(txns []model.Transaction) []model.Transaction {
	return filterSorted(txns, func(model.Transaction) bool { return true })
}

// ByMonthOffset returns the transactions in the month offset months away
// from now's month. Offset 0 is the current month, -1 the previous one.
func ByMonthOffset(txns []model.Transaction, now time.Time, offset int) []model.Transaction {
	loc := now.Location()
	return ByYearMonth(txns, MonthOf(now, loc).Add(offset), loc)
}

// ByYearMonth returns the transactions whose local calendar date falls in m.
func ByYearMonth(txns []model.Transaction, m Month, loc *time.Location) []model.Transaction {
	return filterSorted(txns, func(t model.Transaction) bool {
		return m.Contains(t.Date, loc)
	})
}

// ByRange returns the transactions inside r relative to now.
func ByRange(txns []model.Transaction, now time.Time, r Range) []model.Transaction {
	match := r.matcher(now)
	return filterSorted(txns, func(t model.Transaction) bool {
		return match(t.Date)
	})
}

// AvailableMonths lists the distinct months that have transactions,
// excluding now's month, most recent first.
func AvailableMonths(txns []model.Transaction, now time.Time) []Month {
	loc := now.Location()
	current := MonthOf(now, loc)

	seen := make(map[Month]bool)
	months := []Month{}
	for _, t := range txns {
		m := MonthOf(t.Date, loc)
		if m == current || seen[m] {
			continue
		}
		seen[m] = true
		months = append(months, m)
	}

	sort.Slice(months, func(i, j int) bool {
		return months[i].After(months[j])
	})
	return months
}

func filterSorted(txns []model.Transaction, keep func(model.Transaction) bool) []model.Transaction {
	out := make([]model.Transaction, 0, len(txns))
	for _, t := range txns {
		if keep(t) {
			out = append(out, t)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ID > out[j].ID
	})
	return out
}

// View pins a snapshot and an instant so that every question asked of it
// is answered against the same data and the same clock reading.
type View struct {
	now  time.Time
	txns []model.Transaction
}

// NewView creates a view over txns at now.
func NewView(txns []model.Transaction, now time.Time) View {
	return View{txns: txns, now: now}
}

// Now returns the pinned instant.
func (v View) Now() time.Time { return v.now }

// CurrentMonth returns the month containing the pinned instant.
func (v View) CurrentMonth() Month { return MonthOf(v.now, v.now.Location()) }

// All returns every transaction, newest first.
func (v View) All() []model.Transaction { return AllSorted(v.txns) }

// ByMonthOffset is ByMonthOffset at the pinned instant.
func (v View) ByMonthOffset(offset int) []model.Transaction {
	return ByMonthOffset(v.txns, v.now, offset)
}

// ByYearMonth is ByYearMonth in the pinned instant's location.
func (v View) ByYearMonth(m Month) []model.Transaction {
	return ByYearMonth(v.txns, m, v.now.Location())
}

// ByRange is ByRange at the pinned instant.
func (v View) ByRange(r Range) []model.Transaction {
	return ByRange(v.txns, v.now, r)
}

// AvailableMonths is AvailableMonths at the pinned instant.
func (v View) AvailableMonths() []Month {
	return AvailableMonths(v.txns, v.now)
}

// ByID returns the transaction with the given id.
func ByID(txns []model.Transaction, id int64) (model.Transaction, bool) {
	for _, t := range txns {
		if t.ID == id {
			return t, true
		}
	}
	return model.Transaction{}, false
}
