package report

import (
	"time"

	"github.com/Veraticus/finanzas/internal/model"
	"github.com/Veraticus/finanzas/internal/query"
	"github.com/shopspring/decimal"
)

// PeriodStats aggregates a range-filtered subset.
type PeriodStats struct {
	Breakdown Breakdown
	Balance   decimal.Decimal
	Range     query.Range
	Totals    Totals
	Count     int
}

// Period aggregates an already-filtered subset.
func Period(txns []model.Transaction) PeriodStats {
	totals := ComputeTotals(txns)
	return PeriodStats{
		Range:     query.All,
		Count:     len(txns),
		Totals:    totals,
		Balance:   totals.Balance(),
		Breakdown: CategoryBreakdown(txns),
	}
}

// PeriodFor filters txns to r at now and aggregates the result.
func PeriodFor(txns []model.Transaction, now time.Time, r query.Range) PeriodStats {
	stats := Period(query.ByRange(txns, now, r))
	stats.Range = r
	return stats
}
