package query

import (
	"fmt"
	"strings"
	"time"
)

// RangeKind enumerates the symbolic time windows.
type RangeKind int

// Range kinds. RangeAll and any unknown kind leave transactions unfiltered.
const (
	RangeAll RangeKind = iota
	RangeWeek
	RangeMonth
	RangeYear
	RangeCustom
)

// Range is a time-window descriptor. Start and End are only meaningful for
// RangeCustom and are read as calendar dates; End is inclusive.
type Range struct {
	Start time.Time
	End   time.Time
	Kind  RangeKind
}

// Symbolic ranges.
var (
	All       = Range{Kind: RangeAll}
	LastWeek  = Range{Kind: RangeWeek}
	ThisMonth = Range{Kind: RangeMonth}
	ThisYear  = Range{Kind: RangeYear}
)

// CustomRange covers start through the end of end, both calendar dates.
func CustomRange(start, end time.Time) Range {
	return Range{Kind: RangeCustom, Start: start, End: end}
}

// ParseRange maps "week", "month", "year" and "all" (or "") to a Range.
func ParseRange(s string) (Range, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all":
		return All, nil
	case "week":
		return LastWeek, nil
	case "month":
		return ThisMonth, nil
	case "year":
		return ThisYear, nil
	default:
		return All, fmt.Errorf("unknown range %q (want week, month, year or all)", s)
	}
}

// ParseDate parses a YYYY-MM-DD calendar date in loc.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02", strings.TrimSpace(s), loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD): %w", s, err)
	}
	return t, nil
}

// String names the range.
func (r Range) String() string {
	switch r.Kind {
	case RangeWeek:
		return "week"
	case RangeMonth:
		return "month"
	case RangeYear:
		return "year"
	case RangeCustom:
		return r.Start.Format("2006-01-02") + ".." + r.End.Format("2006-01-02")
	default:
		return "all"
	}
}

// civilDay strips time of day from t as observed in loc. The result is in
// UTC so day arithmetic never crosses a DST transition.
func civilDay(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// matcher builds the membership test for r relative to now.
func (r Range) matcher(now time.Time) func(time.Time) bool {
	loc := now.Location()

	switch r.Kind {
	case RangeWeek:
		today := civilDay(now, loc)
		weekAgo := today.AddDate(0, 0, -7)
		return func(t time.Time) bool {
			day := civilDay(t, loc)
			return !day.Before(weekAgo) && !day.After(today)
		}

	case RangeMonth:
		current := MonthOf(now, loc)
		return func(t time.Time) bool {
			return current.Contains(t, loc)
		}

	case RangeYear:
		year := now.In(loc).Year()
		return func(t time.Time) bool {
			return t.In(loc).Year() == year
		}

	case RangeCustom:
		sy, sm, sd := r.Start.Date()
		ey, em, ed := r.End.Date()
		start := time.Date(sy, sm, sd, 0, 0, 0, 0, loc)
		end := time.Date(ey, em, ed, 23, 59, 59, int(999*time.Millisecond), loc)
		return func(t time.Time) bool {
			return !t.Before(start) && !t.After(end)
		}

	default:
		return func(time.Time) bool { return true }
	}
}
