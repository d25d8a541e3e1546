package query

import (
	"fmt"
	"time"
)

// Month identifies one calendar month.
type Month struct {
	Year  int
	Month time.Month
}

// monthNames are the long es-CO month names used in labels.
var monthNames = [...]string{
	"enero", "febrero", "marzo", "abril", "mayo", "junio",
	"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre",
}

// MonthOf returns the calendar month of t as observed in loc.
func MonthOf(t time.Time, loc *time.Location) Month {
	y, m, _ := t.In(loc).Date()
	return Month{Year: y, Month: m}
}

// Add returns the month offset months away, rolling the year over.
func (m Month) Add(offset int) Month {
	shifted := time.Date(m.Year, m.Month+time.Month(offset), 1, 0, 0, 0, 0, time.UTC)
	return Month{Year: shifted.Year(), Month: shifted.Month()}
}

// Contains reports whether t falls in m as observed in loc.
func (m Month) Contains(t time.Time, loc *time.Location) bool {
	return MonthOf(t, loc) == m
}

// After reports whether m is later than other.
func (m Month) After(other Month) bool {
	if m.Year != other.Year {
		return m.Year > other.Year
	}
	return m.Month > other.Month
}

// Label is the human-readable name, e.g. "octubre de 2026".
func (m Month) Label() string {
	if m.Month < time.January || m.Month > time.December {
		return m.String()
	}
	return fmt.Sprintf("%s de %d", monthNames[m.Month-1], m.Year)
}

// String formats m as YYYY-MM.
func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month))
}

// ParseMonth parses a YYYY-MM string.
func ParseMonth(s string) (Month, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return Month{}, fmt.Errorf("invalid month %q (want YYYY-MM): %w", s, err)
	}
	return Month{Year: t.Year(), Month: t.Month()}, nil
}
