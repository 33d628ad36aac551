// Package schedule works out which calendar months an expense falls in.
package schedule

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidMonth is returned when a month string is not in YYYY-MM form.
var ErrInvalidMonth = errors.New("month must be in YYYY-MM format")

// Month is a calendar month. The zero value is not a valid month.
type Month struct {
	Year  int
	Month time.Month
}

// NewMonth normalizes year and month, so NewMonth(2025, 13) is January 2026.
func NewMonth(year int, month time.Month) Month {
	return MonthOf(time.Date(year, month, 1, 0, 0, 0, 0, time.UTC))
}

// MonthOf returns the month t falls in.
func MonthOf(t time.Time) Month {
	return Month{Year: t.Year(), Month: t.Month()}
}

// ParseMonth accepts "2026-02" as well as the first-day form "2026-02-01".
func ParseMonth(s string) (Month, error) {
	for _, layout := range []string{"2006-01", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return MonthOf(t), nil
		}
	}
	return Month{}, fmt.Errorf("%w: %q", ErrInvalidMonth, s)
}

// String returns the month as YYYY-MM.
func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month))
}

// FirstDay returns the first day of the month as YYYY-MM-01, the form months are stored in.
func (m Month) FirstDay() string {
	return m.String() + "-01"
}

// AddMonths returns the month n months later (earlier for negative n).
func (m Month) AddMonths(n int) Month {
	return NewMonth(m.Year, m.Month+time.Month(n))
}

// Next returns the following month.
func (m Month) Next() Month {
	return m.AddMonths(1)
}

// IsZero reports whether m is the zero Month.
func (m Month) IsZero() bool {
	return m.Year == 0 && m.Month == 0
}
