package engine

import (
	"time"
)

// =============================================================================
// DATE - Calendar date, independent of textual representation
// =============================================================================

// Date is a plain calendar date. Textual layouts (dd-mm-yyyy at the HTTP
// boundary, yyyy-mm-dd in storage) are a boundary concern; the core only
// compares and subtracts dates.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// DefaultDateLayout is the day-month-year form used at the ingestion boundary.
const DefaultDateLayout = "02-01-2006"

func NewDate(year int, month time.Month, day int) Date {
	return Date{Year: year, Month: month, Day: day}
}

func DateOf(t time.Time) Date {
	return Date{Year: t.Year(), Month: t.Month(), Day: t.Day()}
}

func Today() Date {
	return DateOf(time.Now())
}

// ParseDate parses s under the given layout. An empty layout falls back to
// DefaultDateLayout.
func ParseDate(layout, s string) (Date, error) {
	if layout == "" {
		layout = DefaultDateLayout
	}
	t, err := time.Parse(layout, s)
	if err != nil {
		return Date{}, err
	}
	return DateOf(t), nil
}

func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

func (d Date) IsZero() bool           { return d.Year == 0 && d.Month == 0 && d.Day == 0 }
func (d Date) Equal(other Date) bool  { return d == other }
func (d Date) Before(other Date) bool { return d.Time().Before(other.Time()) }
func (d Date) After(other Date) bool  { return d.Time().After(other.Time()) }
func (d Date) AddDays(n int) Date     { return DateOf(d.Time().AddDate(0, 0, n)) }

func (d Date) Format(layout string) string { return d.Time().Format(layout) }

func (d Date) String() string { return d.Time().Format("2006-01-02") }

// DaysBetween returns to - from in whole days. Negative when to precedes from.
func DaysBetween(from, to Date) int {
	return int(to.Time().Sub(from.Time()).Hours() / 24)
}

func StartOfMonth(year int, month time.Month) Date { return NewDate(year, month, 1) }

func EndOfMonth(year int, month time.Month) Date {
	t := time.Date(year, month+1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -1)
	return DateOf(t)
}
