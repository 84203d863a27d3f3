package model

import (
	"fmt"
	"time"
)

// dateLayout is the source convention for all date-valued fields.
const dateLayout = "2006-01-02"

// Date is a calendar date with no time-of-day component.
// Optional date fields are *Date; nil means the source carried no
// parseable value.
type Date struct {
	t time.Time
}

// ParseDate parses a source date string (YYYY-MM-DD).
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return Date{t: t}, nil
}

// MustDate parses s or panics. Test and fixture use only.
func MustDate(s string) Date {
	d, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

// NewDate constructs a Date from year, month, day.
func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// String renders the date in the source convention.
func (d Date) String() string {
	return d.t.Format(dateLayout)
}

// Time returns the underlying time.Time (midnight UTC).
func (d Date) Time() time.Time { return d.t }

// Weekday returns the day of week.
func (d Date) Weekday() time.Weekday { return d.t.Weekday() }

// AddDays returns the date n calendar days later (negative n goes back).
func (d Date) AddDays(n int) Date {
	return Date{t: d.t.AddDate(0, 0, n)}
}

// AddMonths returns the date n calendar months later.
func (d Date) AddMonths(n int) Date {
	return Date{t: d.t.AddDate(0, n, 0)}
}

// Before reports whether d is strictly before other.
func (d Date) Before(other Date) bool { return d.t.Before(other.t) }

// After reports whether d is strictly after other.
func (d Date) After(other Date) bool { return d.t.After(other.t) }

// Equal reports whether d and other are the same calendar date.
func (d Date) Equal(other Date) bool { return d.t.Equal(other.t) }

// OnOrBefore reports d <= other.
func (d Date) OnOrBefore(other Date) bool { return !d.t.After(other.t) }

// OnOrAfter reports d >= other.
func (d Date) OnOrAfter(other Date) bool { return !d.t.Before(other.t) }

// DatePtr returns a pointer to d. Convenience for building snapshots.
func DatePtr(d Date) *Date { return &d }
