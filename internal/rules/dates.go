package rules

import (
	"time"

	"github.com/careworks/cincensus/internal/model"
)

// Interval is a half-open [Start, End) date range; a nil End means still
// open at the census end.
type Interval struct {
	Start *model.Date
	End   *model.Date
}

// Overlaps reports whether a starts inside b, with an open end read as the
// census end. An interval that starts exactly where the other ends is not
// an overlap. Callers apply it symmetrically across unordered pairs.
func Overlaps(a, b Interval, censusEnd model.Date) bool {
	if a.Start == nil || b.Start == nil {
		return false
	}
	end := censusEnd
	if b.End != nil {
		end = *b.End
	}
	return a.Start.OnOrAfter(*b.Start) && a.Start.Before(end)
}

// OverlapsEither reports an overlap in either direction.
func OverlapsEither(a, b Interval, censusEnd model.Date) bool {
	return Overlaps(a, b, censusEnd) || Overlaps(b, a, censusEnd)
}

// WorkingDayThreshold computes censusEnd minus n days, rolled back to the
// preceding Friday when the result lands on a weekend. Start dates on or
// before the threshold have had at least the required working time before
// the census end.
func WorkingDayThreshold(censusEnd model.Date, n int) model.Date {
	d := censusEnd.AddDays(-n)
	switch d.Weekday() {
	case time.Saturday:
		d = d.AddDays(-1)
	case time.Sunday:
		d = d.AddDays(-2)
	}
	return d
}

// IsWeekend reports whether a date falls on a Saturday or Sunday.
func IsWeekend(d model.Date) bool {
	wd := d.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}
