package rules

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/careworks/cincensus/internal/model"
	"github.com/careworks/cincensus/internal/testutil"
)

func TestOverlapsEither(t *testing.T) {
	censusEnd := model.MustDate("2022-03-31")

	tests := []struct {
		name    string
		a, b    Interval
		overlap bool
	}{
		{
			name:    "open second starts inside first",
			a:       Interval{Start: testutil.Date("2021-04-01"), End: testutil.Date("2021-06-01")},
			b:       Interval{Start: testutil.Date("2021-05-01")},
			overlap: true,
		},
		{
			name:    "disjoint after close",
			a:       Interval{Start: testutil.Date("2021-04-01"), End: testutil.Date("2021-06-01")},
			b:       Interval{Start: testutil.Date("2021-06-01"), End: testutil.Date("2021-08-01")},
			overlap: false,
		},
		{
			name:    "second starts on first's start",
			a:       Interval{Start: testutil.Date("2021-04-01"), End: testutil.Date("2021-06-01")},
			b:       Interval{Start: testutil.Date("2021-04-01"), End: testutil.Date("2021-05-01")},
			overlap: true,
		},
		{
			name:    "both open",
			a:       Interval{Start: testutil.Date("2021-04-01")},
			b:       Interval{Start: testutil.Date("2022-01-01")},
			overlap: true,
		},
		{
			name:    "open interval before the other starts",
			a:       Interval{Start: testutil.Date("2022-05-01")},
			b:       Interval{Start: testutil.Date("2021-04-01"), End: testutil.Date("2021-06-01")},
			overlap: false,
		},
		{
			name:    "missing start never overlaps",
			a:       Interval{End: testutil.Date("2021-06-01")},
			b:       Interval{Start: testutil.Date("2021-05-01")},
			overlap: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.overlap, OverlapsEither(tt.a, tt.b, censusEnd))
			// Unordered pairs: swapping the operands must not change
			// the answer.
			assert.Equal(t, tt.overlap, OverlapsEither(tt.b, tt.a, censusEnd))
		})
	}
}

func TestWorkingDayThreshold(t *testing.T) {
	// 2022-03-31 minus 45 days is 2022-02-14, a Monday.
	got := WorkingDayThreshold(model.MustDate("2022-03-31"), 45)
	assert.Equal(t, model.MustDate("2022-02-14"), got)

	// 2022-03-31 minus 46 days is Sunday 2022-02-13; roll back to Friday.
	got = WorkingDayThreshold(model.MustDate("2022-03-31"), 46)
	assert.Equal(t, model.MustDate("2022-02-11"), got)

	// 2022-03-31 minus 47 days is Saturday 2022-02-12; roll back to Friday.
	got = WorkingDayThreshold(model.MustDate("2022-03-31"), 47)
	assert.Equal(t, model.MustDate("2022-02-11"), got)
}

func TestWorkingDayThresholdNeverWeekend(t *testing.T) {
	end := model.MustDate("2022-03-31")
	for n := 1; n <= 60; n++ {
		d := WorkingDayThreshold(end, n)
		assert.NotEqual(t, time.Saturday, d.Weekday(), "n=%d", n)
		assert.NotEqual(t, time.Sunday, d.Weekday(), "n=%d", n)
	}
}

func TestIsWeekend(t *testing.T) {
	assert.True(t, IsWeekend(model.MustDate("2022-03-26")))  // Saturday
	assert.True(t, IsWeekend(model.MustDate("2022-03-27")))  // Sunday
	assert.False(t, IsWeekend(model.MustDate("2022-03-28"))) // Monday
	assert.False(t, IsWeekend(model.MustDate("2022-03-25"))) // Friday
}
