package util

import (
	"time"
)

// dateLayouts are the accepted observation date formats, tried in order.
// "2006-01" covers month-granularity series (day defaults to the 1st).
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01",
}

// ParseDate parses an ISO-8601 calendar date. Returns (t, true) if any
// accepted layout matched. Time-of-day components are truncated.
func ParseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			y, m, d := t.Date()
			return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), true
		}
	}
	return time.Time{}, false
}

// ParseDateDefault parses a date or returns default if empty/invalid.
func ParseDateDefault(s string, def time.Time) time.Time {
	if t, ok := ParseDate(s); ok {
		return t
	}
	return def
}

// FormatDate renders a date in the canonical wire format.
func FormatDate(t time.Time) string {
	return t.Format("2006-01-02")
}

// MedianGapDays returns the median gap in days between consecutive dates.
// Dates must be sorted ascending. Returns 0 for fewer than two dates.
func MedianGapDays(dates []time.Time) int {
	if len(dates) < 2 {
		return 0
	}
	gaps := make([]int, 0, len(dates)-1)
	for i := 1; i < len(dates); i++ {
		gaps = append(gaps, int(dates[i].Sub(dates[i-1]).Hours()/24))
	}
	// insertion sort; gap slices are small
	for i := 1; i < len(gaps); i++ {
		for j := i; j > 0 && gaps[j] < gaps[j-1]; j-- {
			gaps[j], gaps[j-1] = gaps[j-1], gaps[j]
		}
	}
	return gaps[len(gaps)/2]
}
