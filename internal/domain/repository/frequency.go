package repository

import (
	"time"

	"FinLens/pkg/util"
)

// Frequency is the sampling cadence of a series.
type Frequency string

const (
	FreqDaily     Frequency = "daily"
	FreqWeekly    Frequency = "weekly"
	FreqMonthly   Frequency = "monthly"
	FreqQuarterly Frequency = "quarterly"
	FreqAnnual    Frequency = "annual"
)

// DefaultFrequency is assumed when a series carries no cadence and it
// cannot be inferred.
const DefaultFrequency = FreqMonthly

// IsValid reports whether f is a known frequency.
func (f Frequency) IsValid() bool {
	switch f {
	case FreqDaily, FreqWeekly, FreqMonthly, FreqQuarterly, FreqAnnual:
		return true
	}
	return false
}

// Normalize maps arbitrary user input to a known frequency, falling
// back to the default.
func Normalize(s string) Frequency {
	f := Frequency(s)
	if f.IsValid() {
		return f
	}
	return DefaultFrequency
}

// Step advances t by one period of the frequency.
func (f Frequency) Step(t time.Time) time.Time {
	switch f {
	case FreqDaily:
		return t.AddDate(0, 0, 1)
	case FreqWeekly:
		return t.AddDate(0, 0, 7)
	case FreqQuarterly:
		return t.AddDate(0, 3, 0)
	case FreqAnnual:
		return t.AddDate(1, 0, 0)
	default:
		return t.AddDate(0, 1, 0)
	}
}

// Infer guesses the frequency from the median gap between consecutive
// dates. Dates must be sorted ascending; fewer than two dates yield the
// default.
func Infer(dates []time.Time) Frequency {
	gap := util.MedianGapDays(dates)
	switch {
	case gap == 0:
		return DefaultFrequency
	case gap <= 2:
		return FreqDaily
	case gap <= 10:
		return FreqWeekly
	case gap <= 45:
		return FreqMonthly
	case gap <= 135:
		return FreqQuarterly
	default:
		return FreqAnnual
	}
}
