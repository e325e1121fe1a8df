package repository

import (
	"testing"
	"time"
)

func dates(start time.Time, step func(time.Time) time.Time, n int) []time.Time {
	out := make([]time.Time, n)
	t := start
	for i := 0; i < n; i++ {
		out[i] = t
		t = step(t)
	}
	return out
}

func TestInfer(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		step func(time.Time) time.Time
		want Frequency
	}{
		{"daily", func(t time.Time) time.Time { return t.AddDate(0, 0, 1) }, FreqDaily},
		{"weekly", func(t time.Time) time.Time { return t.AddDate(0, 0, 7) }, FreqWeekly},
		{"monthly", func(t time.Time) time.Time { return t.AddDate(0, 1, 0) }, FreqMonthly},
		{"quarterly", func(t time.Time) time.Time { return t.AddDate(0, 3, 0) }, FreqQuarterly},
		{"annual", func(t time.Time) time.Time { return t.AddDate(1, 0, 0) }, FreqAnnual},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Infer(dates(start, tt.step, 6)); got != tt.want {
				t.Fatalf("got %v want %v", got, tt.want)
			}
		})
	}

	if got := Infer(nil); got != DefaultFrequency {
		t.Fatalf("empty input must yield default, got %v", got)
	}
}

func TestNormalizeFallsBack(t *testing.T) {
	if got := Normalize("hourly"); got != DefaultFrequency {
		t.Fatalf("unknown cadence must fall back, got %v", got)
	}
	if got := Normalize("quarterly"); got != FreqQuarterly {
		t.Fatalf("known cadence must be kept, got %v", got)
	}
}

func TestStepQuarterly(t *testing.T) {
	start := time.Date(2024, 11, 1, 0, 0, 0, 0, time.UTC)
	if got := FreqQuarterly.Step(start); got.Month() != time.February || got.Year() != 2025 {
		t.Fatalf("quarterly step across year boundary: got %v", got)
	}
}
