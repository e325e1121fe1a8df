package analytics

import (
	"math"
	"time"

	"FinLens/internal/domain/models"
	"FinLens/internal/domain/repository"
)

// DefaultTrendThresholdPct is the change-percent band inside which a
// series counts as stable.
const DefaultTrendThresholdPct = 5.0

// Trend classifies the movement between the first and last non-nil
// values of the window. A zero baseline or fewer than two usable
// points yields a stable, zero-strength result instead of an error.
func Trend(obs []models.Observation, thresholdPct float64) models.TrendResult {
	if thresholdPct <= 0 {
		thresholdPct = DefaultTrendThresholdPct
	}

	vals, _ := DenseValues(obs)
	if len(vals) < 2 {
		return models.TrendResult{Direction: models.TrendStable, SampleSize: len(vals)}
	}

	first, last := vals[0], vals[len(vals)-1]
	if first == 0 {
		return models.TrendResult{
			Direction:  models.TrendStable,
			First:      first,
			Last:       last,
			SampleSize: len(vals),
		}
	}

	change := (last - first) / first * 100
	dir := models.TrendStable
	switch {
	case change > thresholdPct:
		dir = models.TrendUp
	case change < -thresholdPct:
		dir = models.TrendDown
	}

	return models.TrendResult{
		Direction:       dir,
		ChangePercent:   change,
		StrengthPercent: math.Abs(change),
		First:           first,
		Last:            last,
		SampleSize:      len(vals),
	}
}

// Project extrapolates n future points from the slope between the last
// two non-nil observations, stepping dates by the series' cadence.
// This is a naive two-point linear continuation, not a regression fit.
// Fewer than two usable points yield no projection.
func Project(obs []models.Observation, n int, freq repository.Frequency) []models.ProjectionPoint {
	if n <= 0 {
		return nil
	}

	vals, idx := DenseValues(obs)
	if len(vals) < 2 {
		return nil
	}

	prev, last := vals[len(vals)-2], vals[len(vals)-1]
	slope := last - prev
	date := obs[idx[len(idx)-1]].Date

	if !freq.IsValid() {
		freq = repository.Infer(Dates(obs))
	}

	out := make([]models.ProjectionPoint, 0, n)
	v := last
	for i := 0; i < n; i++ {
		date = freq.Step(date)
		v += slope
		out = append(out, models.ProjectionPoint{Date: date, Value: v, IsProjection: true})
	}
	return out
}

// WindowSince filters observations to those dated on or after cutoff.
func WindowSince(obs []models.Observation, cutoff time.Time) []models.Observation {
	if cutoff.IsZero() {
		return obs
	}
	for i, o := range obs {
		if !o.Date.Before(cutoff) {
			return obs[i:]
		}
	}
	return nil
}
