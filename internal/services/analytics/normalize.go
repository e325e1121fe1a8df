package analytics

import (
	"fmt"
	"sort"
	"time"

	"FinLens/internal/domain/models"
	"FinLens/pkg/util"
)

// MalformedDatePolicy controls what happens to observations whose date
// cannot be parsed.
type MalformedDatePolicy string

const (
	// DropMalformed silently discards unparseable observations and
	// counts them in the report.
	DropMalformed MalformedDatePolicy = "drop"
	// RejectMalformed fails the whole normalization on the first
	// unparseable date.
	RejectMalformed MalformedDatePolicy = "reject"
)

// NormalizeReport describes what normalization removed.
type NormalizeReport struct {
	Dropped int // malformed dates discarded
	Deduped int // duplicate dates collapsed
}

// Normalize converts raw observations into a clean series: dates
// parsed and truncated to UTC calendar dates, sorted ascending,
// duplicates collapsed last-write-wins, and optionally filtered to
// [from, to]. Null values are preserved as gaps.
func Normalize(raw []models.RawObservation, policy MalformedDatePolicy, from, to time.Time) ([]models.Observation, NormalizeReport, error) {
	var report NormalizeReport

	obs := make([]models.Observation, 0, len(raw))
	for _, r := range raw {
		t, ok := util.ParseDate(r.Date)
		if !ok {
			if policy == RejectMalformed {
				return nil, report, fmt.Errorf("%w: %q", ErrInvalidDate, r.Date)
			}
			report.Dropped++
			continue
		}
		if !from.IsZero() && t.Before(from) {
			continue
		}
		if !to.IsZero() && t.After(to) {
			continue
		}
		obs = append(obs, models.Observation{Date: t, Value: r.Value})
	}

	sort.SliceStable(obs, func(i, j int) bool { return obs[i].Date.Before(obs[j].Date) })

	// Collapse duplicate dates, keeping the later-appearing value.
	// SliceStable preserves input order within equal dates.
	out := obs[:0]
	for _, o := range obs {
		if n := len(out); n > 0 && out[n-1].Date.Equal(o.Date) {
			out[n-1] = o
			report.Deduped++
			continue
		}
		out = append(out, o)
	}

	return out, report, nil
}

// Values extracts the value column, preserving nils as gaps.
func Values(obs []models.Observation) []*float64 {
	vals := make([]*float64, len(obs))
	for i, o := range obs {
		vals[i] = o.Value
	}
	return vals
}

// Dates extracts the date column.
func Dates(obs []models.Observation) []time.Time {
	dates := make([]time.Time, len(obs))
	for i, o := range obs {
		dates[i] = o.Date
	}
	return dates
}

// DenseValues returns the non-nil values in order, with their original
// indices.
func DenseValues(obs []models.Observation) ([]float64, []int) {
	vals := make([]float64, 0, len(obs))
	idx := make([]int, 0, len(obs))
	for i, o := range obs {
		if o.Value != nil {
			vals = append(vals, *o.Value)
			idx = append(idx, i)
		}
	}
	return vals, idx
}
