package analytics

import (
	"errors"
	"testing"
	"time"

	"FinLens/internal/domain/models"
)

func rawObs(date string, v float64) models.RawObservation {
	return models.RawObservation{Date: date, Value: &v}
}

func TestNormalizeSortsAndTruncates(t *testing.T) {
	raw := []models.RawObservation{
		rawObs("2024-03-01", 3),
		rawObs("2024-01-15T10:30:00Z", 1),
		rawObs("2024-02-01", 2),
	}

	obs, report, err := Normalize(raw, DropMalformed, time.Time{}, time.Time{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.Dropped != 0 || report.Deduped != 0 {
		t.Fatalf("unexpected report: %+v", report)
	}
	if len(obs) != 3 {
		t.Fatalf("expected 3 observations, got %d", len(obs))
	}
	for i := 1; i < len(obs); i++ {
		if !obs[i-1].Date.Before(obs[i].Date) {
			t.Fatalf("dates not strictly ascending at %d: %v >= %v", i, obs[i-1].Date, obs[i].Date)
		}
	}
	want := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	if !obs[0].Date.Equal(want) {
		t.Fatalf("expected truncated date %v, got %v", want, obs[0].Date)
	}
}

func TestNormalizeDedupeLastWriteWins(t *testing.T) {
	raw := []models.RawObservation{
		rawObs("2024-01-01", 1),
		rawObs("2024-01-02", 2),
		rawObs("2024-01-01", 9),
	}

	obs, report, err := Normalize(raw, DropMalformed, time.Time{}, time.Time{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.Deduped != 1 {
		t.Fatalf("expected 1 deduped, got %d", report.Deduped)
	}
	if len(obs) != 2 {
		t.Fatalf("expected 2 observations, got %d", len(obs))
	}
	if *obs[0].Value != 9 {
		t.Fatalf("expected last-write-wins value 9, got %v", *obs[0].Value)
	}
}

func TestNormalizeMalformedDates(t *testing.T) {
	raw := []models.RawObservation{
		rawObs("2024-01-01", 1),
		rawObs("not-a-date", 2),
		rawObs("2024-01-03", 3),
	}

	obs, report, err := Normalize(raw, DropMalformed, time.Time{}, time.Time{})
	if err != nil {
		t.Fatalf("drop policy must not fail: %v", err)
	}
	if report.Dropped != 1 {
		t.Fatalf("expected 1 dropped, got %d", report.Dropped)
	}
	if len(obs) != 2 {
		t.Fatalf("expected 2 observations, got %d", len(obs))
	}

	if _, _, err := Normalize(raw, RejectMalformed, time.Time{}, time.Time{}); !errors.Is(err, ErrInvalidDate) {
		t.Fatalf("expected ErrInvalidDate, got %v", err)
	}
}

func TestNormalizeRangeFilter(t *testing.T) {
	raw := []models.RawObservation{
		rawObs("2024-01-01", 1),
		rawObs("2024-02-01", 2),
		rawObs("2024-03-01", 3),
		rawObs("2024-04-01", 4),
	}

	from := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	obs, _, err := Normalize(raw, DropMalformed, from, to)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(obs) != 2 {
		t.Fatalf("expected 2 observations in range, got %d", len(obs))
	}
	if *obs[0].Value != 2 || *obs[1].Value != 3 {
		t.Fatalf("wrong observations kept: %v %v", *obs[0].Value, *obs[1].Value)
	}
}

func TestNormalizePreservesNullValues(t *testing.T) {
	raw := []models.RawObservation{
		rawObs("2024-01-01", 1),
		{Date: "2024-02-01", Value: nil},
		rawObs("2024-03-01", 3),
	}

	obs, _, err := Normalize(raw, DropMalformed, time.Time{}, time.Time{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(obs) != 3 {
		t.Fatalf("null value must be kept as a gap, got %d observations", len(obs))
	}
	if obs[1].Value != nil {
		t.Fatalf("expected nil value at index 1, got %v", *obs[1].Value)
	}
}
