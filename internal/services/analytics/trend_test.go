package analytics

import (
	"math"
	"testing"
	"time"

	"FinLens/internal/domain/models"
	"FinLens/internal/domain/repository"
)

func TestTrendDirections(t *testing.T) {
	tests := []struct {
		name       string
		values     []float64
		want       models.TrendDirection
		wantChange float64
	}{
		{"up", []float64{100, 103, 110}, models.TrendUp, 10},
		{"down", []float64{100, 98, 90}, models.TrendDown, -10},
		{"stable small rise", []float64{100, 101, 103}, models.TrendStable, 3},
		{"stable small fall", []float64{100, 99, 96}, models.TrendStable, -4},
		{"boundary not up", []float64{100, 102, 105}, models.TrendStable, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Trend(monthlySeries(tt.values...), DefaultTrendThresholdPct)
			if res.Direction != tt.want {
				t.Fatalf("direction: got %v want %v", res.Direction, tt.want)
			}
			if math.Abs(res.ChangePercent-tt.wantChange) > 1e-9 {
				t.Fatalf("change: got %v want %v", res.ChangePercent, tt.wantChange)
			}
			if res.StrengthPercent != math.Abs(res.ChangePercent) {
				t.Fatalf("strength must be abs(change): %v vs %v", res.StrengthPercent, res.ChangePercent)
			}
		})
	}
}

func TestTrendZeroBaseline(t *testing.T) {
	res := Trend(monthlySeries(0, 50, 100), DefaultTrendThresholdPct)
	if res.Direction != models.TrendStable {
		t.Fatalf("zero baseline must be stable, got %v", res.Direction)
	}
	if res.ChangePercent != 0 || res.StrengthPercent != 0 {
		t.Fatalf("zero baseline must report zero change: %+v", res)
	}
}

func TestTrendInsufficientData(t *testing.T) {
	res := Trend(monthlySeries(100), DefaultTrendThresholdPct)
	if res.Direction != models.TrendStable || res.SampleSize != 1 {
		t.Fatalf("single point must be stable: %+v", res)
	}

	res = Trend(nil, DefaultTrendThresholdPct)
	if res.Direction != models.TrendStable {
		t.Fatalf("empty series must be stable: %+v", res)
	}
}

func TestTrendSkipsGaps(t *testing.T) {
	obs := withGap(withGap(monthlySeries(0, 100, 103, 110, 0), 0), 4)
	res := Trend(obs, DefaultTrendThresholdPct)
	if res.First != 100 || res.Last != 110 {
		t.Fatalf("gaps must be skipped at the edges: %+v", res)
	}
	if res.Direction != models.TrendUp {
		t.Fatalf("expected up, got %v", res.Direction)
	}
}

func TestProjectLinearContinuation(t *testing.T) {
	obs := monthlySeries(100, 110, 120)

	points := Project(obs, 3, repository.FreqMonthly)
	if len(points) != 3 {
		t.Fatalf("expected 3 projected points, got %d", len(points))
	}
	want := 120.0
	date := obs[2].Date
	for i, p := range points {
		want += 10
		date = date.AddDate(0, 1, 0)
		if math.Abs(p.Value-want) > 1e-9 {
			t.Fatalf("point %d: got %v want %v", i, p.Value, want)
		}
		if !p.Date.Equal(date) {
			t.Fatalf("point %d: got date %v want %v", i, p.Date, date)
		}
		if !p.IsProjection {
			t.Fatalf("point %d must be flagged as projection", i)
		}
	}
}

func TestProjectQuarterlyStep(t *testing.T) {
	obs := []models.Observation{
		{Date: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), Value: models.Float64Ptr(10)},
		{Date: time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC), Value: models.Float64Ptr(20)},
	}

	// frequency left unset: inferred from the ~91 day gap
	points := Project(obs, 2, "")
	if len(points) != 2 {
		t.Fatalf("expected 2 points, got %d", len(points))
	}
	if want := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC); !points[0].Date.Equal(want) {
		t.Fatalf("quarterly step: got %v want %v", points[0].Date, want)
	}
	if want := time.Date(2024, 10, 1, 0, 0, 0, 0, time.UTC); !points[1].Date.Equal(want) {
		t.Fatalf("quarterly step: got %v want %v", points[1].Date, want)
	}
}

func TestProjectInsufficientData(t *testing.T) {
	if got := Project(monthlySeries(100), 3, repository.FreqMonthly); got != nil {
		t.Fatalf("single point must not project, got %v", got)
	}
	if got := Project(monthlySeries(100, 110), 0, repository.FreqMonthly); got != nil {
		t.Fatalf("zero periods must not project, got %v", got)
	}
}

func TestWindowSince(t *testing.T) {
	obs := monthlySeries(1, 2, 3, 4)
	cutoff := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	got := WindowSince(obs, cutoff)
	if len(got) != 2 {
		t.Fatalf("expected 2 observations, got %d", len(got))
	}
	if *got[0].Value != 3 {
		t.Fatalf("expected window to start at value 3, got %v", *got[0].Value)
	}
	if got := WindowSince(obs, time.Time{}); len(got) != len(obs) {
		t.Fatalf("zero cutoff must keep all observations")
	}
}
