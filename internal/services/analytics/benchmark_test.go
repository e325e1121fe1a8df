package analytics

import (
	"errors"
	"math"
	"testing"

	"FinLens/internal/domain/models"
)

var peerDist = models.Distribution{P10: 0.05, P25: 0.08, Median: 0.12, P75: 0.16, P90: 0.20}

func TestPercentileInterpolation(t *testing.T) {
	tests := []struct {
		name  string
		value float64
		want  float64
	}{
		{"at P10", 0.05, 10},
		{"at P25", 0.08, 25},
		{"at median", 0.12, 50},
		{"at P75", 0.16, 75},
		{"at P90", 0.20, 90},
		{"midway P25-median", 0.10, 37.5},
		{"between median and P75", 0.147, 50 + 25*(0.147-0.12)/(0.16-0.12)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Percentile(tt.value, peerDist)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if math.Abs(got-tt.want) > 1e-9 {
				t.Fatalf("got %v want %v", got, tt.want)
			}
		})
	}
}

func TestPercentileMonotonic(t *testing.T) {
	prev := -1.0
	for v := -0.1; v <= 0.35; v += 0.001 {
		got, err := Percentile(v, peerDist)
		if err != nil {
			t.Fatalf("unexpected error at %v: %v", v, err)
		}
		if got < prev {
			t.Fatalf("percentile not monotonic: f(%v)=%v < %v", v, got, prev)
		}
		prev = got
	}
}

func TestPercentileClamps(t *testing.T) {
	lo, err := Percentile(-1e6, peerDist)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if lo != 0 {
		t.Fatalf("expected clamp to 0, got %v", lo)
	}

	hi, err := Percentile(1e6, peerDist)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hi != 100 {
		t.Fatalf("expected clamp to 100, got %v", hi)
	}
}

func TestPercentileInvalidDistribution(t *testing.T) {
	bad := models.Distribution{P10: 0.2, P25: 0.1, Median: 0.12, P75: 0.16, P90: 0.20}
	if _, err := Percentile(0.1, bad); !errors.Is(err, ErrInvalidDistribution) {
		t.Fatalf("expected ErrInvalidDistribution, got %v", err)
	}
}

func TestLabels(t *testing.T) {
	tests := []struct {
		pct  float64
		want string
	}{
		{95, "Top 10%"},
		{90, "Top 10%"},
		{80, "Top 25%"},
		{75, "Top 25%"},
		{60, "Above Median"},
		{50, "Above Median"},
		{30, "Below Median"},
		{25, "Below Median"},
		{10, "Bottom 25%"},
		{0, "Bottom 25%"},
	}
	for _, tt := range tests {
		if got := Label(tt.pct); got != tt.want {
			t.Fatalf("Label(%v) = %q, want %q", tt.pct, got, tt.want)
		}
	}
}

func TestBenchmark(t *testing.T) {
	res, err := Benchmark("roe", 0.147, peerDist)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.RatioName != "roe" || res.CompanyValue != 0.147 {
		t.Fatalf("request fields not echoed: %+v", res)
	}
	if res.Label != Label(res.Percentile) {
		t.Fatalf("label %q inconsistent with percentile %v", res.Label, res.Percentile)
	}
}
