package analytics

import (
	"errors"
	"math"
	"testing"
)

func TestCorrelationSelf(t *testing.T) {
	obs := monthlySeries(100, 101.5, 102.3, 103.8, 105.2, 104.9)

	res, err := Correlation(obs, obs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(res.Coefficient-1.0) > 1e-9 {
		t.Fatalf("self correlation: got %v want 1.0", res.Coefficient)
	}
	if res.SampleSize != len(obs) {
		t.Fatalf("sample size: got %d want %d", res.SampleSize, len(obs))
	}
}

func TestCorrelationPerfectInverse(t *testing.T) {
	a := monthlySeries(1, 2, 3, 4)
	b := monthlySeries(8, 6, 4, 2)

	res, err := Correlation(a, b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(res.Coefficient+1.0) > 1e-9 {
		t.Fatalf("inverse correlation: got %v want -1.0", res.Coefficient)
	}
}

func TestCorrelationDateIntersection(t *testing.T) {
	a := monthlySeries(1, 2, 3, 4, 5)
	b := monthlySeries(10, 20, 30)[1:] // overlaps a on months 2 and 3

	res, err := Correlation(a, b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.SampleSize != 2 {
		t.Fatalf("expected 2 aligned points, got %d", res.SampleSize)
	}
}

func TestCorrelationSkipsGaps(t *testing.T) {
	a := monthlySeries(1, 2, 3, 4)
	b := withGap(monthlySeries(2, 4, 6, 8), 1)

	res, err := Correlation(a, b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.SampleSize != 3 {
		t.Fatalf("gap pair must be skipped: got %d aligned points", res.SampleSize)
	}
	if math.Abs(res.Coefficient-1.0) > 1e-9 {
		t.Fatalf("got %v want 1.0", res.Coefficient)
	}
}

func TestCorrelationInsufficientOverlap(t *testing.T) {
	a := monthlySeries(1, 2, 3)
	b := monthlySeries(0, 0, 0, 10, 20)[2:] // single common date

	_, err := Correlation(a, b[:1])
	if !errors.Is(err, ErrInsufficientData) {
		t.Fatalf("expected ErrInsufficientData, got %v", err)
	}

	_, err = Correlation(nil, nil)
	if !errors.Is(err, ErrInsufficientData) {
		t.Fatalf("expected ErrInsufficientData for empty input, got %v", err)
	}
}

func TestCorrelationZeroVariance(t *testing.T) {
	a := monthlySeries(5, 5, 5, 5)
	b := monthlySeries(1, 2, 3, 4)

	_, err := Correlation(a, b)
	if !errors.Is(err, ErrZeroVariance) {
		t.Fatalf("expected ErrZeroVariance, got %v", err)
	}
}
