package analytics

import (
	"math"
	"testing"
	"time"

	"FinLens/internal/domain/models"
)

// monthlySeries builds observations one month apart starting 2024-01.
func monthlySeries(values ...float64) []models.Observation {
	obs := make([]models.Observation, len(values))
	date := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, v := range values {
		val := v
		obs[i] = models.Observation{Date: date, Value: &val}
		date = date.AddDate(0, 1, 0)
	}
	return obs
}

func withGap(obs []models.Observation, at int) []models.Observation {
	out := make([]models.Observation, len(obs))
	copy(out, obs)
	out[at].Value = nil
	return out
}

func TestSMAKnownWindow(t *testing.T) {
	obs := monthlySeries(100, 101.5, 102.3, 103.8, 105.2, 104.9)

	res, err := SMA(obs, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Points) != len(obs) {
		t.Fatalf("result not aligned to input: %d vs %d", len(res.Points), len(obs))
	}
	for i := 0; i < 2; i++ {
		if res.Points[i].Value != nil {
			t.Fatalf("expected nil before first full window at %d", i)
		}
	}
	got := *res.Points[5].Value
	want := (103.8 + 105.2 + 104.9) / 3
	if math.Abs(got-want) > 0.01 {
		t.Fatalf("SMA(3) at last index: got %v want %v", got, want)
	}
}

func TestSMAShorterThanPeriod(t *testing.T) {
	obs := monthlySeries(1, 2, 3)

	res, err := SMA(obs, 5)
	if err != nil {
		t.Fatalf("short series must not fail: %v", err)
	}
	for i, p := range res.Points {
		if p.Value != nil {
			t.Fatalf("expected all-nil result, got value at %d", i)
		}
	}
}

func TestSMAWindowWithGap(t *testing.T) {
	obs := withGap(monthlySeries(1, 2, 3, 4, 5), 2)

	res, err := SMA(obs, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// windows ending at 2, 3, 4 all contain the gap at index 2
	for _, i := range []int{2, 3, 4} {
		if res.Points[i].Value != nil {
			t.Fatalf("window containing gap must be nil at %d, got %v", i, *res.Points[i].Value)
		}
	}
}

func TestSMADeterministic(t *testing.T) {
	obs := monthlySeries(10, 20, 30, 40, 50)

	a, _ := SMA(obs, 2)
	b, _ := SMA(obs, 2)
	for i := range a.Points {
		av, bv := a.Points[i].Value, b.Points[i].Value
		if (av == nil) != (bv == nil) {
			t.Fatalf("non-deterministic nil at %d", i)
		}
		if av != nil && *av != *bv {
			t.Fatalf("non-deterministic value at %d: %v vs %v", i, *av, *bv)
		}
	}
}

func TestEMASeedEqualsSMA(t *testing.T) {
	obs := monthlySeries(100, 101.5, 102.3, 103.8, 105.2, 104.9)
	period := 3

	sma, _ := SMA(obs, period)
	ema, err := EMA(obs, period)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	seed := ema.Points[period-1]
	if seed.Value == nil {
		t.Fatalf("expected EMA seed at index %d", period-1)
	}
	if math.Abs(*seed.Value-*sma.Points[period-1].Value) > 1e-12 {
		t.Fatalf("EMA seed %v != SMA %v", *seed.Value, *sma.Points[period-1].Value)
	}
	for i := 0; i < period-1; i++ {
		if ema.Points[i].Value != nil {
			t.Fatalf("expected nil before seed at %d", i)
		}
	}
}

func TestEMARecursion(t *testing.T) {
	obs := monthlySeries(10, 20, 30, 40)
	period := 2
	alpha := 2.0 / float64(period+1)

	res, err := EMA(obs, period)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	prev := (10.0 + 20.0) / 2
	for i := 2; i < len(obs); i++ {
		want := alpha**obs[i].Value + (1-alpha)*prev
		if math.Abs(*res.Points[i].Value-want) > 1e-12 {
			t.Fatalf("EMA at %d: got %v want %v", i, *res.Points[i].Value, want)
		}
		prev = want
	}
}

func TestEMACarriesAcrossGap(t *testing.T) {
	obs := withGap(monthlySeries(10, 20, 30, 40, 50), 3)

	res, err := EMA(obs, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Points[3].Value != nil {
		t.Fatalf("expected nil at gap index, got %v", *res.Points[3].Value)
	}
	if res.Points[4].Value == nil {
		t.Fatalf("expected EMA to resume after gap")
	}
	// resumed value uses the average carried from before the gap
	alpha := 2.0 / 3.0
	prev := alpha*30 + (1-alpha)*((10.0+20.0)/2)
	want := alpha*50 + (1-alpha)*prev
	if math.Abs(*res.Points[4].Value-want) > 1e-12 {
		t.Fatalf("EMA after gap: got %v want %v", *res.Points[4].Value, want)
	}
}

func TestEMAShorterThanPeriod(t *testing.T) {
	obs := monthlySeries(1, 2)

	res, err := EMA(obs, 5)
	if err != nil {
		t.Fatalf("short series must not fail: %v", err)
	}
	for i, p := range res.Points {
		if p.Value != nil {
			t.Fatalf("expected all-nil result, got value at %d", i)
		}
	}
}

func TestBollingerBands(t *testing.T) {
	obs := monthlySeries(2, 4, 6, 8)
	period, k := 3, 2.0

	bands, err := Bollinger(obs, period, k)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(bands) != 3 {
		t.Fatalf("expected 3 bands, got %d", len(bands))
	}

	var upper, middle, lower models.IndicatorResult
	for _, b := range bands {
		switch b.Kind {
		case models.IndicatorBollingerUpper:
			upper = b
		case models.IndicatorBollingerMiddle:
			middle = b
		case models.IndicatorBollingerLower:
			lower = b
		}
	}

	// window [2,4,6]: mean 4, population stddev sqrt(8/3)
	sd := math.Sqrt(8.0 / 3.0)
	if math.Abs(*middle.Points[2].Value-4) > 1e-12 {
		t.Fatalf("middle band: got %v want 4", *middle.Points[2].Value)
	}
	if math.Abs(*upper.Points[2].Value-(4+k*sd)) > 1e-9 {
		t.Fatalf("upper band: got %v want %v", *upper.Points[2].Value, 4+k*sd)
	}
	if math.Abs(*lower.Points[2].Value-(4-k*sd)) > 1e-9 {
		t.Fatalf("lower band: got %v want %v", *lower.Points[2].Value, 4-k*sd)
	}
	if upper.Points[1].Value != nil {
		t.Fatalf("expected nil before first full window")
	}
}

func TestBollingerShorterThanPeriod(t *testing.T) {
	obs := monthlySeries(1, 2)

	bands, err := Bollinger(obs, 5, 2)
	if err != nil {
		t.Fatalf("short series must not fail: %v", err)
	}
	for _, b := range bands {
		for i, p := range b.Points {
			if p.Value != nil {
				t.Fatalf("%s: expected all-nil result, got value at %d", b.Kind, i)
			}
		}
	}
}

func TestIndicatorPeriodValidation(t *testing.T) {
	obs := monthlySeries(1, 2, 3)

	if _, err := SMA(obs, 1); err == nil {
		t.Fatalf("expected error for period 1")
	}
	if _, err := EMA(obs, 0); err == nil {
		t.Fatalf("expected error for period 0")
	}
	if _, err := Bollinger(obs, -1, 2); err == nil {
		t.Fatalf("expected error for negative period")
	}
}
