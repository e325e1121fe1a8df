package analytics

import (
	"fmt"

	"FinLens/internal/domain/models"
)

// percentile anchors in ascending order.
type anchor struct {
	value float64
	pct   float64
}

// Percentile positions value inside the distribution by piecewise
// linear interpolation between the anchors P10=10, P25=25, Median=50,
// P75=75, P90=90. Results are clamped to [0, 100]: below P10 scales
// linearly toward 0, above P90 toward 100.
func Percentile(value float64, dist models.Distribution) (float64, error) {
	anchors := []anchor{
		{dist.P10, 10},
		{dist.P25, 25},
		{dist.Median, 50},
		{dist.P75, 75},
		{dist.P90, 90},
	}
	for i := 1; i < len(anchors); i++ {
		if anchors[i].value < anchors[i-1].value {
			return 0, fmt.Errorf("%w: anchors must be non-decreasing", ErrInvalidDistribution)
		}
	}

	if value <= anchors[0].value {
		// Scale [0, P10] onto [0, 10]; degenerate P10 <= 0 pins to 0.
		if anchors[0].value <= 0 || value <= 0 {
			return 0, nil
		}
		return clamp01e2(10 * value / anchors[0].value), nil
	}
	if value >= anchors[len(anchors)-1].value {
		last := anchors[len(anchors)-1]
		// Scale beyond P90 toward 100 using the P75-P90 span as slope.
		span := last.value - anchors[len(anchors)-2].value
		if span <= 0 {
			return 100, nil
		}
		return clamp01e2(90 + 10*(value-last.value)/span), nil
	}

	for i := 1; i < len(anchors); i++ {
		lo, hi := anchors[i-1], anchors[i]
		if value > hi.value {
			continue
		}
		if hi.value == lo.value {
			return hi.pct, nil
		}
		frac := (value - lo.value) / (hi.value - lo.value)
		return clamp01e2(lo.pct + frac*(hi.pct-lo.pct)), nil
	}
	return 100, nil
}

// Label maps a percentile to its peer-group bucket.
func Label(pct float64) string {
	switch {
	case pct >= 90:
		return "Top 10%"
	case pct >= 75:
		return "Top 25%"
	case pct >= 50:
		return "Above Median"
	case pct >= 25:
		return "Below Median"
	default:
		return "Bottom 25%"
	}
}

// Benchmark positions a company value inside a peer distribution and
// attaches the bucket label.
func Benchmark(ratioName string, companyValue float64, dist models.Distribution) (models.BenchmarkResult, error) {
	pct, err := Percentile(companyValue, dist)
	if err != nil {
		return models.BenchmarkResult{}, err
	}
	return models.BenchmarkResult{
		RatioName:    ratioName,
		CompanyValue: companyValue,
		Percentile:   pct,
		Label:        Label(pct),
		Distribution: dist,
	}, nil
}

func clamp01e2(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
