package models

import "time"

// IndicatorKind identifies a computed indicator series.
type IndicatorKind string

const (
	IndicatorSMA             IndicatorKind = "sma"
	IndicatorEMA             IndicatorKind = "ema"
	IndicatorBollingerUpper  IndicatorKind = "bollinger_upper"
	IndicatorBollingerMiddle IndicatorKind = "bollinger_middle"
	IndicatorBollingerLower  IndicatorKind = "bollinger_lower"
)

// IndicatorPoint is one dated indicator value. Value is nil while the
// indicator has not accumulated a full window, or when the window
// contains a gap.
type IndicatorPoint struct {
	Date  time.Time `json:"date"`
	Value *float64  `json:"value"`
}

// IndicatorResult is one computed indicator series aligned 1:1 with the
// input observations.
type IndicatorResult struct {
	Kind   IndicatorKind    `json:"kind"`
	Period int              `json:"period"`
	Points []IndicatorPoint `json:"points"`
}

// Distribution holds the percentile anchors of a peer distribution.
type Distribution struct {
	P10    float64 `json:"p10"`
	P25    float64 `json:"p25"`
	Median float64 `json:"median"`
	P75    float64 `json:"p75"`
	P90    float64 `json:"p90"`
}

// BenchmarkResult positions a company value inside a peer distribution.
type BenchmarkResult struct {
	RatioName    string       `json:"ratio_name,omitempty"`
	CompanyValue float64      `json:"company_value"`
	Percentile   float64      `json:"percentile"`
	Label        string       `json:"label"`
	Distribution Distribution `json:"distribution"`
}

// TrendDirection classifies series movement over a window.
type TrendDirection string

const (
	TrendUp     TrendDirection = "up"
	TrendDown   TrendDirection = "down"
	TrendStable TrendDirection = "stable"
)

// TrendResult summarizes direction and magnitude of change over the
// analyzed window.
type TrendResult struct {
	Direction       TrendDirection `json:"direction"`
	ChangePercent   float64        `json:"change_percent"`
	StrengthPercent float64        `json:"strength_percent"`
	First           float64        `json:"first"`
	Last            float64        `json:"last"`
	SampleSize      int            `json:"sample_size"`
}

// ProjectionPoint is one point in a projected continuation of a series.
// IsProjection distinguishes projected points from historical ones when
// both appear in a single response.
type ProjectionPoint struct {
	Date         time.Time `json:"date"`
	Value        float64   `json:"value"`
	IsProjection bool      `json:"is_projection"`
}

// CorrelationResult reports the Pearson coefficient over the date
// intersection of two series.
type CorrelationResult struct {
	Coefficient float64 `json:"coefficient"`
	SampleSize  int     `json:"sample_size"`
}
