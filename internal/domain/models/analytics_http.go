package models

// SeriesInput references stored observations by series ID or carries
// them inline. Exactly one of the two should be set; inline wins when
// both are present.
type SeriesInput struct {
	SeriesID     string           `json:"series_id" validate:"omitempty,max=128"`
	Observations []RawObservation `json:"observations" validate:"omitempty,dive"`
	StartDate    string           `json:"start_date" validate:"omitempty"`
	EndDate      string           `json:"end_date" validate:"omitempty"`
}

// IndicatorsRequest asks for one or more indicator series.
type IndicatorsRequest struct {
	SeriesInput
	Indicators []string `json:"indicators" default:"[\"sma\"]" validate:"required,min=1,dive,oneof=sma ema bollinger"`
	Periods    []int    `json:"periods" default:"[20]" validate:"required,min=1,dive,gt=1"`
	BollingerK float64  `json:"bollinger_k" default:"2" validate:"gt=0"`
}

// IndicatorsResponse carries all requested indicator series.
type IndicatorsResponse struct {
	SeriesID string            `json:"series_id,omitempty"`
	Results  []IndicatorResult `json:"results"`
	Dropped  int               `json:"dropped,omitempty"`
}

// BenchmarkRequest positions a company value against a peer
// distribution. The distribution is either supplied inline or fetched
// from the peer statistics service by ratio name.
type BenchmarkRequest struct {
	RatioName    string        `json:"ratio_name" validate:"omitempty,max=64"`
	CompanyValue float64       `json:"company_value"`
	Distribution *Distribution `json:"distribution" validate:"omitempty"`
}

// TrendRequest asks for trend classification and optional projection.
// Frequency controls projection step spacing; empty means inferred from
// the observation dates.
type TrendRequest struct {
	SeriesInput
	Window         int     `json:"window" validate:"omitempty,gte=0"`
	ProjectPeriods int     `json:"project_periods" validate:"omitempty,gte=0,lte=60"`
	ThresholdPct   float64 `json:"threshold_pct" default:"5" validate:"gt=0"`
	Frequency      string  `json:"frequency" validate:"omitempty,oneof=daily weekly monthly quarterly annual"`
}

// TrendResponse reports the trend plus any requested projection.
type TrendResponse struct {
	SeriesID   string            `json:"series_id,omitempty"`
	Trend      TrendResult       `json:"trend"`
	Projection []ProjectionPoint `json:"projection,omitempty"`
}

// CorrelationRequest asks for the Pearson coefficient of two series.
type CorrelationRequest struct {
	Primary   SeriesInput `json:"primary" validate:"required"`
	Secondary SeriesInput `json:"secondary" validate:"required"`
}

// IngestObservationsRequest appends raw observations to a stored
// series.
type IngestObservationsRequest struct {
	Observations []RawObservation `json:"observations" validate:"required,min=1,dive"`
	Source       string           `json:"source" validate:"omitempty,max=64"`
}

// IngestResponse acknowledges accepted points and reports drops.
type IngestResponse struct {
	SeriesID string `json:"series_id"`
	Accepted int    `json:"accepted"`
	Dropped  int    `json:"dropped"`
}
