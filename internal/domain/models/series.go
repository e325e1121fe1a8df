package models

import "time"

// RawObservation is an observation as received from an external feed
// before date parsing and normalization. Value is nil for missing points.
type RawObservation struct {
	Date  string   `json:"date"`
	Value *float64 `json:"value"`
}

// Observation is a normalized (date, value) point. Date is truncated to
// a UTC calendar date. Value is nil when the source reported a gap.
type Observation struct {
	Date  time.Time `json:"date"`
	Value *float64  `json:"value"`
}

// Series is a stored time series with its observations in ascending
// date order.
type Series struct {
	ID           string        `json:"id"`
	Name         string        `json:"name,omitempty"`
	Frequency    string        `json:"frequency,omitempty"`
	Observations []Observation `json:"observations"`
}

// ObservationEvent is the ingest wire format published to Kafka and
// consumed by the storage pipeline.
type ObservationEvent struct {
	SeriesID string   `json:"series_id"`
	Date     string   `json:"date"`
	Value    *float64 `json:"value"`
	Source   string   `json:"source,omitempty"`
	Ts       int64    `json:"ts"` // ingest time, unix ms
}

// Float64Ptr returns a pointer to v. Convenience for building test and
// request payloads.
func Float64Ptr(v float64) *float64 { return &v }
