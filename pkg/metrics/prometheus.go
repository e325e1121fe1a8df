package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	observationsStored *prometheus.CounterVec
	errorsTotal        *prometheus.CounterVec
	lastValue          *prometheus.GaugeVec
	latency            *prometheus.HistogramVec
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		observationsStored: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "finlens_observations_stored_total",
				Help: "Total number of observations routed to a backend",
			},
			[]string{"backend", "series_id"},
		),
		errorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "finlens_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"type"},
		),
		lastValue: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "finlens_series_last_value",
				Help: "Last ingested value for a series",
			},
			[]string{"series_id"},
		),
		latency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "finlens_operation_duration_seconds",
				Help:    "Duration of operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}
}

// RecordObservationStored records an observation routed to a backend.
func (r *Recorder) RecordObservationStored(backend, seriesID string) {
	r.observationsStored.WithLabelValues(backend, seriesID).Inc()
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

// RecordLastValue records the last ingested value for a series.
func (r *Recorder) RecordLastValue(seriesID string, value float64) {
	r.lastValue.WithLabelValues(seriesID).Set(value)
}

// RecordLatency records operation latency in seconds.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}
