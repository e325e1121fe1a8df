package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// AnalyticsMetrics instruments the analytics request path.
type AnalyticsMetrics struct {
	Latency   *prometheus.HistogramVec
	Errors    *prometheus.CounterVec
	CacheHits *prometheus.CounterVec
}

// NewAnalyticsMetrics registers analytics metrics on the default
// registry.
func NewAnalyticsMetrics() *AnalyticsMetrics {
	return &AnalyticsMetrics{
		Latency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "finlens_analytics_duration_seconds",
				Help:    "Analytics computation latency per operation",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		Errors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "finlens_analytics_errors_total",
				Help: "Analytics errors per operation and class",
			},
			[]string{"operation", "class"},
		),
		CacheHits: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "finlens_analytics_cache_total",
				Help: "Analytics response cache lookups",
			},
			[]string{"operation", "result"},
		),
	}
}

// ObserveLatency records one computation duration.
func (m *AnalyticsMetrics) ObserveLatency(operation string, seconds float64) {
	m.Latency.WithLabelValues(operation).Observe(seconds)
}

// RecordError counts one failed computation.
func (m *AnalyticsMetrics) RecordError(operation, class string) {
	m.Errors.WithLabelValues(operation, class).Inc()
}

// RecordCache counts a cache hit or miss.
func (m *AnalyticsMetrics) RecordCache(operation, result string) {
	m.CacheHits.WithLabelValues(operation, result).Inc()
}
