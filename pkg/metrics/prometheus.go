package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain repository.Metrics using Prometheus.
type Recorder struct {
	cacheLookups   *prometheus.CounterVec
	providerErrors *prometheus.CounterVec
	fallbackDepth  *prometheus.HistogramVec
	queryDuration  *prometheus.HistogramVec
	degradedTotal  *prometheus.CounterVec
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		cacheLookups: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "coinpulse_cache_lookups_total",
				Help: "Cache lookups by capability and result",
			},
			[]string{"capability", "result"},
		),
		providerErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "coinpulse_provider_errors_total",
				Help: "Soft-failed provider calls by provider and reason",
			},
			[]string{"provider", "reason"},
		),
		fallbackDepth: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "coinpulse_fallback_depth",
				Help:    "How many chain sources were tried before one answered",
				Buckets: []float64{1, 2, 3, 4},
			},
			[]string{"capability"},
		),
		queryDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "coinpulse_query_duration_seconds",
				Help:    "Logical query duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"query"},
		),
		degradedTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "coinpulse_degraded_responses_total",
				Help: "Composite responses served with at least one soft-failed constituent",
			},
			[]string{"query"},
		),
	}
}

// RecordCacheHit records a fresh cache entry serving a query.
func (r *Recorder) RecordCacheHit(capability string) {
	r.cacheLookups.WithLabelValues(capability, "hit").Inc()
}

// RecordCacheMiss records an absent or expired cache entry.
func (r *Recorder) RecordCacheMiss(capability string) {
	r.cacheLookups.WithLabelValues(capability, "miss").Inc()
}

// RecordProviderError records a soft-failed provider call.
func (r *Recorder) RecordProviderError(provider, reason string) {
	r.providerErrors.WithLabelValues(provider, reason).Inc()
}

// RecordFallbackDepth records how deep a fallback chain went.
func (r *Recorder) RecordFallbackDepth(capability string, depth int) {
	r.fallbackDepth.WithLabelValues(capability).Observe(float64(depth))
}

// RecordQueryLatency records a logical query duration in seconds.
func (r *Recorder) RecordQueryLatency(query string, seconds float64) {
	r.queryDuration.WithLabelValues(query).Observe(seconds)
}

// RecordDegraded records a composite served with a degraded field.
func (r *Recorder) RecordDegraded(query string) {
	r.degradedTotal.WithLabelValues(query).Inc()
}
