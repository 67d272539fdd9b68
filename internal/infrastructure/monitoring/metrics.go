// Package monitoring provides Prometheus metrics collection
package monitoring

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all application metrics
type Metrics struct {
	registry *prometheus.Registry

	// HTTP metrics
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	httpRequestsActive  prometheus.Gauge

	// Substitution engine metrics
	substitutionSearches      *prometheus.CounterVec
	substitutionCandidates    prometheus.Histogram
	substitutionApplies       *prometheus.CounterVec
	substitutionUndos         *prometheus.CounterVec
	substitutionScoreDuration prometheus.Histogram

	// Cache metrics
	cacheHits   *prometheus.CounterVec
	cacheMisses *prometheus.CounterVec
}

// NewMetrics creates and registers all application metrics
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	return &Metrics{
		registry: registry,

		httpRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mealplan_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		httpRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "mealplan_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		httpRequestsActive: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "mealplan_http_requests_active",
				Help: "Number of HTTP requests currently being served",
			},
		),

		substitutionSearches: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mealplan_substitution_searches_total",
				Help: "Total number of alternative searches",
			},
			[]string{"outcome"},
		),
		substitutionCandidates: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "mealplan_substitution_candidates_returned",
				Help:    "Number of candidates returned per search",
				Buckets: []float64{0, 1, 2, 3, 5, 8, 10},
			},
		),
		substitutionApplies: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mealplan_substitution_applies_total",
				Help: "Total number of applied substitutions",
			},
			[]string{"outcome", "impact"},
		),
		substitutionUndos: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mealplan_substitution_undos_total",
				Help: "Total number of substitution undos",
			},
			[]string{"outcome"},
		),
		substitutionScoreDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "mealplan_substitution_search_duration_seconds",
				Help:    "Candidate search duration in seconds",
				Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
			},
		),

		cacheHits: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mealplan_cache_hits_total",
				Help: "Total number of cache hits",
			},
			[]string{"cache"},
		),
		cacheMisses: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mealplan_cache_misses_total",
				Help: "Total number of cache misses",
			},
			[]string{"cache"},
		),
	}
}

// Registry returns the Prometheus registry for the metrics endpoint
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// RecordHTTPRequest records an HTTP request outcome
func (m *Metrics) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	m.httpRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	m.httpRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// HTTPRequestStarted marks a request in flight
func (m *Metrics) HTTPRequestStarted() {
	m.httpRequestsActive.Inc()
}

// HTTPRequestFinished marks a request complete
func (m *Metrics) HTTPRequestFinished() {
	m.httpRequestsActive.Dec()
}

// RecordSearch records an alternative search outcome
func (m *Metrics) RecordSearch(outcome string, candidates int, duration time.Duration) {
	m.substitutionSearches.WithLabelValues(outcome).Inc()
	if outcome == "success" {
		m.substitutionCandidates.Observe(float64(candidates))
	}
	m.substitutionScoreDuration.Observe(duration.Seconds())
}

// RecordApply records an applied substitution outcome
func (m *Metrics) RecordApply(outcome, impact string) {
	m.substitutionApplies.WithLabelValues(outcome, impact).Inc()
}

// RecordUndo records an undo outcome
func (m *Metrics) RecordUndo(outcome string) {
	m.substitutionUndos.WithLabelValues(outcome).Inc()
}

// RecordCacheHit records a cache hit
func (m *Metrics) RecordCacheHit(cache string) {
	m.cacheHits.WithLabelValues(cache).Inc()
}

// RecordCacheMiss records a cache miss
func (m *Metrics) RecordCacheMiss(cache string) {
	m.cacheMisses.WithLabelValues(cache).Inc()
}
