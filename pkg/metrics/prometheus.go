// Package metrics provides Prometheus metrics for the rotation core.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	customLabels     map[string]string
	registry         *prometheus.Registry

	// Core business metrics
	runsSubmitted     prometheus.Counter
	runsRejected      prometheus.Counter
	firesCreated      prometheus.Counter
	firesRedeemed     prometheus.Counter
	redeemConflicts   prometheus.Counter
	tideContributions prometheus.Counter
	regattaFetches    prometheus.Counter
	omenFetches       prometheus.Counter

	// Store metrics
	storeOpDuration *prometheus.HistogramVec
	storeErrors     prometheus.Counter

	// HTTP performance metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

var defaultManager *Manager

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	defaultManager = NewManager()
}

// NewManager creates a metrics manager and registers all collectors on a
// fresh registry.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "bootyhunt",
		subsystem:        "core",
		histogramBuckets: []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000},
		enabled:          true,
		registry:         prometheus.NewRegistry(),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	factory := promauto.With(m.registry)

	m.runsSubmitted = factory.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "runs_submitted_total",
		Help:        "Total number of game runs accepted and persisted.",
		ConstLabels: m.customLabels,
	})
	m.runsRejected = factory.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "runs_rejected_total",
		Help:        "Total number of run submissions rejected by validation.",
		ConstLabels: m.customLabels,
	})
	m.firesCreated = factory.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "signal_fires_created_total",
		Help:        "Total number of signal fire codes issued.",
		ConstLabels: m.customLabels,
	})
	m.firesRedeemed = factory.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "signal_fires_redeemed_total",
		Help:        "Total number of signal fire codes successfully redeemed.",
		ConstLabels: m.customLabels,
	})
	m.redeemConflicts = factory.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "signal_fire_redeem_conflicts_total",
		Help:        "Total number of redemption attempts refused (already redeemed or expired).",
		ConstLabels: m.customLabels,
	})
	m.tideContributions = factory.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "tide_contributions_total",
		Help:        "Total number of tide contributions appended.",
		ConstLabels: m.customLabels,
	})
	m.regattaFetches = factory.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "regatta_fetches_total",
		Help:        "Total number of regatta info fetches.",
		ConstLabels: m.customLabels,
	})
	m.omenFetches = factory.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "tide_omen_fetches_total",
		Help:        "Total number of tide omen fetches.",
		ConstLabels: m.customLabels,
	})

	m.storeOpDuration = factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "store_op_duration_ms",
		Help:        "Store operation latency in milliseconds.",
		Buckets:     m.histogramBuckets,
		ConstLabels: m.customLabels,
	}, []string{"op"})
	m.storeErrors = factory.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "store_errors_total",
		Help:        "Total number of store operation failures.",
		ConstLabels: m.customLabels,
	})

	m.httpRequests = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "http_requests_total",
		Help:        "Total HTTP requests by endpoint, method and status.",
		ConstLabels: m.customLabels,
	}, []string{"endpoint", "method", "status"})
	m.httpRequestDuration = factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "http_request_duration_ms",
		Help:        "HTTP request latency in milliseconds.",
		Buckets:     m.histogramBuckets,
		ConstLabels: m.customLabels,
	}, []string{"endpoint", "method", "status"})
}

// Package-level recording helpers delegate to the default manager.

// RecordRunSubmitted increments the accepted-run counter.
func RecordRunSubmitted() {
	if defaultManager.enabled {
		defaultManager.runsSubmitted.Inc()
	}
}

// RecordRunRejected increments the rejected-run counter.
func RecordRunRejected() {
	if defaultManager.enabled {
		defaultManager.runsRejected.Inc()
	}
}

// RecordFireCreated increments the issued-code counter.
func RecordFireCreated() {
	if defaultManager.enabled {
		defaultManager.firesCreated.Inc()
	}
}

// RecordFireRedeemed increments the redeemed-code counter.
func RecordFireRedeemed() {
	if defaultManager.enabled {
		defaultManager.firesRedeemed.Inc()
	}
}

// RecordRedeemConflict increments the refused-redemption counter.
func RecordRedeemConflict() {
	if defaultManager.enabled {
		defaultManager.redeemConflicts.Inc()
	}
}

// RecordTideContribution increments the contribution counter.
func RecordTideContribution() {
	if defaultManager.enabled {
		defaultManager.tideContributions.Inc()
	}
}

// RecordRegattaFetch increments the regatta fetch counter.
func RecordRegattaFetch() {
	if defaultManager.enabled {
		defaultManager.regattaFetches.Inc()
	}
}

// RecordOmenFetch increments the omen fetch counter.
func RecordOmenFetch() {
	if defaultManager.enabled {
		defaultManager.omenFetches.Inc()
	}
}

// RecordStoreOpDuration observes one store operation latency.
func RecordStoreOpDuration(op string, latencyMs float64) {
	if defaultManager.enabled {
		defaultManager.storeOpDuration.WithLabelValues(op).Observe(latencyMs)
	}
}

// RecordStoreError increments the store failure counter.
func RecordStoreError() {
	if defaultManager.enabled {
		defaultManager.storeErrors.Inc()
	}
}

// RecordHTTPRequest counts one HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	if defaultManager.enabled {
		defaultManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
	}
}

// RecordHTTPRequestDuration observes one HTTP request latency.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, durationMs float64) {
	if defaultManager.enabled {
		defaultManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
	}
}

// GetRegistry exposes the default registry for the /metrics endpoint.
func GetRegistry() *prometheus.Registry {
	return defaultManager.registry
}
