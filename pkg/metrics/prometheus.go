package metrics

import (
	"errors"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	namespace = "lineup"
	subsystem = "engine"
)

// assignmentBuckets cover sub-millisecond matcher runs up to pathological rosters.
var assignmentBuckets = []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 25, 50, 100}

// httpBuckets are request latencies in milliseconds.
var httpBuckets = []float64{0.5, 1, 2.5, 5, 10, 25, 50, 100, 250, 500, 1000}

// Manager manages all Prometheus metrics for the lineup service.
type Manager struct {
	enabled  bool
	registry prometheus.Registerer

	// Engine metrics
	assignments        *prometheus.CounterVec
	assignmentDuration prometheus.Histogram
	slotsMatched       prometheus.Counter
	fallbackFills      prometheus.Counter
	swapAdvice         *prometheus.CounterVec
	analyses           prometheus.Counter
	recommendations    *prometheus.CounterVec
	positionUpdates    prometheus.Counter

	// HTTP metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	httpErrors          *prometheus.CounterVec
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// Init replaces the global manager and its registry. Call it once at startup,
// before serving /metrics.
func Init(opts ...Option) {
	customRegistry = prometheus.NewRegistry()
	globalManager = NewManager(append([]Option{WithPrometheusRegistry(customRegistry)}, opts...)...)
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		enabled:  true,
		registry: prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func counterOpts(name, help string) prometheus.CounterOpts {
	return prometheus.CounterOpts{Namespace: namespace, Subsystem: subsystem, Name: name, Help: help}
}

func histogramOpts(name, help string, buckets []float64) prometheus.HistogramOpts {
	return prometheus.HistogramOpts{Namespace: namespace, Subsystem: subsystem, Name: name, Help: help, Buckets: buckets}
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.assignments = auto.NewCounterVec(
		counterOpts("assignments_total", "Total number of auto-assignments by whether the fallback ran"),
		[]string{"fallback"},
	)
	m.assignmentDuration = auto.NewHistogram(
		histogramOpts("assignment_duration_milliseconds", "Wall-clock time of one auto-assignment", assignmentBuckets),
	)
	m.slotsMatched = auto.NewCounter(
		counterOpts("slots_matched_total", "Slots filled by the optimal matcher"),
	)
	m.fallbackFills = auto.NewCounter(
		counterOpts("fallback_fills_total", "Slots filled by the greedy fallback"),
	)
	m.swapAdvice = auto.NewCounterVec(
		counterOpts("swap_recommendations_total", "Swap advisor recommendations by kind"),
		[]string{"kind"},
	)
	m.analyses = auto.NewCounter(
		counterOpts("analyses_total", "Total number of formation analyses"),
	)
	m.recommendations = auto.NewCounterVec(
		counterOpts("analysis_recommendations_total", "Analysis recommendations by priority"),
		[]string{"priority"},
	)
	m.positionUpdates = auto.NewCounter(
		counterOpts("position_updates_total", "Players moved to their slot's default position"),
	)

	m.httpRequests = auto.NewCounterVec(
		counterOpts("http_requests_total", "Total number of HTTP requests by endpoint and method"),
		[]string{"endpoint", "method", "status_code"},
	)
	m.httpRequestDuration = auto.NewHistogramVec(
		histogramOpts("http_request_duration_milliseconds", "HTTP request duration in milliseconds", httpBuckets),
		[]string{"endpoint", "method", "status_code"},
	)
	m.httpErrors = auto.NewCounterVec(
		counterOpts("http_errors_total", "HTTP error responses by endpoint and kind"),
		[]string{"endpoint", "method", "kind"},
	)
}

// RecordAssignment records the outcome of one auto-assignment.
func (m *Manager) RecordAssignment(matched, fallback int) {
	if !m.enabled {
		return
	}
	m.assignments.WithLabelValues(strconv.FormatBool(fallback > 0)).Inc()
	m.slotsMatched.Add(float64(matched))
	m.fallbackFills.Add(float64(fallback))
}

// ObserveAssignmentDuration records how long one auto-assignment took.
func (m *Manager) ObserveAssignmentDuration(durationMs float64) {
	if !m.enabled {
		return
	}
	m.assignmentDuration.Observe(durationMs)
}

// RecordSwapAdvice counts one recommendation of the given kind.
func (m *Manager) RecordSwapAdvice(kind string) {
	if !m.enabled {
		return
	}
	m.swapAdvice.WithLabelValues(kind).Inc()
}

// RecordAnalysis counts one analysis.
func (m *Manager) RecordAnalysis() {
	if !m.enabled {
		return
	}
	m.analyses.Inc()
}

// RecordRecommendation counts one analysis recommendation.
func (m *Manager) RecordRecommendation(priority string) {
	if !m.enabled {
		return
	}
	m.recommendations.WithLabelValues(priority).Inc()
}

// RecordPositionUpdates counts moved players.
func (m *Manager) RecordPositionUpdates(n int) {
	if !m.enabled {
		return
	}
	m.positionUpdates.Add(float64(n))
}

// RecordHTTPRequest records an HTTP request.
func (m *Manager) RecordHTTPRequest(endpoint, method, statusCode string) {
	if !m.enabled {
		return
	}
	m.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func (m *Manager) RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	if !m.enabled {
		return
	}
	m.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// RecordHTTPError records an error response.
func (m *Manager) RecordHTTPError(endpoint, method, kind string) {
	if !m.enabled {
		return
	}
	m.httpErrors.WithLabelValues(endpoint, method, kind).Inc()
}

// Package-level HTTP helpers record on the global manager.

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.RecordHTTPRequest(endpoint, method, statusCode)
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.RecordHTTPRequestDuration(endpoint, method, statusCode, duration)
}

// RecordHTTPError records an error response.
func RecordHTTPError(endpoint, method, kind string) {
	globalManager.RecordHTTPError(endpoint, method, kind)
}

// Global returns the process-wide manager.
func Global() *Manager { return globalManager }

// RegisterRuntimeCollectors adds Go runtime and process metrics to the
// custom registry. Calling it more than once is harmless.
func RegisterRuntimeCollectors() error {
	for _, c := range []prometheus.Collector{
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	} {
		if err := customRegistry.Register(c); err != nil {
			var already prometheus.AlreadyRegisteredError
			if !errors.As(err, &already) {
				return err
			}
		}
	}
	return nil
}

// GetRegistry returns the custom registry holding the global metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
