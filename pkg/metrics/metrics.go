// Package metrics exposes Prometheus metrics for the keyword research service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns all Prometheus collectors for the service.
type Manager struct {
	namespace string
	subsystem string
	registry  prometheus.Registerer

	// Pipeline metrics
	researchRuns     prometheus.Counter
	researchFailures prometheus.Counter
	researchDuration prometheus.Histogram
	recordsProduced  prometheus.Histogram

	// Provider metrics
	providerFetches      *prometheus.CounterVec
	providerErrors       *prometheus.CounterVec
	providerObservations *prometheus.CounterVec
	providerDuration     *prometheus.HistogramVec
	providerDisabled     *prometheus.CounterVec

	// Merge metrics
	observationsMerged prometheus.Counter
	duplicateGroups    prometheus.Counter

	// HTTP metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

// Global manager backed by a custom registry so default Go collectors stay out.
var (
	customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // singleton metrics registry
	globalManager  *Manager                   //nolint:gochecknoglobals // singleton metrics manager
)

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithRegistry(customRegistry))
}

// NewManager creates a metrics manager and registers its collectors.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace: "kwscout",
		subsystem: "research",
		registry:  prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}

	auto := promauto.With(m.registry)

	m.researchRuns = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "runs_total",
		Help: "Total number of research pipeline runs",
	})
	m.researchFailures = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "run_failures_total",
		Help: "Total number of research runs that returned an error",
	})
	m.researchDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name:    "run_duration_seconds",
		Help:    "End-to-end research pipeline duration",
		Buckets: prometheus.DefBuckets,
	})
	m.recordsProduced = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name:    "records_produced",
		Help:    "Number of ranked records produced per run",
		Buckets: []float64{1, 5, 10, 25, 50, 75, 100},
	})

	m.providerFetches = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "provider_fetches_total",
		Help: "Fetch calls issued per provider",
	}, []string{"provider"})
	m.providerErrors = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "provider_errors_total",
		Help: "Transport or parse failures per provider",
	}, []string{"provider"})
	m.providerObservations = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "provider_observations_total",
		Help: "Keyword observations contributed per provider",
	}, []string{"provider"})
	m.providerDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name:    "provider_fetch_duration_seconds",
		Help:    "Fetch duration per provider",
		Buckets: prometheus.DefBuckets,
	}, []string{"provider"})
	m.providerDisabled = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "provider_disabled_total",
		Help: "Providers disabled mid-run after permanent auth failures",
	}, []string{"provider"})

	m.observationsMerged = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "observations_merged_total",
		Help: "Raw observations folded into merged records",
	})
	m.duplicateGroups = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "duplicate_groups_total",
		Help: "Keyword groups with more than one contributing observation",
	})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: "http",
		Name: "requests_total",
		Help: "HTTP requests by endpoint, method and status",
	}, []string{"endpoint", "method", "status"})
	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: "http",
		Name:    "request_duration_seconds",
		Help:    "HTTP request duration by endpoint",
		Buckets: prometheus.DefBuckets,
	}, []string{"endpoint", "method"})

	return m
}

// Package-level helpers hit the global manager.

// RecordResearchRun counts a completed pipeline run with its duration.
func RecordResearchRun(durationSeconds float64, records int) {
	globalManager.researchRuns.Inc()
	globalManager.researchDuration.Observe(durationSeconds)
	globalManager.recordsProduced.Observe(float64(records))
}

// RecordResearchFailure counts a pipeline run that returned an error.
func RecordResearchFailure() {
	globalManager.researchFailures.Inc()
}

// RecordProviderFetch counts a provider fetch and its duration.
func RecordProviderFetch(provider string, durationSeconds float64) {
	globalManager.providerFetches.WithLabelValues(provider).Inc()
	globalManager.providerDuration.WithLabelValues(provider).Observe(durationSeconds)
}

// RecordProviderError counts a caught transport or parse failure.
func RecordProviderError(provider string) {
	globalManager.providerErrors.WithLabelValues(provider).Inc()
}

// RecordProviderObservations counts observations contributed by a provider.
func RecordProviderObservations(provider string, n int) {
	globalManager.providerObservations.WithLabelValues(provider).Add(float64(n))
}

// RecordProviderDisabled counts a provider dropped for the rest of the run.
func RecordProviderDisabled(provider string) {
	globalManager.providerDisabled.WithLabelValues(provider).Inc()
}

// RecordMerge counts merged observations and multi-source groups.
func RecordMerge(observations, duplicateGroups int) {
	globalManager.observationsMerged.Add(float64(observations))
	globalManager.duplicateGroups.Add(float64(duplicateGroups))
}

// RecordHTTPRequest counts a served HTTP request.
func RecordHTTPRequest(endpoint, method, status string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, status).Inc()
}

// RecordHTTPRequestDuration records the latency of a served HTTP request.
func RecordHTTPRequestDuration(endpoint, method string, durationSeconds float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method).Observe(durationSeconds)
}

// GetRegistry returns the custom registry for the /metrics handler.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
