package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"rollcall/internal/api"
)

const (
	statusSuccess = "success"
	statusError   = "error"
)

// Metrics holds all Prometheus collectors for the resolution pipeline.
// A nil *Metrics is valid and records nothing, so callers can leave
// instrumentation switched off without guarding every call site.
type Metrics struct {
	// Validation metrics
	validationsTotal *prometheus.CounterVec

	// Resolution metrics
	resolutionsTotal   *prometheus.CounterVec
	resolutionDuration *prometheus.HistogramVec
	cacheHitsTotal     prometheus.Counter

	// Container state metrics
	servicesRegistered prometheus.Gauge
	singletonsCached   prometheus.Gauge
}

// New creates and registers all collectors on the default registry.
func New() *Metrics {
	return NewWithRegistry(prometheus.DefaultRegisterer)
}

// NewWithRegistry creates and registers all collectors on reg. Tests pass
// their own registry so repeated construction cannot collide.
func NewWithRegistry(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		validationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rollcall_validations_total",
				Help: "Total number of definition set validations",
			},
			[]string{"status"},
		),

		resolutionsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rollcall_resolutions_total",
				Help: "Total number of service resolutions",
			},
			[]string{"service", "status"},
		),

		resolutionDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "rollcall_resolution_duration_seconds",
				Help:    "Service resolution duration in seconds, including dependency construction",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"service"},
		),

		cacheHitsTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "rollcall_singleton_cache_hits_total",
				Help: "Total number of singleton resolutions served from the cache",
			},
		),

		servicesRegistered: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "rollcall_services_registered",
				Help: "Number of definitions currently registered in the container",
			},
		),

		singletonsCached: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "rollcall_singletons_cached",
				Help: "Number of singleton instances currently cached",
			},
		),
	}
}

// RecordValidation records the outcome of one definition set validation.
func (m *Metrics) RecordValidation(success bool) {
	if m == nil {
		return
	}
	m.validationsTotal.WithLabelValues(statusLabel(success)).Inc()
}

// RecordResolution records one service resolution as observed by the
// caller. The duration covers the whole call, so for a first singleton
// resolution it includes constructing the dependencies.
func (m *Metrics) RecordResolution(service string, success bool, duration time.Duration) {
	if m == nil {
		return
	}
	m.resolutionsTotal.WithLabelValues(service, statusLabel(success)).Inc()
	m.resolutionDuration.WithLabelValues(service).Observe(duration.Seconds())
}

// RecordCacheHit records one singleton resolution that returned a
// previously cached instance without running the factory.
func (m *Metrics) RecordCacheHit() {
	if m == nil {
		return
	}
	m.cacheHitsTotal.Inc()
}

// UpdateContainerStats mirrors the container counts into the gauges.
func (m *Metrics) UpdateContainerStats(stats api.ContainerStatistics) {
	if m == nil {
		return
	}
	m.servicesRegistered.Set(float64(stats.Registered))
	m.singletonsCached.Set(float64(stats.ResolvedSingletons))
}

func statusLabel(success bool) string {
	if success {
		return statusSuccess
	}
	return statusError
}
