package observability

import (
	"net/http"

	"github.com/aretw0/searchexpr/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics records resolution outcomes.
type Metrics struct {
	resolutions *prometheus.CounterVec
	duration    *prometheus.HistogramVec
	matches     prometheus.Histogram
	gatherer    prometheus.Gatherer
}

// NewMetrics creates the collectors and registers them on reg.
// A nil reg uses a fresh registry, so several Metrics can coexist in tests.
func NewMetrics(reg *prometheus.Registry) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	m := &Metrics{
		resolutions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "searchexpr_resolutions_total",
				Help: "Total number of resolved search expressions by outcome",
			},
			[]string{"outcome"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "searchexpr_resolution_duration_seconds",
				Help:    "Duration of search expression resolutions",
				Buckets: prometheus.ExponentialBuckets(0.00001, 4, 8),
			},
			[]string{"outcome"},
		),
		matches: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "searchexpr_resolution_matches",
				Help:    "Number of components a successful expression resolved to",
				Buckets: []float64{0, 1, 2, 5, 10, 50},
			},
		),
		gatherer: reg,
	}
	reg.MustRegister(m.resolutions, m.duration, m.matches)
	return m
}

// Observe records one resolve event.
func (m *Metrics) Observe(e *domain.ResolveEvent) {
	outcome := string(e.Type)
	m.resolutions.WithLabelValues(outcome).Inc()
	m.duration.WithLabelValues(outcome).Observe(e.Duration.Seconds())
	if e.Type == domain.EventResolved {
		m.matches.Observe(float64(e.Matches))
	}
}

// Hooks feeds every outcome into the metrics.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnResolve:  m.Observe,
		OnNotFound: m.Observe,
		OnInvalid:  m.Observe,
	}
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
