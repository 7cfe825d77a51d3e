// Package metrics holds the Prometheus collectors of the service.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "dating"

// Cycle results
const (
	CycleOK      = "ok"
	CycleSkipped = "skipped"
	CycleError   = "error"
)

// Metrics groups every collector. A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	MatcherCycles      *prometheus.CounterVec
	SuggestionsCreated prometheus.Counter
	DateTransitions    *prometheus.CounterVec
	HTTPRequests       *prometheus.CounterVec
	HTTPDuration       *prometheus.HistogramVec
}

// New registers the collectors on a fresh registry together with the
// process and Go runtime collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewGoCollector(),
	)
	f := promauto.With(reg)

	return &Metrics{
		registry: reg,
		MatcherCycles: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "matcher_cycles_total",
			Help:      "Matching cycles by result.",
		}, []string{"result"}),
		SuggestionsCreated: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "suggestions_created_total",
			Help:      "Date suggestions written by the matcher.",
		}),
		DateTransitions: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "date_transitions_total",
			Help:      "Recorded decisions by resulting status.",
		}, []string{"status"}),
		HTTPRequests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status code.",
		}, []string{"method", "route", "code"}),
		HTTPDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
}

// Handler serves the registry in the Prometheus text format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry exposes the underlying registry for tests
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// CycleDone counts a finished matcher cycle
func (m *Metrics) CycleDone(result string, created int) {
	if m == nil {
		return
	}
	m.MatcherCycles.WithLabelValues(result).Inc()
	if created > 0 {
		m.SuggestionsCreated.Add(float64(created))
	}
}

// Transitioned counts a written status change
func (m *Metrics) Transitioned(status string) {
	if m == nil {
		return
	}
	m.DateTransitions.WithLabelValues(status).Inc()
}
