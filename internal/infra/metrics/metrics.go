// Package metrics owns the prometheus registry of the service.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"authsvc/internal/domain/service"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "authsvc"

// Metrics groups the collectors recorded by the HTTP layer and the
// authentication service. A private registry keeps the global one clean.
type Metrics struct {
	registry        *prometheus.Registry
	httpRequests    *prometheus.CounterVec
	httpDuration    *prometheus.HistogramVec
	authEventsTotal *prometheus.CounterVec
}

func New() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	m := &Metrics{
		registry: registry,
		httpRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests by method, route and status",
			},
			[]string{"method", "route", "status"},
		),
		httpDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request latency by method and route",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		authEventsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "auth_events_total",
				Help:      "Registrations and logins by outcome",
			},
			[]string{"event", "outcome"},
		),
	}

	registry.MustRegister(m.httpRequests, m.httpDuration, m.authEventsTotal)

	return m
}

// NewAuthEventRecorder exposes Metrics through the domain interface.
func NewAuthEventRecorder(m *Metrics) service.AuthEventRecorder {
	return m
}

func (m *Metrics) RecordAuthEvent(event service.AuthEvent, outcome service.AuthOutcome) {
	m.authEventsTotal.WithLabelValues(string(event), string(outcome)).Inc()
}

// ObserveHTTP records one finished request. route is the registered path
// pattern, not the raw URL, to bound label cardinality.
func (m *Metrics) ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// Handler serves the registry in the prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry is exposed for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
