// Package metrics exposes the Prometheus collectors for registrations and HTTP traffic.
package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"meetupticket/internal/domain"
)

const namespace = "meetupticket"

// Metrics holds the collectors registered on its own registry.
type Metrics struct {
	registry      *prometheus.Registry
	registrations *prometheus.CounterVec
	requests      *prometheus.HistogramVec
}

// New creates the collectors and registers them, along with the Go and process
// collectors, on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		registrations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "registrations_total",
			Help:      "Registration attempts by outcome.",
		}, []string{"outcome"}),
		requests: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route pattern and status code.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}
	m.registry.MustRegister(
		m.registrations,
		m.requests,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// RecordOutcome implements domain.OutcomeRecorder.
func (m *Metrics) RecordOutcome(kind domain.OutcomeKind) {
	m.registrations.WithLabelValues(string(kind)).Inc()
}

// ObserveRequest records one served request. route should be the mux pattern,
// not the raw path, to keep label cardinality bounded.
func (m *Metrics) ObserveRequest(method, route string, status int, seconds float64) {
	m.requests.WithLabelValues(method, route, strconv.Itoa(status)).Observe(seconds)
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
