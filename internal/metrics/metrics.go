// Package metrics defines the Prometheus collectors exported by the service.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "hijri"

// Metrics holds every collector on its own registry.
type Metrics struct {
	registry *prometheus.Registry

	ParseFailures      prometheus.Counter
	ConversionFailures prometheus.Counter
	UsersRegistered    prometheus.Counter
	HTTPRequests       *prometheus.CounterVec
	HTTPDuration       *prometheus.HistogramVec
}

// New creates and registers the collectors. Go runtime and process
// collectors are included.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		ParseFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "parse_failures_total",
			Help:      "Birth date inputs rejected by the grammar.",
		}),
		ConversionFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "conversion_failures_total",
			Help:      "Hijri dates that could not be converted to Gregorian.",
		}),
		UsersRegistered: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "users_registered_total",
			Help:      "Users successfully persisted.",
		}),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method and route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.ParseFailures,
		m.ConversionFailures,
		m.UsersRegistered,
		m.HTTPRequests,
		m.HTTPDuration,
	)

	return m
}

// Registry returns the registry the collectors are registered on.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
