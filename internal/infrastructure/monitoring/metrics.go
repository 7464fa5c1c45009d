// Package monitoring exposes the Prometheus metrics of the web frontend
package monitoring

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the frontend's Prometheus collectors
type Metrics struct {
	registry *prometheus.Registry

	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	RefreshTotal    *prometheus.CounterVec
}

// NewMetrics creates and registers the collectors on a private registry
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		RequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "mealmate",
			Subsystem: "web",
			Name:      "requests_total",
			Help:      "HTTP requests handled by the web frontend",
		}, []string{"method", "path", "status"}),
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "mealmate",
			Subsystem: "web",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "path"}),
		RefreshTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "mealmate",
			Subsystem: "sync",
			Name:      "refresh_total",
			Help:      "Cache refresh outcomes (applied or discarded as stale)",
		}, []string{"outcome"}),
	}

	registry.MustRegister(m.RequestsTotal, m.RequestDuration, m.RefreshTotal)
	return m
}

// Handler serves the metrics endpoint
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveRefresh counts one cache refresh outcome, "applied" or "discarded"
func (m *Metrics) ObserveRefresh(outcome string) {
	m.RefreshTotal.WithLabelValues(outcome).Inc()
}
