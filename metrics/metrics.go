// Package metrics exposes Prometheus counters for the page and the mock API.
package metrics

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the collectors on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	pageRendersTotal    prometheus.Counter
	pageRenderErrors    prometheus.Counter
	mockAPIRequestTotal *prometheus.CounterVec
}

// New creates and registers all collectors.
func New() (*Metrics, error) {
	m := &Metrics{registry: prometheus.NewRegistry()}

	m.pageRendersTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "page_renders_total",
		Help: "Total number of rendered page documents",
	})
	m.pageRenderErrors = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "page_render_errors_total",
		Help: "Total number of page renders that failed to serialise",
	})
	m.mockAPIRequestTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mock_api_requests_total",
			Help: "Total number of requests answered by the mock API",
		},
		[]string{"method", "route", "status"},
	)

	for _, c := range []prometheus.Collector{m.pageRendersTotal, m.pageRenderErrors, m.mockAPIRequestTotal} {
		if err := m.registry.Register(c); err != nil {
			return nil, fmt.Errorf("failed to register collector: %w", err)
		}
	}

	return m, nil
}

// RecordPageRender counts one page render.
func (m *Metrics) RecordPageRender(err error) {
	if m == nil {
		return
	}
	if err != nil {
		m.pageRenderErrors.Inc()
		return
	}
	m.pageRendersTotal.Inc()
}

// RecordMockAPIRequest counts one mock API response. route is the matched
// route pattern, not the raw path.
func (m *Metrics) RecordMockAPIRequest(method, route string, status int) {
	if m == nil {
		return
	}
	m.mockAPIRequestTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
