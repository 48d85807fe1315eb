// Package metrics defines the Prometheus collectors for the HTTP surface
// and exposes a handler for scraping.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus collectors for the search service.
type Metrics struct {
	SearchesTotal        *prometheus.CounterVec
	SearchDuration       prometheus.Histogram
	SearchResultsCount   prometheus.Histogram
	HistoryWriteFailures prometheus.Counter

	registry *prometheus.Registry
}

// New creates and registers the collectors on a private registry.
func New() *Metrics {
	m := &Metrics{
		SearchesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "campsearch_searches_total",
				Help: "Total search requests by outcome (ranked, listing, empty, bad_request).",
			},
			[]string{"outcome"},
		),
		SearchDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "campsearch_search_duration_seconds",
				Help:    "End-to-end analyze+search latency in seconds.",
				Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
			},
		),
		SearchResultsCount: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "campsearch_search_results_count",
				Help:    "Number of venue records returned per search.",
				Buckets: []float64{0, 1, 5, 10, 25, 50, 100},
			},
		),
		HistoryWriteFailures: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "campsearch_history_write_failures_total",
				Help: "Total failed best-effort history writes.",
			},
		),
		registry: prometheus.NewRegistry(),
	}

	m.registry.MustRegister(
		m.SearchesTotal,
		m.SearchDuration,
		m.SearchResultsCount,
		m.HistoryWriteFailures,
	)
	return m
}

// Handler returns the HTTP handler serving the /metrics scrape endpoint.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
