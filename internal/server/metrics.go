package server

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors of the feed service.
type Metrics struct {
	Requests        *prometheus.CounterVec   // labels: route, code
	RequestDuration *prometheus.HistogramVec // labels: route
	FeedItemsServed prometheus.Counter

	// Contractor geocoding.
	GeocodeRequests     *prometheus.CounterVec // labels: outcome={success,empty,error}
	ContractorsInserted prometheus.Counter
	GeocodeEnabled      prometheus.Gauge
}

// NewMetrics creates the collectors and registers them with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.Requests,
		m.RequestDuration,
		m.FeedItemsServed,
		m.GeocodeRequests,
		m.ContractorsInserted,
		m.GeocodeEnabled,
	)
	return m
}

// NewMetricsForTesting creates unregistered collectors so tests can build
// as many servers as they like.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		Requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "kayaglobe",
			Name:      "http_requests_total",
			Help:      "HTTP requests by route and status code.",
		}, []string{"route", "code"}),
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "kayaglobe",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   []float64{0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}, []string{"route"}),
		FeedItemsServed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "kayaglobe",
			Name:      "feed_items_served_total",
			Help:      "Feed items returned by /feed_items.",
		}),
		GeocodeRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "kayaglobe",
			Name:      "geocode_requests_total",
			Help:      "Contractor geocoding lookups by outcome.",
		}, []string{"outcome"}),
		ContractorsInserted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "kayaglobe",
			Name:      "contractors_inserted_total",
			Help:      "Geocoded contractors written to the store.",
		}),
		GeocodeEnabled: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "kayaglobe",
			Name:      "geocode_enabled",
			Help:      "1 when contractor geocoding is configured, 0 otherwise.",
		}),
	}
}
