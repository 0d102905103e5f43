// Package metrics provides Prometheus metrics for PowerConnect.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	namespace = "powerconnect"
)

// HTTP metrics
var (
	// HTTPRequestsTotal counts HTTP requests by method, path, and status.
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// HTTPRequestDuration tracks HTTP request latency.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency in seconds",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path"},
	)

	// HTTPRequestsInFlight tracks concurrent HTTP requests.
	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_in_flight",
			Help:      "Number of HTTP requests currently being processed",
		},
	)
)

// Dashboard action metrics
var (
	// ActionsTotal counts simulated actions by name and result.
	ActionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "actions",
			Name:      "total",
			Help:      "Total dashboard actions",
		},
		[]string{"action", "result"}, // result: ok, cancelled, not_found, rate_limited
	)

	// ActionDuration tracks how long actions take end to end.
	ActionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "actions",
			Name:      "duration_seconds",
			Help:      "Dashboard action duration in seconds",
			Buckets:   []float64{.1, .5, 1, 1.5, 2, 5},
		},
		[]string{"action"},
	)
)

// Feeder map metrics
var (
	// FeederMapRendersTotal counts feeder map renders.
	FeederMapRendersTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "feedermap",
			Name:      "renders_total",
			Help:      "Total feeder map renders",
		},
	)

	// FeederMapClicksTotal counts map clicks by outcome.
	FeederMapClicksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "feedermap",
			Name:      "clicks_total",
			Help:      "Total feeder map clicks",
		},
		[]string{"result"}, // hit, miss
	)
)

// Sample data metrics
var (
	// SeedReloadsTotal counts seed file reloads.
	SeedReloadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "seed",
			Name:      "reloads_total",
			Help:      "Total seed data reloads",
		},
		[]string{"result"}, // success, failure
	)

	// OutagesActive tracks records currently in outage status.
	OutagesActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "seed",
			Name:      "outages_active",
			Help:      "Number of outage records with status outage",
		},
	)
)
