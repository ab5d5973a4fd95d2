package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// UpstreamRequests tracks successful career API calls per path
	UpstreamRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "careerd_upstream_requests_total",
			Help: "Total number of successful upstream API calls",
		},
		[]string{"path"},
	)

	// UpstreamErrors tracks failed career API calls per path and reason
	UpstreamErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "careerd_upstream_errors_total",
			Help: "Total number of failed upstream API calls",
		},
		[]string{"path", "reason"},
	)

	// UpstreamLatency tracks career API call latency
	UpstreamLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "careerd_upstream_latency_seconds",
			Help:    "Upstream API call latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"path"},
	)

	// FallbacksServed tracks fixture-served responses per resource
	FallbacksServed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "careerd_fallbacks_served_total",
			Help: "Total number of responses served from fixture data",
		},
		[]string{"resource"},
	)

	// CircuitOpens tracks how often the backend was marked unavailable
	CircuitOpens = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "careerd_circuit_opens_total",
			Help: "Total number of circuit openings",
		},
	)

	// CircuitOpen is 1 while the backend is marked unavailable
	CircuitOpen = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "careerd_circuit_open",
			Help: "Whether the backend is currently marked unavailable",
		},
	)
)
