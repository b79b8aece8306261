// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests by backend, method and response status",
		},
		[]string{"backend", "method", "status"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "Duration of API requests in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2, 3, 5, 10, 30},
		},
		[]string{"backend", "method"},
	)

	APIUnauthorizedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "api_unauthorized_total",
			Help: "Number of responses that cleared the session with a 401",
		},
	)

	ActionsInFlight = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "view_actions_in_flight",
			Help: "Number of view actions awaiting a response",
		},
		[]string{"action"},
	)

	ActionsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "view_actions_failed_total",
			Help: "Total number of view actions that ended with an error",
		},
		[]string{"action", "error_code"},
	)

	SimulatorRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "simulator_requests_total",
			Help: "Requests served by the simulated backend by operation and outcome",
		},
		[]string{"operation", "outcome"},
	)
)
