// Package observability wires tracing and metrics for the palace backend.
// This file declares the Prometheus collectors for the generation pipeline:
// gateway call outcomes and orchestrator attempt results. HTTP-level metrics
// live in the middleware package; these collectors cover the work behind the
// POST /gems endpoint where most of the cost and failure modes are.
package observability

import "github.com/prometheus/client_golang/prometheus"

var (
	// GatewayRequests counts gateway calls by outcome: ok, rate_limited,
	// quota, transient, empty.
	GatewayRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gateway_requests_total",
			Help: "Total generation gateway calls by outcome.",
		},
		[]string{"outcome"},
	)

	// GatewayDuration records gateway round-trip time in seconds.
	GatewayDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "gateway_request_duration_seconds",
			Help:    "Duration of generation gateway calls in seconds.",
			Buckets: []float64{0.25, 0.5, 1, 2, 5, 10, 20, 30},
		},
	)

	// GenerationAttempts counts orchestrator attempt results: accepted,
	// duplicate, malformed, transient, empty.
	GenerationAttempts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "generation_attempts_total",
			Help: "Generation attempts by result.",
		},
		[]string{"template", "result"},
	)

	// GenerationOutcomes counts terminal request outcomes: accepted,
	// exhausted, aborted, quota_rejected.
	GenerationOutcomes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "generation_requests_total",
			Help: "Generation requests by terminal outcome.",
		},
		[]string{"template", "outcome"},
	)
)

func init() {
	prometheus.MustRegister(GatewayRequests, GatewayDuration, GenerationAttempts, GenerationOutcomes)
}
