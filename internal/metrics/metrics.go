// Package metrics defines the Prometheus metrics for the intake portal. It
// is the single source of truth for metric names, labels, and help strings.
//
// Metrics use promauto, so they register with the default registry at
// package init; the server just mounts promhttp.Handler().
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "govjobs"

// SubmissionsTotal counts application submissions by outcome.
// Label:
//   - result: "accepted", or the failure kind ("invalid_submission",
//     "attachment_rejected", "payload_too_large", "job_not_found",
//     "storage_failure")
var SubmissionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "submissions_total",
		Help:      "Total number of application submissions, labelled by outcome.",
	},
	[]string{"result"},
)

// RegistrationsTotal counts account registrations by outcome.
// Label:
//   - result: "created", "duplicate_identity", "invalid"
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of registration attempts, labelled by outcome.",
	},
	[]string{"result"},
)

// HTTPRequestsTotal counts handled HTTP requests.
// Labels:
//   - method: HTTP method
//   - status: response status code
var HTTPRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests handled, labelled by method and status.",
	},
	[]string{"method", "status"},
)

// HTTPRequestDuration observes request latency in seconds.
var HTTPRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency in seconds, labelled by method.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"method"},
)
