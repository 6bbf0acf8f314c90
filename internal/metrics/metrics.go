package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HttpRequestsTotal counts handled requests by route template, method and status.
	HttpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of http requests handled by the service.",
		},
		[]string{"path", "method", "code"},
	)

	HttpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Latency of http requests handled by the service.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"path", "method"},
	)

	// JobOperationsTotal counts catalog operations by outcome
	// (ok, validation_error, not_found, storage_error).
	JobOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "job_operations_total",
			Help: "Total number of job catalog operations by outcome.",
		},
		[]string{"operation", "outcome"},
	)
)
