// Package metrics holds the Prometheus collectors for the compatibility engine.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels.
const (
	OutcomeSuccess    = "success"
	OutcomeValidation = "validation_error"
	OutcomeNotFound   = "not_found"
	OutcomeError      = "error"
)

var (
	ScoringRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "compatibility_requests_total",
			Help: "Total number of scoring requests by operation and outcome",
		},
		[]string{"operation", "outcome"},
	)

	ScoringDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "compatibility_request_duration_seconds",
			Help:    "Duration of scoring requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	RowsScanned = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "compatibility_population_rows_scanned",
			Help:    "Interest rows read per population scan",
			Buckets: prometheus.ExponentialBuckets(100, 4, 8),
		},
	)

	CandidatesScored = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "compatibility_candidates_scored",
			Help:    "Candidates with at least one qualifying shared item per population scan",
			Buckets: prometheus.ExponentialBuckets(1, 4, 8),
		},
	)

	CacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "compatibility_cache_lookups_total",
			Help: "Profile and preference cache lookups by kind and result",
		},
		[]string{"kind", "result"},
	)
)
