// Package metrics exposes the service's Prometheus collectors.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Search Metrics
	SearchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pantrymatch_search_duration_seconds",
			Help:    "Duration of recipe searches in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"outcome"}, // "ok", "unavailable", "invalid"
	)

	SearchPoolSize = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "pantrymatch_search_pool_size",
			Help:    "Number of candidate recipes scored per search",
			Buckets: []float64{0, 10, 25, 50, 100, 150, 200},
		},
	)

	SearchResults = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "pantrymatch_search_results",
			Help:    "Number of recipes returned per search",
			Buckets: []float64{0, 1, 2, 3, 5, 10, 20},
		},
	)

	SearchMinimumMissed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "pantrymatch_search_minimum_missed_total",
			Help: "Searches that returned fewer recipes than requested",
		},
	)

	PoolFetchErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "pantrymatch_pool_fetch_errors_total",
			Help: "Failed candidate pool fetches",
		},
	)

	RecipesScored = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "pantrymatch_recipes_scored_total",
			Help: "Total number of recipes run through the scoring engine",
		},
	)

	// Recipe Generation Metrics
	LLMRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pantrymatch_llm_requests_total",
			Help: "Requests to the recipe generation service",
		},
		[]string{"operation", "outcome"}, // operation: "generate", "adapt"
	)

	LLMRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pantrymatch_llm_request_duration_seconds",
			Help:    "Duration of recipe generation calls in seconds",
			Buckets: []float64{0.5, 1, 2.5, 5, 10, 20, 30, 60},
		},
		[]string{"operation"},
	)

	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "pantrymatch_circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	// API Metrics
	RateLimited = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pantrymatch_rate_limited_total",
			Help: "Requests rejected by the rate limiter",
		},
		[]string{"limiter"},
	)
)

// RecordSearch records the outcome of one search.
func RecordSearch(outcome string, duration time.Duration, poolSize, results int, minimumMet bool) {
	SearchDuration.WithLabelValues(outcome).Observe(duration.Seconds())
	if outcome != "ok" {
		return
	}
	SearchPoolSize.Observe(float64(poolSize))
	SearchResults.Observe(float64(results))
	RecipesScored.Add(float64(poolSize))
	if !minimumMet {
		SearchMinimumMissed.Inc()
	}
}

// RecordLLMRequest records one call to the generation service.
func RecordLLMRequest(operation string, duration time.Duration, err error) {
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	LLMRequests.WithLabelValues(operation, outcome).Inc()
	LLMRequestDuration.WithLabelValues(operation).Observe(duration.Seconds())
}
