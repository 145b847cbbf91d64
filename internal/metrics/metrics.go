// Welmap - Welfare Benefits Recommendation Platform
// Copyright 2026 Welmap Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/welmap/welmap

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP API metrics.
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "welmap_api_requests_total",
			Help: "Total number of HTTP API requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "welmap_api_request_duration_seconds",
			Help:    "Duration of HTTP API requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "welmap_api_active_requests",
			Help: "Number of HTTP API requests currently in flight",
		},
	)

	// Database metrics.
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "welmap_db_query_duration_seconds",
			Help:    "Duration of DuckDB queries in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation", "table"},
	)

	DBQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "welmap_db_query_errors_total",
			Help: "Total number of DuckDB query errors",
		},
		[]string{"operation", "table"},
	)

	// Welfare data ingestion metrics, labeled by provider
	// (central_ministry, local_gov, private_org).
	SyncDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "welmap_sync_duration_seconds",
			Help:    "Duration of provider sync runs in seconds",
			Buckets: []float64{1, 5, 15, 30, 60, 120, 300, 600, 1800},
		},
		[]string{"provider"},
	)

	SyncRecordsFetched = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "welmap_sync_records_fetched_total",
			Help: "Total number of welfare records fetched from providers",
		},
		[]string{"provider"},
	)

	SyncRecordsUpserted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "welmap_sync_records_upserted_total",
			Help: "Total number of welfare records written to the catalog",
		},
		[]string{"provider"},
	)

	SyncErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "welmap_sync_errors_total",
			Help: "Total number of failed provider sync runs",
		},
		[]string{"provider"},
	)

	SyncLastSuccess = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "welmap_sync_last_success_timestamp_seconds",
			Help: "Unix timestamp of the last successful sync per provider",
		},
		[]string{"provider"},
	)

	// Circuit breaker metrics for outbound provider calls.
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "welmap_circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "welmap_circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)

	// Recommendation engine metrics.
	RecommendDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "welmap_recommend_duration_seconds",
			Help:    "Duration of recommendation computations in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	RecommendResultCount = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "welmap_recommend_result_count",
			Help:    "Number of recommendations returned per survey",
			Buckets: []float64{0, 1, 2, 3, 5, 8, 10},
		},
	)

	SurveysSubmitted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "welmap_surveys_submitted_total",
			Help: "Total number of surveys submitted",
		},
	)
)

// RecordAPIRequest records an API request metric.
func RecordAPIRequest(method, endpoint, status string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, status).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// RecordDBQuery records a database query metric.
func RecordDBQuery(operation, table string, duration time.Duration, err error) {
	DBQueryDuration.WithLabelValues(operation, table).Observe(duration.Seconds())
	if err != nil {
		DBQueryErrors.WithLabelValues(operation, table).Inc()
	}
}

// RecordProviderSync records the outcome of one provider sync run.
func RecordProviderSync(provider string, duration time.Duration, fetched, upserted int, err error) {
	SyncDuration.WithLabelValues(provider).Observe(duration.Seconds())
	SyncRecordsFetched.WithLabelValues(provider).Add(float64(fetched))
	SyncRecordsUpserted.WithLabelValues(provider).Add(float64(upserted))
	if err != nil {
		SyncErrors.WithLabelValues(provider).Inc()
		return
	}
	SyncLastSuccess.WithLabelValues(provider).Set(float64(time.Now().Unix()))
}

// RecordRecommendation records one recommendation computation.
func RecordRecommendation(duration time.Duration, resultCount int) {
	RecommendDuration.Observe(duration.Seconds())
	RecommendResultCount.Observe(float64(resultCount))
}

// TrackActiveRequest tracks in-flight API requests.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}
