// Package metrics holds the Prometheus collectors of the service.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "route", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"method", "route"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of in-flight API requests",
		},
	)

	ArchivesStored = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "archives_stored_total",
			Help: "Archives accepted and written to the storage root",
		},
	)

	ArchiveBytesStored = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "archive_bytes_stored_total",
			Help: "Bytes written to the storage root",
		},
	)

	ArchivesEvicted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "archives_evicted_total",
			Help: "Archives deleted by retention",
		},
	)

	EvictionFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "archive_eviction_failures_total",
			Help: "Archives retention failed to delete",
		},
	)

	AnalysesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "analyses_total",
			Help: "Analysis requests by outcome (full, header_only, not_found, decode_error, analysis_error)",
		},
		[]string{"outcome"},
	)
)

// RecordAPIRequest records one finished request.
func RecordAPIRequest(method, route, status string, d time.Duration) {
	APIRequestsTotal.WithLabelValues(method, route, status).Inc()
	APIRequestDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

// TrackActiveRequest moves the in-flight gauge.
func TrackActiveRequest(start bool) {
	if start {
		APIActiveRequests.Inc()
		return
	}
	APIActiveRequests.Dec()
}
