// Package metrics provides Prometheus metrics for the babyshop API.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestsTotal tracks handled requests by route and status
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "babyshop",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests by method, route and status",
		},
		[]string{"method", "route", "status_code"},
	)

	// HTTPRequestDuration tracks request duration in seconds
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "babyshop",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"method", "route"},
	)

	// EntityChangesTotal tracks created, updated and deleted entities
	EntityChangesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "babyshop",
			Subsystem: "entities",
			Name:      "changes_total",
			Help:      "Total number of entity changes by entity and change type",
		},
		[]string{"entity", "type"},
	)

	// EventPublishFailures tracks entity events that could not be published
	EventPublishFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "babyshop",
			Subsystem: "events",
			Name:      "publish_failures_total",
			Help:      "Total number of entity events that failed to publish",
		},
		[]string{"entity"},
	)

	// DBOpenConnections tracks open database connections
	DBOpenConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "babyshop",
			Subsystem: "db",
			Name:      "open_connections",
			Help:      "Number of open database connections",
		},
	)
)

// RecordEntityChange increments the change counter of entity
func RecordEntityChange(entity, changeType string) {
	EntityChangesTotal.WithLabelValues(entity, changeType).Inc()
}

// RecordPublishFailure increments the failed event counter of entity
func RecordPublishFailure(entity string) {
	EventPublishFailures.WithLabelValues(entity).Inc()
}

// RecordDBOpenConnections sets the open connection gauge
func RecordDBOpenConnections(open int) {
	DBOpenConnections.Set(float64(open))
}
