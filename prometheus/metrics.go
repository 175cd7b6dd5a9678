package prometheus

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"menu-service/pkg/config"
)

var (
	// HTTP request metrics
	HttpRequestsTotal   prometheus.CounterVec
	HttpRequestDuration prometheus.HistogramVec

	// Authentication metrics
	AuthErrorsCounter prometheus.Counter

	// Catalog operation metrics
	EntityOperationsCounter prometheus.CounterVec

	// Reorder batch metrics
	ReorderBatchesCounter prometheus.CounterVec

	// Database operation metrics
	DbOperationDuration prometheus.HistogramVec

	initialized bool
)

// InitMetrics initializes Prometheus metrics with configuration
func InitMetrics(config *config.Config) {
	if initialized {
		return
	}
	initialized = true

	prefix := config.Metrics.Prefix

	HttpRequestsTotal = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HttpRequestDuration = *promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    prefix + "_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	AuthErrorsCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_auth_errors_total",
			Help: "Total number of authentication errors",
		},
	)

	EntityOperationsCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_entity_operations_total",
			Help: "Total number of catalog entity operations",
		},
		[]string{"entity", "operation"},
	)

	ReorderBatchesCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_reorder_batches_total",
			Help: "Total number of reorder batches by outcome",
		},
		[]string{"entity", "outcome"},
	)

	DbOperationDuration = *promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    prefix + "_db_operation_duration_seconds",
			Help:    "Duration of database operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation_type"},
	)
}

// TrackDBOperation returns a function that records the duration of a database operation
func TrackDBOperation(operationType string) func(startTime time.Time) {
	return func(startTime time.Time) {
		if !initialized {
			return
		}
		duration := time.Since(startTime).Seconds()
		DbOperationDuration.WithLabelValues(operationType).Observe(duration)
	}
}

// RecordAuthError increments the counter for failed authentications
func RecordAuthError() {
	if !initialized {
		return
	}
	AuthErrorsCounter.Inc()
}

// RecordEntityOperation increments the counter for catalog operations
func RecordEntityOperation(entity, operation string) {
	if !initialized {
		return
	}
	EntityOperationsCounter.WithLabelValues(entity, operation).Inc()
}

// RecordReorderBatch increments the counter for reorder batches
func RecordReorderBatch(entity, outcome string) {
	if !initialized {
		return
	}
	ReorderBatchesCounter.WithLabelValues(entity, outcome).Inc()
}
