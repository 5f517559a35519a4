// Package metrics contains the prometheus collectors for the driver. Emission
// is fire-and-forget: a failing sink never affects pipeline correctness.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	postgresRepositoryRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "clearbid",
		Subsystem: "postgres_repository",
		Name:      "operations_total",
		Help:      "Count of ledger repository operations.",
	}, []string{"operation", "status"})
	postgresRepositoryRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "clearbid",
		Subsystem: "postgres_repository",
		Name:      "operation_duration_seconds",
		Help:      "Duration of ledger repository operations.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"operation", "status"})
)

// PostgresRepository tracks metrics for ledger repository operations.
type PostgresRepository struct{}

// NewPostgresRepository creates a PostgresRepository metrics collector.
func NewPostgresRepository() *PostgresRepository {
	return &PostgresRepository{}
}

// Observe records duration and status of a repository operation.
func (m PostgresRepository) Observe(operation string, err error, started time.Time) {
	status := "success"
	if err != nil {
		status = "error"
	}

	postgresRepositoryRequestsTotal.WithLabelValues(operation, status).Inc()
	postgresRepositoryRequestDuration.WithLabelValues(operation, status).Observe(time.Since(started).Seconds())
}
