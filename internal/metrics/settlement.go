package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/clearbid/driver-backend/internal/model"
)

var (
	settlementBuildsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "clearbid",
		Subsystem: "settlement",
		Name:      "builds_total",
		Help:      "Count of settlement call builds.",
	}, []string{"status"})
	settlementBuildDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "clearbid",
		Subsystem: "settlement",
		Name:      "build_duration_seconds",
		Help:      "Duration of settlement call builds.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"status"})
	settlementSubmitsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "clearbid",
		Subsystem: "settlement",
		Name:      "submits_total",
		Help:      "Count of transaction broadcasts.",
	}, []string{"status"})
	settlementSubmitDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "clearbid",
		Subsystem: "settlement",
		Name:      "submit_duration_seconds",
		Help:      "Duration of transaction broadcasts.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"status"})
	settlementEscalationsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "clearbid",
		Subsystem: "settlement",
		Name:      "escalations_total",
		Help:      "Count of same-nonce gas escalations.",
	})
	settlementAttempts = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "clearbid",
		Subsystem: "settlement",
		Name:      "escalation_attempt",
		Help:      "Attempt number reached by escalations.",
		Buckets:   []float64{1, 2, 3, 4, 5, 6, 8, 10, 15, 20},
	})
	settlementExecutionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "clearbid",
		Subsystem: "settlement",
		Name:      "executions_total",
		Help:      "Count of terminal executions by reason.",
	}, []string{"reason"})
	settlementExecutionDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "clearbid",
		Subsystem: "settlement",
		Name:      "execution_duration_seconds",
		Help:      "Wall time from build start to terminal state.",
		Buckets:   []float64{1, 5, 10, 15, 30, 60, 90, 120, 150, 180, 300},
	}, []string{"reason"})
)

// Settlement tracks metrics for the execution engine.
type Settlement struct{}

// NewSettlement constructs a metrics collector for the execution engine.
func NewSettlement() *Settlement {
	return &Settlement{}
}

// ObserveBuild records duration and status of one build (gas estimation).
func (m Settlement) ObserveBuild(err error, started time.Time) {
	status := "success"
	if err != nil {
		status = "error"
	}

	settlementBuildsTotal.WithLabelValues(status).Inc()
	settlementBuildDuration.WithLabelValues(status).Observe(time.Since(started).Seconds())
}

// ObserveSubmit records duration and status of one broadcast.
func (m Settlement) ObserveSubmit(err error, started time.Time) {
	status := "success"
	if err != nil {
		status = "error"
	}

	settlementSubmitsTotal.WithLabelValues(status).Inc()
	settlementSubmitDuration.WithLabelValues(status).Observe(time.Since(started).Seconds())
}

// ObserveEscalation records one same-nonce replacement.
func (m Settlement) ObserveEscalation(_ int64, attempt int) {
	settlementEscalationsTotal.Inc()
	settlementAttempts.Observe(float64(attempt))
}

// ObserveExecution records one terminal execution.
func (m Settlement) ObserveExecution(reason model.OutcomeReason, started time.Time) {
	settlementExecutionsTotal.WithLabelValues(string(reason)).Inc()
	settlementExecutionDuration.WithLabelValues(string(reason)).Observe(time.Since(started).Seconds())
}
