package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	solverRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "clearbid",
		Subsystem: "solver_client",
		Name:      "requests_total",
		Help:      "Count of solve requests per solver.",
	}, []string{"solver", "status"})
	solverRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "clearbid",
		Subsystem: "solver_client",
		Name:      "request_duration_seconds",
		Help:      "Duration of solve requests per solver.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"solver", "status"})
	solverSolutionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "clearbid",
		Subsystem: "solver_client",
		Name:      "solutions_total",
		Help:      "Count of received solutions per solver and validity.",
	}, []string{"solver", "validity"})
)

// SolverClient tracks metrics for the solver competition.
type SolverClient struct{}

// NewSolverClient constructs a metrics collector for solver requests.
func NewSolverClient() *SolverClient {
	return &SolverClient{}
}

// ObserveSolverRequest records duration and status of one solve request.
func (m SolverClient) ObserveSolverRequest(solver string, err error, started time.Time) {
	status := "success"
	if err != nil {
		status = "error"
	}

	solverRequestsTotal.WithLabelValues(solver, status).Inc()
	solverRequestDuration.WithLabelValues(solver, status).Observe(time.Since(started).Seconds())
}

// ObserveSolution records one received solution and its validity.
func (m SolverClient) ObserveSolution(solver string, valid bool) {
	validity := "valid"
	if !valid {
		validity = "invalid"
	}

	solverSolutionsTotal.WithLabelValues(solver, validity).Inc()
}
