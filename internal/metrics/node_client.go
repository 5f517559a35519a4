package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	nodeRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "clearbid",
		Subsystem: "node_client",
		Name:      "operations_total",
		Help:      "Count of chain node RPC operations.",
	}, []string{"operation", "status"})
	nodeRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "clearbid",
		Subsystem: "node_client",
		Name:      "operation_duration_seconds",
		Help:      "Duration of chain node RPC operations.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"operation", "status"})
)

// NodeClient tracks metrics for RPC calls to the chain node.
type NodeClient struct{}

// NewNodeClient constructs a metrics collector for node RPC calls.
func NewNodeClient() *NodeClient {
	return &NodeClient{}
}

// Observe records duration and status of one RPC call.
func (m NodeClient) Observe(operation string, err error, started time.Time) {
	status := "success"
	if err != nil {
		status = "error"
	}

	nodeRequestsTotal.WithLabelValues(operation, status).Inc()
	nodeRequestDuration.WithLabelValues(operation, status).Observe(time.Since(started).Seconds())
}
