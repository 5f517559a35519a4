package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	snapshotsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "clearbid",
		Subsystem: "orderbook_client",
		Name:      "snapshots_total",
		Help:      "Count of order book snapshot fetches.",
	}, []string{"status"})
	snapshotDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "clearbid",
		Subsystem: "orderbook_client",
		Name:      "snapshot_duration_seconds",
		Help:      "Duration of order book snapshot fetches.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"status"})
	snapshotOrders = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "clearbid",
		Subsystem: "orderbook_client",
		Name:      "snapshot_orders",
		Help:      "Number of orders served per snapshot.",
		Buckets:   prometheus.ExponentialBuckets(1, 2, 12),
	})
)

// OrderbookClient tracks metrics for order book snapshot fetches.
type OrderbookClient struct{}

// NewOrderbookClient constructs a metrics collector for snapshot fetches.
func NewOrderbookClient() *OrderbookClient {
	return &OrderbookClient{}
}

// ObserveSnapshot records duration, status, and size of one snapshot fetch.
func (m OrderbookClient) ObserveSnapshot(err error, orders int, started time.Time) {
	status := "success"
	if err != nil {
		status = "error"
	}

	snapshotsTotal.WithLabelValues(status).Inc()
	snapshotDuration.WithLabelValues(status).Observe(time.Since(started).Seconds())
	if err == nil {
		snapshotOrders.Observe(float64(orders))
	}
}
