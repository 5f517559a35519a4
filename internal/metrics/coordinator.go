package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/clearbid/driver-backend/internal/model"
)

var (
	cyclesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "clearbid",
		Subsystem: "coordinator",
		Name:      "cycles_total",
		Help:      "Count of auction cycles.",
	}, []string{"status"})
	cycleDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "clearbid",
		Subsystem: "coordinator",
		Name:      "cycle_duration_seconds",
		Help:      "Duration of auction cycles.",
		Buckets:   []float64{.1, .25, .5, 1, 2.5, 5, 10, 15, 30, 60, 120, 180, 300},
	}, []string{"status"})
	auctionOrders = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "clearbid",
		Subsystem: "coordinator",
		Name:      "auction_orders",
		Help:      "Number of eligible orders per dispatched auction.",
		Buckets:   prometheus.ExponentialBuckets(1, 2, 12),
	})
	lastAuctionID = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "clearbid",
		Subsystem: "coordinator",
		Name:      "last_auction_id",
		Help:      "Most recently dispatched auction id.",
	})
	outcomesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "clearbid",
		Subsystem: "coordinator",
		Name:      "outcomes_total",
		Help:      "Count of terminal auction outcomes by reason.",
	}, []string{"reason"})
	reorgsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "clearbid",
		Subsystem: "coordinator",
		Name:      "reorgs_total",
		Help:      "Count of confirmed settlements evicted by a reorg.",
	})
)

// Coordinator tracks metrics for the auction cycle.
type Coordinator struct{}

// NewCoordinator constructs a metrics collector for the coordinator.
func NewCoordinator() *Coordinator {
	return &Coordinator{}
}

// ObserveCycle records duration and status of one auction cycle.
func (m Coordinator) ObserveCycle(err error, started time.Time) {
	status := "success"
	if err != nil {
		status = "error"
	}

	cyclesTotal.WithLabelValues(status).Inc()
	cycleDuration.WithLabelValues(status).Observe(time.Since(started).Seconds())
}

// ObserveAuction records one dispatched auction.
func (m Coordinator) ObserveAuction(auctionID int64, orders int) {
	lastAuctionID.Set(float64(auctionID))
	auctionOrders.Observe(float64(orders))
}

// ObserveOutcome records one terminal outcome.
func (m Coordinator) ObserveOutcome(reason model.OutcomeReason) {
	outcomesTotal.WithLabelValues(string(reason)).Inc()
}

// ObserveReorg records one reorg downgrade.
func (m Coordinator) ObserveReorg(int64) {
	reorgsTotal.Inc()
}
