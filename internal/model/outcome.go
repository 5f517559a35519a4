package model

import (
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// OutcomeReason is the terminal classification of an auction.
type OutcomeReason string

var (
	// OutcomeConfirmed means the winning settlement reached the required
	// confirmation depth.
	OutcomeConfirmed OutcomeReason = "confirmed"
	// OutcomeNoWinner means no valid solution was received in time.
	OutcomeNoWinner OutcomeReason = "no_winner"
	// OutcomeBuildFailed means the winning payload referenced stale state;
	// no chain action was taken.
	OutcomeBuildFailed OutcomeReason = "build_failed"
	// OutcomeSimulationReverted means the dry run reverted; no gas spent.
	OutcomeSimulationReverted OutcomeReason = "simulation_reverted"
	// OutcomeBroadcastFailed means the network rejected the transaction past
	// the retry cap.
	OutcomeBroadcastFailed OutcomeReason = "broadcast_failed"
	// OutcomeExecutionReverted means the settlement transaction was mined but
	// reverted on-chain. The nonce is consumed and gas was spent, yet no trade
	// executed; the orders stay eligible for a later auction.
	OutcomeExecutionReverted OutcomeReason = "execution_reverted"
	// OutcomeDeadlineExpired means the auction deadline passed while the
	// transaction was still pending and the nonce was freed by cancellation.
	OutcomeDeadlineExpired OutcomeReason = "deadline_expired"
)

// Outcome is the terminal, append-only record for one auction. A second write
// for the same auction id is a programming error and is rejected by the
// ledger, never silently overwritten.
type Outcome struct {
	AuctionID     int64
	Reason        OutcomeReason
	WinningSolver string
	OrderUIDs     []OrderUID
	TxHash        *common.Hash
	BlockNumber   *uint64
	Detail        string
	RecordedAt    time.Time

	// ReorgedAt is set when a later cycle detects the confirmed transaction
	// was evicted by a reorg. The original record is kept for audit; the
	// stamp downgrades it and makes the orders re-eligible.
	ReorgedAt *time.Time
	Anomaly   string
}

// Settled reports whether the outcome still counts as an on-chain settlement.
func (o Outcome) Settled() bool {
	return o.Reason == OutcomeConfirmed && o.ReorgedAt == nil
}
