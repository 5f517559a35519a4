package model

import (
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
)

// ExecutionResult is the terminal report of the settlement execution engine
// for one auction. Every execution exits with exactly one result; the
// coordinator turns it into the auction's Outcome.
type ExecutionResult struct {
	AuctionID   int64
	Reason      OutcomeReason
	TxHash      *common.Hash
	BlockNumber *uint64
	Detail      string
}

// CompetitionEntry is one received solution recorded to the audit trail,
// including invalid ones.
type CompetitionEntry struct {
	AuctionID     int64
	Solver        string
	Score         decimal.Decimal
	OrderUIDs     []OrderUID
	InvalidReason string
	ArrivedAt     time.Time
}
