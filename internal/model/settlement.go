package model

import (
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// SettlementStatus describes where a settlement attempt is in the transaction
// state machine.
type SettlementStatus string

var (
	// SettlementBuilding marks an attempt whose call is being constructed.
	SettlementBuilding SettlementStatus = "building"
	// SettlementSimulated marks an attempt that passed the dry run.
	SettlementSimulated SettlementStatus = "simulated"
	// SettlementSubmitted marks an attempt broadcast to the network.
	SettlementSubmitted SettlementStatus = "submitted"
	// SettlementPending marks an attempt awaiting inclusion or confirmations.
	SettlementPending SettlementStatus = "pending"
	// SettlementConfirmed is the terminal success state.
	SettlementConfirmed SettlementStatus = "confirmed"
	// SettlementFailed is the terminal failure state.
	SettlementFailed SettlementStatus = "failed"
	// SettlementSuperseded marks an attempt replaced by a gas bump at the
	// same nonce. The auction-level state stays pending.
	SettlementSuperseded SettlementStatus = "superseded"
)

// SettlementTransaction is one attempt to land a winning solution on-chain.
// Exactly one live attempt may exist per auction; replacements reuse the
// nonce and supersede, never duplicate, the attempt in flight.
type SettlementTransaction struct {
	AuctionID int64
	Attempt   int
	Nonce     uint64
	GasFeeCap *big.Int
	GasTipCap *big.Int
	Hash      common.Hash
	Status    SettlementStatus
	Deadline  time.Time

	// Cancellation marks a zero-value self-transfer that only frees the
	// nonce. A restart must not mistake its receipt for a settled auction.
	Cancellation bool
}
