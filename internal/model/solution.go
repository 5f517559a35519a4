package model

import (
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
)

// OrderExecution is the executed amount a solution assigns to one order.
type OrderExecution struct {
	UID            OrderUID
	ExecutedAmount *big.Int
}

// Solution is one solver's proposed settlement for one auction. Solutions are
// comparable only within the same auction id.
type Solution struct {
	Solver    string
	AuctionID int64

	// Orders is the subset of the auction's eligible orders the solution
	// settles, with executed amounts.
	Orders []OrderExecution

	// ClearingPrices are the uniform prices the settlement executes at, for
	// every token traded by the settled orders.
	ClearingPrices map[common.Address]*big.Int

	// Score is the solver-reported objective: net surplus minus estimated
	// execution cost.
	Score decimal.Decimal

	// CallData is the opaque settlement payload, sufficient to build the
	// on-chain call. The driver never interprets it.
	CallData []byte

	// ArrivedAt is when the driver received the solution. Selection breaks
	// score ties by earliest arrival.
	ArrivedAt time.Time

	// InvalidReason is set by validation immediately after decoding. A
	// non-empty reason permanently disqualifies the solution from selection.
	InvalidReason string
}

// Valid reports whether the solution passed validation.
func (s Solution) Valid() bool {
	return s.InvalidReason == ""
}

// OrderUIDs returns the identifiers of the settled orders.
func (s Solution) OrderUIDs() []OrderUID {
	uids := make([]OrderUID, len(s.Orders))
	for i, o := range s.Orders {
		uids[i] = o.UID
	}
	return uids
}
