package model

import (
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
)

// AuctionSnapshot is the order book's point-in-time view: the settleable
// orders plus external reference prices for the tokens they trade.
type AuctionSnapshot struct {
	Orders []Order
	Prices map[common.Address]*big.Int
}

// Auction is one round's bundle of eligible orders plus a settlement
// deadline. It is immutable after creation and superseded, never mutated, by
// the next auction.
type Auction struct {
	// ID is strictly increasing and allocated by the ledger before the
	// auction is dispatched to any solver. A crash between allocation and
	// dispatch burns the id.
	ID int64

	// RunID identifies one driver run. It is not unique across restarts and
	// only used for log correlation.
	RunID uuid.UUID

	// Orders eligible for settlement at snapshot time, unique by UID.
	Orders []Order

	// Prices are external reference prices, in the native token, for every
	// token traded by the eligible orders.
	Prices map[common.Address]*big.Int

	// Deadline is the hard limit by which a settlement for this auction must
	// either land on-chain or be abandoned.
	Deadline time.Time
}

// OrderUIDs returns the identifiers of the eligible orders.
func (a Auction) OrderUIDs() []OrderUID {
	uids := make([]OrderUID, len(a.Orders))
	for i, o := range a.Orders {
		uids[i] = o.UID
	}
	return uids
}

// ContainsOrder reports whether the auction's eligible set includes uid.
func (a Auction) ContainsOrder(uid OrderUID) bool {
	for _, o := range a.Orders {
		if o.UID == uid {
			return true
		}
	}
	return false
}
