// Package model defines domain models for the auction-to-settlement pipeline.
package model

import (
	"encoding/hex"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// OrderKind distinguishes sell orders from buy orders.
type OrderKind string

var (
	// OrderKindSell fixes the sell amount, the buy amount is a lower bound.
	OrderKindSell OrderKind = "sell"
	// OrderKindBuy fixes the buy amount, the sell amount is an upper bound.
	OrderKindBuy OrderKind = "buy"
)

// OrderUIDLength is the byte length of an order identifier
// (32 bytes digest, 20 bytes owner, 4 bytes validity).
const OrderUIDLength = 56

// OrderUID uniquely identifies an order across the whole system.
type OrderUID [OrderUIDLength]byte

// ParseOrderUID decodes a 0x-prefixed hex order identifier.
func ParseOrderUID(s string) (OrderUID, error) {
	var uid OrderUID
	trimmed := strings.TrimPrefix(s, "0x")
	raw, err := hex.DecodeString(trimmed)
	if err != nil {
		return uid, fmt.Errorf("decode order uid: %w", err)
	}
	if len(raw) != OrderUIDLength {
		return uid, fmt.Errorf("order uid must be %d bytes, got %d", OrderUIDLength, len(raw))
	}
	copy(uid[:], raw)
	return uid, nil
}

// String returns the 0x-prefixed hex encoding of the identifier.
func (u OrderUID) String() string {
	return "0x" + hex.EncodeToString(u[:])
}

// MarshalText implements encoding.TextMarshaler.
func (u OrderUID) MarshalText() ([]byte, error) {
	return []byte(u.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (u *OrderUID) UnmarshalText(text []byte) error {
	parsed, err := ParseOrderUID(string(text))
	if err != nil {
		return err
	}
	*u = parsed
	return nil
}

// Order is an off-chain trade intent eligible for settlement. Orders are
// created and mutated by the order intake system; the driver treats them as
// read-only input.
type Order struct {
	UID               OrderUID
	Owner             common.Address
	SellToken         common.Address
	BuyToken          common.Address
	SellAmount        *big.Int
	BuyAmount         *big.Int
	Kind              OrderKind
	PartiallyFillable bool
	ValidFrom         int64
	ValidTo           int64
	Signature         []byte
}

// ValidAt reports whether the order's validity window covers the given unix
// timestamp.
func (o Order) ValidAt(unix int64) bool {
	return o.ValidFrom <= unix && unix <= o.ValidTo
}
