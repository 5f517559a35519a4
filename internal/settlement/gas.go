package settlement

import "math/big"

// Escalator computes replacement fee caps. All arithmetic is integer-only;
// every bump is a strict increase over the prior bid and never below the
// network's minimum replacement price.
type Escalator struct {
	// BumpPercent is the minimum percentage increase for a same-nonce
	// replacement. Must be at least the node's replacement floor.
	BumpPercent int64

	// BaseFeeHeadroom multiplies the current base fee when deriving the fee
	// cap, so the bid survives base-fee growth across a few blocks.
	BaseFeeHeadroom int64
}

// Initial derives the first bid from the current base fee and suggested tip.
func (e Escalator) Initial(baseFee, tip *big.Int) (feeCap, tipCap *big.Int) {
	tipCap = new(big.Int).Set(tip)
	feeCap = new(big.Int).Mul(baseFee, big.NewInt(e.BaseFeeHeadroom))
	feeCap.Add(feeCap, tipCap)
	return feeCap, tipCap
}

// Bump derives a replacement bid: at least BumpPercent over the prior caps
// and at least the headroom over the current base fee, whichever is higher.
func (e Escalator) Bump(prevFeeCap, prevTipCap, baseFee *big.Int) (feeCap, tipCap *big.Int) {
	tipCap = e.bumped(prevTipCap)

	feeCap = e.bumped(prevFeeCap)
	floor := new(big.Int).Mul(baseFee, big.NewInt(e.BaseFeeHeadroom))
	floor.Add(floor, tipCap)
	if feeCap.Cmp(floor) < 0 {
		feeCap = floor
	}
	return feeCap, tipCap
}

// bumped returns prev increased by BumpPercent, rounded up, and strictly
// greater than prev.
func (e Escalator) bumped(prev *big.Int) *big.Int {
	result := new(big.Int).Mul(prev, big.NewInt(100+e.BumpPercent))
	result.Add(result, big.NewInt(99))
	result.Div(result, big.NewInt(100))
	if result.Cmp(prev) <= 0 {
		result = new(big.Int).Add(prev, big.NewInt(1))
	}
	return result
}
