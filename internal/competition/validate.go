package competition

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"

	"github.com/clearbid/driver-backend/internal/model"
)

// Validate classifies a decoded solution against its auction. It returns an
// empty string for a valid solution, or the reason that permanently
// disqualifies it from selection. Downstream code branches on the tag, never
// on raw payloads.
func Validate(auction model.Auction, solution model.Solution) string {
	if len(solution.Orders) == 0 {
		return "empty order set"
	}
	if len(solution.CallData) == 0 {
		return "empty settlement payload"
	}

	eligible := make(map[model.OrderUID]model.Order, len(auction.Orders))
	for _, o := range auction.Orders {
		eligible[o.UID] = o
	}

	seen := make(map[model.OrderUID]struct{}, len(solution.Orders))
	for _, executed := range solution.Orders {
		order, ok := eligible[executed.UID]
		if !ok {
			return fmt.Sprintf("order %s is not in the auction", executed.UID)
		}
		if _, dup := seen[executed.UID]; dup {
			return fmt.Sprintf("order %s settled twice", executed.UID)
		}
		seen[executed.UID] = struct{}{}

		if executed.ExecutedAmount == nil || executed.ExecutedAmount.Sign() <= 0 {
			return fmt.Sprintf("order %s has a non-positive executed amount", executed.UID)
		}

		for _, token := range []common.Address{order.SellToken, order.BuyToken} {
			price, ok := solution.ClearingPrices[token]
			if !ok || price == nil {
				return fmt.Sprintf("missing clearing price for token %s", token.Hex())
			}
			if price.Sign() <= 0 {
				return fmt.Sprintf("non-positive clearing price for token %s", token.Hex())
			}
		}
	}

	return ""
}
