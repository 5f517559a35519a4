package competition

import (
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/shopspring/decimal"

	"github.com/clearbid/driver-backend/internal/model"
)

// solveRequest is the auction as presented to a solver. Amounts and prices
// travel as decimal strings so no precision is lost in transit.
type solveRequest struct {
	AuctionID int64             `json:"auctionId"`
	Deadline  time.Time         `json:"deadline"`
	Orders    []solveOrder      `json:"orders"`
	Prices    map[string]string `json:"prices"`
}

type solveOrder struct {
	UID               string `json:"uid"`
	SellToken         string `json:"sellToken"`
	BuyToken          string `json:"buyToken"`
	SellAmount        string `json:"sellAmount"`
	BuyAmount         string `json:"buyAmount"`
	Kind              string `json:"kind"`
	PartiallyFillable bool   `json:"partiallyFillable"`
	ValidTo           int64  `json:"validTo"`
}

type solveResponse struct {
	Orders         []executedOrder   `json:"orders"`
	ClearingPrices map[string]string `json:"clearingPrices"`
	Score          string            `json:"score"`
	CallData       string            `json:"callData"`
}

type executedOrder struct {
	UID            string `json:"uid"`
	ExecutedAmount string `json:"executedAmount"`
}

func newSolveRequest(auction model.Auction) solveRequest {
	orders := make([]solveOrder, len(auction.Orders))
	for i, o := range auction.Orders {
		orders[i] = solveOrder{
			UID:               o.UID.String(),
			SellToken:         o.SellToken.Hex(),
			BuyToken:          o.BuyToken.Hex(),
			SellAmount:        o.SellAmount.String(),
			BuyAmount:         o.BuyAmount.String(),
			Kind:              string(o.Kind),
			PartiallyFillable: o.PartiallyFillable,
			ValidTo:           o.ValidTo,
		}
	}

	prices := make(map[string]string, len(auction.Prices))
	for token, price := range auction.Prices {
		prices[token.Hex()] = price.String()
	}

	return solveRequest{
		AuctionID: auction.ID,
		Deadline:  auction.Deadline,
		Orders:    orders,
		Prices:    prices,
	}
}

// toSolution decodes the wire response into the domain model. Decode failures
// are the solver's fault and disqualify the whole response.
func (r solveResponse) toSolution(solver string, auctionID int64, arrivedAt time.Time) (model.Solution, error) {
	score, err := decimal.NewFromString(r.Score)
	if err != nil {
		return model.Solution{}, fmt.Errorf("score %q: %w", r.Score, err)
	}

	callData, err := hexutil.Decode(r.CallData)
	if err != nil {
		return model.Solution{}, fmt.Errorf("call data: %w", err)
	}

	orders := make([]model.OrderExecution, len(r.Orders))
	for i, o := range r.Orders {
		uid, err := model.ParseOrderUID(o.UID)
		if err != nil {
			return model.Solution{}, fmt.Errorf("order %d: %w", i, err)
		}
		amount, ok := new(big.Int).SetString(o.ExecutedAmount, 10)
		if !ok {
			return model.Solution{}, fmt.Errorf("order %s: executed amount %q is not an integer", o.UID, o.ExecutedAmount)
		}
		orders[i] = model.OrderExecution{UID: uid, ExecutedAmount: amount}
	}

	prices := make(map[common.Address]*big.Int, len(r.ClearingPrices))
	for token, price := range r.ClearingPrices {
		if !common.IsHexAddress(token) {
			return model.Solution{}, fmt.Errorf("clearing price token %q is not an address", token)
		}
		value, ok := new(big.Int).SetString(price, 10)
		if !ok {
			return model.Solution{}, fmt.Errorf("clearing price for %s: %q is not an integer", token, price)
		}
		prices[common.HexToAddress(token)] = value
	}

	return model.Solution{
		Solver:         solver,
		AuctionID:      auctionID,
		Orders:         orders,
		ClearingPrices: prices,
		Score:          score,
		CallData:       callData,
		ArrivedAt:      arrivedAt,
	}, nil
}
