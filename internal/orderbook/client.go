// Package orderbook provides the read-only order book snapshot client. The
// order intake system owns the orders; the driver only consumes a consistent
// point-in-time view of the settleable ones.
package orderbook

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/big"
	"net/http"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"go.uber.org/zap"

	"github.com/clearbid/driver-backend/internal/model"
)

const (
	auctionPath           = "/api/v1/auction"
	defaultRequestTimeout = 10 * time.Second
	maxResponseBytes      = 32 << 20
)

// Metrics records snapshot fetch activity.
type Metrics interface {
	ObserveSnapshot(err error, orders int, started time.Time)
}

// Client fetches order book snapshots over HTTP.
type Client struct {
	logger     *zap.Logger
	httpClient *http.Client
	baseURL    string
	metrics    Metrics
	now        func() time.Time
}

// NewClient builds a snapshot client for the order book service at baseURL.
func NewClient(baseURL string, metrics Metrics, logger *zap.Logger) *Client {
	return &Client{
		logger:     logger,
		httpClient: &http.Client{Timeout: defaultRequestTimeout},
		baseURL:    baseURL,
		metrics:    metrics,
		now:        time.Now,
	}
}

type wireSnapshot struct {
	Orders []wireOrder       `json:"orders"`
	Prices map[string]string `json:"prices"`
}

type wireOrder struct {
	UID               string `json:"uid"`
	Owner             string `json:"owner"`
	SellToken         string `json:"sellToken"`
	BuyToken          string `json:"buyToken"`
	SellAmount        string `json:"sellAmount"`
	BuyAmount         string `json:"buyAmount"`
	Kind              string `json:"kind"`
	PartiallyFillable bool   `json:"partiallyFillable"`
	ValidFrom         int64  `json:"validFrom"`
	ValidTo           int64  `json:"validTo"`
	Signature         string `json:"signature"`
}

// Snapshot returns the orders currently eligible for settlement plus the
// reference prices for the tokens they trade. Orders whose validity window
// does not cover the snapshot time, and duplicates by uid, are dropped
// defensively even though the order book should not serve them.
func (c *Client) Snapshot(ctx context.Context) (model.AuctionSnapshot, error) {
	started := c.now()
	snapshot, err := c.fetch(ctx)
	c.metrics.ObserveSnapshot(err, len(snapshot.Orders), started)
	if err != nil {
		return model.AuctionSnapshot{}, err
	}

	nowUnix := c.now().Unix()
	seen := make(map[model.OrderUID]struct{}, len(snapshot.Orders))
	eligible := snapshot.Orders[:0]
	for _, order := range snapshot.Orders {
		if !order.ValidAt(nowUnix) {
			c.logger.Warn("order book served an order outside its validity window",
				zap.String("order_uid", order.UID.String()))
			continue
		}
		if _, dup := seen[order.UID]; dup {
			c.logger.Warn("order book served a duplicate order",
				zap.String("order_uid", order.UID.String()))
			continue
		}
		seen[order.UID] = struct{}{}
		eligible = append(eligible, order)
	}
	snapshot.Orders = eligible
	return snapshot, nil
}

func (c *Client) fetch(ctx context.Context) (model.AuctionSnapshot, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+auctionPath, nil)
	if err != nil {
		return model.AuctionSnapshot{}, fmt.Errorf("build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return model.AuctionSnapshot{}, fmt.Errorf("fetch order book snapshot: %w", err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return model.AuctionSnapshot{}, fmt.Errorf("order book returned status %d", resp.StatusCode)
	}

	var wire wireSnapshot
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&wire); err != nil {
		return model.AuctionSnapshot{}, fmt.Errorf("decode order book snapshot: %w", err)
	}

	orders := make([]model.Order, 0, len(wire.Orders))
	for _, w := range wire.Orders {
		order, err := w.toOrder()
		if err != nil {
			return model.AuctionSnapshot{}, fmt.Errorf("order %s: %w", w.UID, err)
		}
		orders = append(orders, order)
	}

	prices := make(map[common.Address]*big.Int, len(wire.Prices))
	for token, price := range wire.Prices {
		if !common.IsHexAddress(token) {
			return model.AuctionSnapshot{}, fmt.Errorf("price token %q is not an address", token)
		}
		value, ok := new(big.Int).SetString(price, 10)
		if !ok {
			return model.AuctionSnapshot{}, fmt.Errorf("price for %s: %q is not an integer", token, price)
		}
		prices[common.HexToAddress(token)] = value
	}

	return model.AuctionSnapshot{Orders: orders, Prices: prices}, nil
}

func (w wireOrder) toOrder() (model.Order, error) {
	uid, err := model.ParseOrderUID(w.UID)
	if err != nil {
		return model.Order{}, err
	}
	sellAmount, ok := new(big.Int).SetString(w.SellAmount, 10)
	if !ok {
		return model.Order{}, fmt.Errorf("sell amount %q is not an integer", w.SellAmount)
	}
	buyAmount, ok := new(big.Int).SetString(w.BuyAmount, 10)
	if !ok {
		return model.Order{}, fmt.Errorf("buy amount %q is not an integer", w.BuyAmount)
	}
	signature, err := hexutil.Decode(w.Signature)
	if err != nil {
		return model.Order{}, fmt.Errorf("signature: %w", err)
	}

	kind := model.OrderKind(w.Kind)
	if kind != model.OrderKindSell && kind != model.OrderKindBuy {
		return model.Order{}, fmt.Errorf("unknown order kind %q", w.Kind)
	}

	return model.Order{
		UID:               uid,
		Owner:             common.HexToAddress(w.Owner),
		SellToken:         common.HexToAddress(w.SellToken),
		BuyToken:          common.HexToAddress(w.BuyToken),
		SellAmount:        sellAmount,
		BuyAmount:         buyAmount,
		Kind:              kind,
		PartiallyFillable: w.PartiallyFillable,
		ValidFrom:         w.ValidFrom,
		ValidTo:           w.ValidTo,
		Signature:         signature,
	}, nil
}
