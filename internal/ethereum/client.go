// Package ethereum wraps the EVM node client with metrics and rate limiting.
package ethereum

import (
	"context"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"go.uber.org/ratelimit"
)

type (
	// RPCMetrics records metrics for node RPC calls.
	RPCMetrics interface {
		Observe(operation string, err error, started time.Time)
	}
)

// Client wraps ethclient with per-operation metrics and a request rate limit.
// The node is treated as at-least-once for reads and best-effort for writes:
// a submit may land on-chain even when its acknowledgment is lost, so the
// polling loop, not the submit call, is authoritative for status.
type Client struct {
	client     *ethclient.Client
	rpcMetrics RPCMetrics
	rl         ratelimit.Limiter
}

// Dial connects to the node and returns an instrumented client.
func Dial(rawURL string, rpcMetrics RPCMetrics, rps int) (*Client, error) {
	client, err := ethclient.Dial(rawURL)
	if err != nil {
		return nil, err
	}
	return NewClient(client, rpcMetrics, rps), nil
}

// NewClient constructs an instrumented client around an existing connection.
func NewClient(client *ethclient.Client, rpcMetrics RPCMetrics, rps int) *Client {
	return &Client{
		client:     client,
		rpcMetrics: rpcMetrics,
		rl:         ratelimit.New(rps),
	}
}

// Close tears down the underlying connection.
func (c *Client) Close() {
	c.client.Close()
}

// ChainID returns the chain id used for transaction signing.
func (c *Client) ChainID(ctx context.Context) (id *big.Int, err error) {
	started := time.Now()
	defer func() {
		c.rpcMetrics.Observe("chain_id", err, started)
	}()
	c.rl.Take()
	return c.client.ChainID(ctx)
}

// BlockNumber returns the latest block number.
func (c *Client) BlockNumber(ctx context.Context) (number uint64, err error) {
	started := time.Now()
	defer func() {
		c.rpcMetrics.Observe("block_number", err, started)
	}()
	c.rl.Take()
	return c.client.BlockNumber(ctx)
}

// BaseFee returns the latest block's base fee.
func (c *Client) BaseFee(ctx context.Context) (fee *big.Int, err error) {
	started := time.Now()
	defer func() {
		c.rpcMetrics.Observe("base_fee", err, started)
	}()
	c.rl.Take()
	header, err := c.client.HeaderByNumber(ctx, nil)
	if err != nil {
		return nil, err
	}
	return header.BaseFee, nil
}

// SuggestGasTipCap returns the node's suggested priority fee.
func (c *Client) SuggestGasTipCap(ctx context.Context) (tip *big.Int, err error) {
	started := time.Now()
	defer func() {
		c.rpcMetrics.Observe("suggest_gas_tip_cap", err, started)
	}()
	c.rl.Take()
	return c.client.SuggestGasTipCap(ctx)
}

// PendingNonceAt returns the next nonce of the account including pending txs.
func (c *Client) PendingNonceAt(ctx context.Context, account common.Address) (nonce uint64, err error) {
	started := time.Now()
	defer func() {
		c.rpcMetrics.Observe("pending_nonce_at", err, started)
	}()
	c.rl.Take()
	return c.client.PendingNonceAt(ctx, account)
}

// EstimateGas estimates the gas needed to execute the call against pending
// state. A failing estimate means the call would revert.
func (c *Client) EstimateGas(ctx context.Context, msg ethereum.CallMsg) (gas uint64, err error) {
	started := time.Now()
	defer func() {
		c.rpcMetrics.Observe("estimate_gas", err, started)
	}()
	c.rl.Take()
	return c.client.EstimateGas(ctx, msg)
}

// CallContract dry-runs the call against latest state without broadcasting.
func (c *Client) CallContract(ctx context.Context, msg ethereum.CallMsg) (ret []byte, err error) {
	started := time.Now()
	defer func() {
		c.rpcMetrics.Observe("call_contract", err, started)
	}()
	c.rl.Take()
	return c.client.CallContract(ctx, msg, nil)
}

// SendTransaction broadcasts a signed transaction.
func (c *Client) SendTransaction(ctx context.Context, tx *types.Transaction) (err error) {
	started := time.Now()
	defer func() {
		c.rpcMetrics.Observe("send_transaction", err, started)
	}()
	c.rl.Take()
	return c.client.SendTransaction(ctx, tx)
}

// TransactionReceipt returns the receipt of a mined transaction, or
// ethereum.NotFound while it is still pending or was evicted.
func (c *Client) TransactionReceipt(ctx context.Context, txHash common.Hash) (receipt *types.Receipt, err error) {
	started := time.Now()
	defer func() {
		c.rpcMetrics.Observe("transaction_receipt", err, started)
	}()
	c.rl.Take()
	return c.client.TransactionReceipt(ctx, txHash)
}
