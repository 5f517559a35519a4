// Package settlement contains the execution engine that turns a winning
// solution into a confirmed on-chain transaction under gas-price and deadline
// pressure.
package settlement

import (
	"context"
	"math/big"
	"time"

	"github.com/clearbid/driver-backend/internal/model"
	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// NodeClient is the chain access the engine needs. Reads are
	// at-least-once, writes best-effort: the receipt poll, not the submit
	// acknowledgment, is authoritative.
	NodeClient interface {
		BlockNumber(ctx context.Context) (uint64, error)
		BaseFee(ctx context.Context) (*big.Int, error)
		SuggestGasTipCap(ctx context.Context) (*big.Int, error)
		PendingNonceAt(ctx context.Context, account common.Address) (uint64, error)
		EstimateGas(ctx context.Context, msg ethereum.CallMsg) (uint64, error)
		CallContract(ctx context.Context, msg ethereum.CallMsg) ([]byte, error)
		SendTransaction(ctx context.Context, tx *types.Transaction) error
		TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error)
	}

	// AttemptStore persists every state-machine transition so a restart can
	// resume an in-flight attempt chain instead of losing track of it.
	AttemptStore interface {
		SaveSettlementTransaction(ctx context.Context, tx model.SettlementTransaction) error
		LiveSettlementTransactions(ctx context.Context) ([]model.SettlementTransaction, error)
	}

	// Metrics records engine activity.
	Metrics interface {
		ObserveBuild(err error, started time.Time)
		ObserveSubmit(err error, started time.Time)
		ObserveEscalation(auctionID int64, attempt int)
		ObserveExecution(reason model.OutcomeReason, started time.Time)
	}
)
