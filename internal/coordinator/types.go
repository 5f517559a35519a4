// Package coordinator drives the periodic auction cycle: snapshot the order
// book, run the solver competition, select a winner, hand it to the execution
// engine, and record the outcome.
package coordinator

import (
	"context"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"github.com/clearbid/driver-backend/internal/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// SnapshotProvider serves the point-in-time view of settleable orders and
	// reference prices.
	SnapshotProvider interface {
		Snapshot(ctx context.Context) (model.AuctionSnapshot, error)
	}

	// Ledger is the durable record the coordinator reads and writes. It is
	// the single source of truth for "has this auction already settled".
	Ledger interface {
		CreateAuction(ctx context.Context, auction model.Auction) (int64, error)
		RecordOutcome(ctx context.Context, outcome model.Outcome) error
		UnavailableOrderUIDs(ctx context.Context) (map[model.OrderUID]struct{}, error)
		InsertCompetitionSolutions(ctx context.Context, entries []model.CompetitionEntry) error
		RecentConfirmedOutcomes(ctx context.Context, minBlock uint64) ([]model.Outcome, error)
		MarkOutcomeReorged(ctx context.Context, auctionID int64, anomaly string) (bool, error)
	}

	// Competition fans an auction out to the solvers and streams solutions
	// back in arrival order.
	Competition interface {
		Compete(ctx context.Context, auction model.Auction, timeout time.Duration) <-chan model.Solution
	}

	// Executor lands the winning solution on-chain.
	Executor interface {
		Execute(ctx context.Context, auction model.Auction, solution model.Solution) (model.ExecutionResult, error)
		Resume(ctx context.Context) (*model.ExecutionResult, error)
	}

	// ReceiptSource is the chain access reorg reconciliation needs.
	ReceiptSource interface {
		BlockNumber(ctx context.Context) (uint64, error)
		TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error)
	}

	// Metrics records coordinator activity.
	Metrics interface {
		ObserveCycle(err error, started time.Time)
		ObserveAuction(auctionID int64, orders int)
		ObserveOutcome(reason model.OutcomeReason)
		ObserveReorg(auctionID int64)
	}
)
