package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/clearbid/driver-backend/internal/model"
	"github.com/clearbid/driver-backend/pkg/safe"
	"github.com/ethereum/go-ethereum/common"
	"github.com/jackc/pgx/v5"
)

// OutcomeByAuction returns the terminal record for one auction, or nil when
// the auction has no outcome yet.
func (r *Repository) OutcomeByAuction(ctx context.Context, auctionID int64) (outcome *model.Outcome, err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("outcome_by_auction", err, start)
	}()

	const query = `
SELECT auction_id, reason, winning_solver, order_uids, tx_hash, block_number, detail, recorded_at, reorged_at, anomaly
FROM outcomes
WHERE auction_id = $1`

	var (
		result      model.Outcome
		reason      string
		rawUIDs     []string
		txHash      *string
		blockNumber *int64
		anomaly     *string
	)
	if err = r.db.QueryRow(ctx, query, auctionID).Scan(
		&result.AuctionID,
		&reason,
		&result.WinningSolver,
		&rawUIDs,
		&txHash,
		&blockNumber,
		&result.Detail,
		&result.RecordedAt,
		&result.ReorgedAt,
		&anomaly,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			err = nil
			return nil, nil
		}
		return nil, fmt.Errorf("query outcome: %w", err)
	}

	result.Reason = model.OutcomeReason(reason)
	if txHash != nil {
		hash := common.HexToHash(*txHash)
		result.TxHash = &hash
	}
	if blockNumber != nil {
		block, convErr := safe.Uint64(*blockNumber)
		if convErr != nil {
			err = fmt.Errorf("block number of auction %d: %w", auctionID, convErr)
			return nil, err
		}
		result.BlockNumber = &block
	}
	if anomaly != nil {
		result.Anomaly = *anomaly
	}
	for _, raw := range rawUIDs {
		uid, parseErr := model.ParseOrderUID(raw)
		if parseErr != nil {
			err = fmt.Errorf("parse order uid %q: %w", raw, parseErr)
			return nil, err
		}
		result.OrderUIDs = append(result.OrderUIDs, uid)
	}
	return &result, nil
}
