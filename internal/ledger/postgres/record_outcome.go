package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/clearbid/driver-backend/internal/model"
)

// RecordOutcome appends the terminal record for one auction. The write is
// idempotent on auction_id only in the sense that a second write is rejected
// with ErrDuplicateOutcome; it is never overwritten.
func (r *Repository) RecordOutcome(ctx context.Context, outcome model.Outcome) (err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("record_outcome", err, start)
	}()

	const query = `
INSERT INTO outcomes (auction_id, reason, winning_solver, order_uids, tx_hash, block_number, detail)
VALUES ($1, $2, $3, $4, $5, $6, $7)`

	uids := make([]string, 0, len(outcome.OrderUIDs))
	for _, uid := range outcome.OrderUIDs {
		uids = append(uids, uid.String())
	}

	var txHash *string
	if outcome.TxHash != nil {
		h := outcome.TxHash.Hex()
		txHash = &h
	}
	var blockNumber *int64
	if outcome.BlockNumber != nil {
		n := int64(*outcome.BlockNumber)
		blockNumber = &n
	}

	if _, err = r.db.Exec(ctx, query,
		outcome.AuctionID,
		string(outcome.Reason),
		outcome.WinningSolver,
		uids,
		txHash,
		blockNumber,
		outcome.Detail,
	); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("auction %d: %w", outcome.AuctionID, ErrDuplicateOutcome)
		}
		return fmt.Errorf("insert outcome: %w", err)
	}
	return nil
}
