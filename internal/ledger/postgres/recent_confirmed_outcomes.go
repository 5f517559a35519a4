package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/clearbid/driver-backend/internal/model"
	"github.com/clearbid/driver-backend/pkg/safe"
	"github.com/ethereum/go-ethereum/common"
)

// RecentConfirmedOutcomes returns confirmed, non-reorged outcomes included at
// or above minBlock. The reconciler re-verifies their receipts against the
// chain to detect reorgs.
func (r *Repository) RecentConfirmedOutcomes(ctx context.Context, minBlock uint64) (outcomes []model.Outcome, err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("recent_confirmed_outcomes", err, start)
	}()

	const query = `
SELECT auction_id, winning_solver, order_uids, tx_hash, block_number, recorded_at
FROM outcomes
WHERE reason = 'confirmed'
  AND reorged_at IS NULL
  AND block_number >= $1
ORDER BY auction_id`

	minBlockArg, err := safe.Int64(minBlock)
	if err != nil {
		return nil, fmt.Errorf("min block out of range: %w", err)
	}

	rows, err := r.db.Query(ctx, query, minBlockArg)
	if err != nil {
		return nil, fmt.Errorf("query confirmed outcomes: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			outcome     model.Outcome
			rawUIDs     []string
			txHash      string
			blockNumber int64
		)
		if err = rows.Scan(
			&outcome.AuctionID,
			&outcome.WinningSolver,
			&rawUIDs,
			&txHash,
			&blockNumber,
			&outcome.RecordedAt,
		); err != nil {
			return nil, fmt.Errorf("scan confirmed outcome: %w", err)
		}

		outcome.Reason = model.OutcomeConfirmed
		hash := common.HexToHash(txHash)
		outcome.TxHash = &hash
		block, convErr := safe.Uint64(blockNumber)
		if convErr != nil {
			err = fmt.Errorf("block number of auction %d: %w", outcome.AuctionID, convErr)
			return nil, err
		}
		outcome.BlockNumber = &block

		for _, raw := range rawUIDs {
			uid, parseErr := model.ParseOrderUID(raw)
			if parseErr != nil {
				err = fmt.Errorf("parse order uid %q: %w", raw, parseErr)
				return nil, err
			}
			outcome.OrderUIDs = append(outcome.OrderUIDs, uid)
		}

		outcomes = append(outcomes, outcome)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate confirmed outcomes: %w", err)
	}
	return outcomes, nil
}
