package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/clearbid/driver-backend/internal/model"
	"github.com/shopspring/decimal"
)

// CompetitionByAuction returns the audit trail of solutions received for one
// auction, in arrival order.
func (r *Repository) CompetitionByAuction(ctx context.Context, auctionID int64) (entries []model.CompetitionEntry, err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("competition_by_auction", err, start)
	}()

	const query = `
SELECT auction_id, solver, score::text, order_uids, invalid_reason, arrived_at
FROM solver_competitions
WHERE auction_id = $1
ORDER BY arrived_at`

	rows, err := r.db.Query(ctx, query, auctionID)
	if err != nil {
		return nil, fmt.Errorf("query solver competitions: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			entry    model.CompetitionEntry
			rawScore string
			rawUIDs  []string
		)
		if err = rows.Scan(
			&entry.AuctionID,
			&entry.Solver,
			&rawScore,
			&rawUIDs,
			&entry.InvalidReason,
			&entry.ArrivedAt,
		); err != nil {
			return nil, fmt.Errorf("scan solver competition: %w", err)
		}

		entry.Score, err = decimal.NewFromString(rawScore)
		if err != nil {
			return nil, fmt.Errorf("parse score %q: %w", rawScore, err)
		}
		for _, raw := range rawUIDs {
			uid, parseErr := model.ParseOrderUID(raw)
			if parseErr != nil {
				err = fmt.Errorf("parse order uid %q: %w", raw, parseErr)
				return nil, err
			}
			entry.OrderUIDs = append(entry.OrderUIDs, uid)
		}
		entries = append(entries, entry)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate solver competitions: %w", err)
	}
	return entries, nil
}
