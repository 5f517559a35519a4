package postgres

import (
	"context"
	"fmt"
	"time"
)

// MarkOutcomeReorged downgrades a previously confirmed outcome whose
// transaction was evicted by a reorg. The original row is kept for audit; the
// stamp plus anomaly note make the downgrade visible and the orders
// re-eligible. Returns false when the outcome was already marked.
func (r *Repository) MarkOutcomeReorged(ctx context.Context, auctionID int64, anomaly string) (marked bool, err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("mark_outcome_reorged", err, start)
	}()

	const query = `
UPDATE outcomes
SET reorged_at = now(), anomaly = $2
WHERE auction_id = $1 AND reorged_at IS NULL`

	tag, err := r.db.Exec(ctx, query, auctionID, anomaly)
	if err != nil {
		return false, fmt.Errorf("mark outcome reorged: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}
