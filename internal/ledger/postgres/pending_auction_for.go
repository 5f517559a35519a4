package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/clearbid/driver-backend/internal/model"
	"github.com/jackc/pgx/v5"
)

// PendingAuctionFor returns the id of the newest auction that offered the
// order and has no outcome yet, or nil when the order is not in flight.
func (r *Repository) PendingAuctionFor(ctx context.Context, uid model.OrderUID) (auctionID *int64, err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("pending_auction_for", err, start)
	}()

	const query = `
SELECT a.id
FROM auctions a
LEFT JOIN outcomes o ON o.auction_id = a.id
WHERE o.auction_id IS NULL
  AND $1 = ANY(a.order_uids)
ORDER BY a.id DESC
LIMIT 1`

	var id int64
	if err = r.db.QueryRow(ctx, query, uid.String()).Scan(&id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			err = nil
			return nil, nil
		}
		return nil, fmt.Errorf("query pending auction: %w", err)
	}
	return &id, nil
}
