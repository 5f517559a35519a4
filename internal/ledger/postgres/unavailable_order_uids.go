package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/clearbid/driver-backend/internal/model"
)

// UnavailableOrderUIDs returns the orders that must be excluded from the next
// snapshot: settled by a confirmed non-reorged outcome, or offered by an
// auction whose settlement is still in flight (no outcome, deadline not yet
// passed).
func (r *Repository) UnavailableOrderUIDs(ctx context.Context) (uids map[model.OrderUID]struct{}, err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("unavailable_order_uids", err, start)
	}()

	const query = `
SELECT DISTINCT uid
FROM (
	SELECT unnest(order_uids) AS uid
	FROM outcomes
	WHERE reason = 'confirmed' AND reorged_at IS NULL
	UNION ALL
	SELECT unnest(a.order_uids) AS uid
	FROM auctions a
	LEFT JOIN outcomes o ON o.auction_id = a.id
	WHERE o.auction_id IS NULL AND a.deadline > now()
) candidates`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query unavailable orders: %w", err)
	}
	defer rows.Close()

	uids = make(map[model.OrderUID]struct{})
	for rows.Next() {
		var raw string
		if err = rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("scan order uid: %w", err)
		}
		uid, parseErr := model.ParseOrderUID(raw)
		if parseErr != nil {
			err = fmt.Errorf("parse order uid %q: %w", raw, parseErr)
			return nil, err
		}
		uids[uid] = struct{}{}
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate unavailable orders: %w", err)
	}
	return uids, nil
}
