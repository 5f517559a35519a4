package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/clearbid/driver-backend/internal/model"
)

// IsSettled reports whether the order was settled by a confirmed, non-reorged
// outcome.
func (r *Repository) IsSettled(ctx context.Context, uid model.OrderUID) (settled bool, err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("is_settled", err, start)
	}()

	const query = `
SELECT EXISTS (
	SELECT 1
	FROM outcomes
	WHERE reason = 'confirmed'
	  AND reorged_at IS NULL
	  AND $1 = ANY(order_uids)
)`

	if err = r.db.QueryRow(ctx, query, uid.String()).Scan(&settled); err != nil {
		return false, fmt.Errorf("query order settled: %w", err)
	}
	return settled, nil
}
