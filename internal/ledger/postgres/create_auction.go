package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/clearbid/driver-backend/internal/model"
)

// CreateAuction persists the auction and allocates its strictly increasing
// id. The id is burned once allocated: a crash between allocation and solver
// dispatch must not reuse it, so persistence happens before any dispatch.
func (r *Repository) CreateAuction(ctx context.Context, auction model.Auction) (id int64, err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("create_auction", err, start)
	}()

	const query = `
INSERT INTO auctions (run_id, deadline, order_uids, prices)
VALUES ($1::uuid, $2, $3, $4)
RETURNING id`

	uids := make([]string, 0, len(auction.Orders))
	for _, o := range auction.Orders {
		uids = append(uids, o.UID.String())
	}

	prices := make(map[string]string, len(auction.Prices))
	for token, price := range auction.Prices {
		prices[token.Hex()] = price.String()
	}
	pricesJSON, err := json.Marshal(prices)
	if err != nil {
		return 0, fmt.Errorf("marshal reference prices: %w", err)
	}

	if err = r.db.QueryRow(ctx, query, auction.RunID.String(), auction.Deadline, uids, pricesJSON).Scan(&id); err != nil {
		return 0, fmt.Errorf("insert auction: %w", err)
	}
	return id, nil
}
