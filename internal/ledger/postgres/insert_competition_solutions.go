package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/clearbid/driver-backend/internal/model"
	"github.com/jackc/pgx/v5"
)

// InsertCompetitionSolutions appends audit rows for received solutions,
// including invalid ones. The rows are observability data: the coordinator
// flushes them fire-and-forget through the batcher.
func (r *Repository) InsertCompetitionSolutions(ctx context.Context, entries []model.CompetitionEntry) (err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("insert_competition_solutions", err, start)
	}()

	if len(entries) == 0 {
		return nil
	}

	const query = `
INSERT INTO solver_competitions (auction_id, solver, score, order_uids, invalid_reason, arrived_at)
VALUES ($1, $2, $3::numeric, $4, $5, $6)`

	batch := &pgx.Batch{}
	for _, entry := range entries {
		uids := make([]string, 0, len(entry.OrderUIDs))
		for _, uid := range entry.OrderUIDs {
			uids = append(uids, uid.String())
		}
		batch.Queue(query,
			entry.AuctionID,
			entry.Solver,
			entry.Score.String(),
			uids,
			entry.InvalidReason,
			entry.ArrivedAt,
		)
	}

	results := r.db.SendBatch(ctx, batch)
	defer func() {
		if closeErr := results.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close batch: %w", closeErr)
		}
	}()

	for range entries {
		if _, err = results.Exec(); err != nil {
			return fmt.Errorf("insert competition solution: %w", err)
		}
	}
	return nil
}
