package coordinator

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	ethnode "github.com/clearbid/driver-backend/internal/ethereum"
)

// reconcileReorgs re-verifies recently confirmed outcomes against the chain.
// A confirmed settlement whose receipt has vanished was evicted by a reorg:
// the outcome is downgraded with an anomaly note and its orders become
// eligible again. The original record is kept for audit, never overwritten.
//
// Chain unavailability only skips the check until the next cycle; ledger
// failures escalate like every other storage error.
func (s *Service) reconcileReorgs(ctx context.Context) error {
	head, err := s.node.BlockNumber(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		s.logger.Warn("reorg check skipped, chain head unavailable", zap.Error(err))
		return nil
	}

	var minBlock uint64
	if head > s.cfg.ReorgWindow {
		minBlock = head - s.cfg.ReorgWindow
	}

	outcomes, err := s.ledger.RecentConfirmedOutcomes(ctx, minBlock)
	if err != nil {
		return fmt.Errorf("load recent confirmed outcomes: %w", err)
	}

	for _, outcome := range outcomes {
		if outcome.TxHash == nil {
			continue
		}

		_, err := s.node.TransactionReceipt(ctx, *outcome.TxHash)
		if err == nil {
			continue
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if !ethnode.IsNotFound(err) {
			s.logger.Warn("receipt re-verification failed",
				zap.Int64("auction_id", outcome.AuctionID),
				zap.Error(err),
			)
			continue
		}

		anomaly := fmt.Sprintf("receipt %s missing at block %d", outcome.TxHash.Hex(), head)
		marked, err := s.ledger.MarkOutcomeReorged(ctx, outcome.AuctionID, anomaly)
		if err != nil {
			return fmt.Errorf("mark outcome reorged: %w", err)
		}
		if marked {
			s.metrics.ObserveReorg(outcome.AuctionID)
			s.logger.Error("confirmed settlement evicted by reorg",
				zap.Int64("auction_id", outcome.AuctionID),
				zap.String("tx_hash", outcome.TxHash.Hex()),
				zap.Uint64("head", head),
			)
		}
	}
	return nil
}
