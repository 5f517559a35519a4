package coordinator

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/clearbid/driver-backend/internal/clock"
	"github.com/clearbid/driver-backend/internal/model"
	"github.com/clearbid/driver-backend/pkg/batcher"
)

const (
	auditBatchSize     = 64
	auditFlushInterval = 5 * time.Second
	auditFlushRPS      = 1
)

// Config holds the coordinator's policy knobs. Zero values fall back to
// defaults.
type Config struct {
	AuctionInterval    time.Duration
	CompetitionTimeout time.Duration
	SettlementBudget   time.Duration
	ErrorBackoff       time.Duration
	ReorgWindow        uint64
}

func (c Config) withDefaults() Config {
	if c.AuctionInterval == 0 {
		c.AuctionInterval = defaultAuctionInterval
	}
	if c.CompetitionTimeout == 0 {
		c.CompetitionTimeout = defaultCompetitionTimeout
	}
	if c.SettlementBudget == 0 {
		c.SettlementBudget = defaultSettlementBudget
	}
	if c.ErrorBackoff == 0 {
		c.ErrorBackoff = defaultErrorBackoff
	}
	if c.ReorgWindow == 0 {
		c.ReorgWindow = defaultReorgWindow
	}
	return c
}

// Service owns the auction and solution lifecycles. Cycles are serialized:
// the next auction starts only after the previous settlement reached a
// terminal state, because the settlement account's nonce serializes execution
// anyway.
type Service struct {
	logger      *zap.Logger
	orders      SnapshotProvider
	ledger      Ledger
	competition Competition
	executor    Executor
	node        ReceiptSource
	metrics     Metrics
	runID       uuid.UUID
	cfg         Config

	audit   *batcher.Batcher[model.CompetitionEntry]
	trigger chan struct{}
	sleep   func(context.Context, time.Duration) error
	now     func() time.Time
}

// NewService wires a coordinator.
func NewService(
	orders SnapshotProvider,
	ledger Ledger,
	competition Competition,
	executor Executor,
	node ReceiptSource,
	metrics Metrics,
	cfg Config,
	logger *zap.Logger,
) *Service {
	runID := uuid.New()
	return &Service{
		logger:      logger.With(zap.String("run_id", runID.String())),
		orders:      orders,
		ledger:      ledger,
		competition: competition,
		executor:    executor,
		node:        node,
		metrics:     metrics,
		runID:       runID,
		cfg:         cfg.withDefaults(),
		audit: batcher.New[model.CompetitionEntry](
			logger.Named("competitionAudit"),
			ledger.InsertCompetitionSolutions,
			auditBatchSize,
			auditFlushInterval,
			auditFlushRPS,
		),
		trigger: make(chan struct{}, 1),
		sleep:   clock.SleepWithContext,
		now:     time.Now,
	}
}

// Trigger requests an early cycle. It never blocks; a trigger arriving while
// a cycle runs coalesces into one follow-up cycle.
func (s *Service) Trigger() {
	select {
	case s.trigger <- struct{}{}:
	default:
	}
}

// Run resumes any settlement attempt left in flight by a previous process,
// then drives auction cycles until the context is canceled. Failed cycles
// back off and retry; they are never fatal.
func (s *Service) Run(ctx context.Context) error {
	s.audit.Start(ctx)
	defer s.audit.Stop()

	if err := s.resume(ctx); err != nil {
		return err
	}

	for {
		started := s.now()
		err := s.runCycle(ctx)
		s.metrics.ObserveCycle(err, started)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			s.logger.Error("auction cycle failed", zap.Error(err))
			if err := s.sleep(ctx, s.cfg.ErrorBackoff); err != nil {
				return err
			}
			continue
		}

		timer := time.NewTimer(s.cfg.AuctionInterval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-s.trigger:
			timer.Stop()
		case <-timer.C:
		}
	}
}

// resume finishes the settlement attempt the last process left pending, so
// its auction gets a terminal outcome before any new auction is built.
func (s *Service) resume(ctx context.Context) error {
	result, err := s.executor.Resume(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("resume in-flight settlement: %w", err)
	}
	if result == nil {
		return nil
	}

	outcome := model.Outcome{
		AuctionID:   result.AuctionID,
		Reason:      result.Reason,
		TxHash:      result.TxHash,
		BlockNumber: result.BlockNumber,
		Detail:      result.Detail,
	}
	return s.record(ctx, outcome)
}

// runCycle performs one auction round. Only storage failures escalate:
// proceeding without a durable record risks double execution. Everything else
// is logged and retried at the next tick.
func (s *Service) runCycle(ctx context.Context) error {
	if err := s.reconcileReorgs(ctx); err != nil {
		return err
	}

	snapshot, err := s.orders.Snapshot(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		s.logger.Warn("order book snapshot unavailable", zap.Error(err))
		return nil
	}

	unavailable, err := s.ledger.UnavailableOrderUIDs(ctx)
	if err != nil {
		return fmt.Errorf("load unavailable orders: %w", err)
	}

	eligible := make([]model.Order, 0, len(snapshot.Orders))
	for _, order := range snapshot.Orders {
		if _, taken := unavailable[order.UID]; taken {
			continue
		}
		eligible = append(eligible, order)
	}
	if len(eligible) == 0 {
		s.logger.Info("no eligible orders, skipping auction")
		return nil
	}

	auction := model.Auction{
		RunID:    s.runID,
		Orders:   eligible,
		Prices:   snapshot.Prices,
		Deadline: s.now().Add(s.cfg.SettlementBudget),
	}
	auction.ID, err = s.ledger.CreateAuction(ctx, auction)
	if err != nil {
		return fmt.Errorf("create auction: %w", err)
	}
	s.metrics.ObserveAuction(auction.ID, len(eligible))

	logger := s.logger.With(zap.Int64("auction_id", auction.ID))
	logger.Info("auction dispatched",
		zap.Int("orders", len(eligible)),
		zap.Time("deadline", auction.Deadline),
	)

	var solutions []model.Solution
	for solution := range s.competition.Compete(ctx, auction, s.cfg.CompetitionTimeout) {
		solutions = append(solutions, solution)
		if err := s.audit.Add(ctx, competitionEntry(auction.ID, solution)); err != nil {
			logger.Warn("competition audit entry dropped", zap.Error(err))
		}
	}

	winner := selectWinner(solutions)
	if winner == nil {
		logger.Info("no valid solution received", zap.Int("solutions", len(solutions)))
		return s.record(ctx, model.Outcome{
			AuctionID: auction.ID,
			Reason:    model.OutcomeNoWinner,
			OrderUIDs: auction.OrderUIDs(),
		})
	}

	logger.Info("winner selected",
		zap.String("solver", winner.Solver),
		zap.String("score", winner.Score.String()),
		zap.Int("orders", len(winner.Orders)),
	)

	result, err := s.executor.Execute(ctx, auction, *winner)
	if err != nil {
		// Shutdown mid-execution: the persisted attempt is resumed on the
		// next start, which also writes the outcome.
		return err
	}

	return s.record(ctx, model.Outcome{
		AuctionID:     auction.ID,
		Reason:        result.Reason,
		WinningSolver: winner.Solver,
		OrderUIDs:     winner.OrderUIDs(),
		TxHash:        result.TxHash,
		BlockNumber:   result.BlockNumber,
		Detail:        result.Detail,
	})
}

// record writes the terminal outcome. A duplicate write is a programming
// error and escalates loudly instead of being swallowed.
func (s *Service) record(ctx context.Context, outcome model.Outcome) error {
	if err := s.ledger.RecordOutcome(ctx, outcome); err != nil {
		return fmt.Errorf("record outcome: %w", err)
	}
	s.metrics.ObserveOutcome(outcome.Reason)
	return nil
}

func competitionEntry(auctionID int64, solution model.Solution) model.CompetitionEntry {
	return model.CompetitionEntry{
		AuctionID:     auctionID,
		Solver:        solution.Solver,
		Score:         solution.Score,
		OrderUIDs:     solution.OrderUIDs(),
		InvalidReason: solution.InvalidReason,
		ArrivedAt:     solution.ArrivedAt,
	}
}
