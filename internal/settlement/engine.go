package settlement

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/clearbid/driver-backend/internal/clock"
	ethnode "github.com/clearbid/driver-backend/internal/ethereum"
	"github.com/clearbid/driver-backend/internal/model"
	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"go.uber.org/zap"
)

// Config holds the engine's policy knobs. Zero values fall back to defaults.
type Config struct {
	GasBumpPercent       int64
	BaseFeeHeadroom      int64
	EscalationInterval   time.Duration
	PollInterval         time.Duration
	Confirmations        uint64
	MaxBroadcastAttempts int
	BroadcastBackoff     time.Duration
}

func (c Config) withDefaults() Config {
	if c.GasBumpPercent == 0 {
		c.GasBumpPercent = defaultGasBumpPercent
	}
	if c.BaseFeeHeadroom == 0 {
		c.BaseFeeHeadroom = defaultBaseFeeHeadroom
	}
	if c.EscalationInterval == 0 {
		c.EscalationInterval = defaultEscalationInterval
	}
	if c.PollInterval == 0 {
		c.PollInterval = defaultPollInterval
	}
	if c.Confirmations == 0 {
		c.Confirmations = defaultConfirmations
	}
	if c.MaxBroadcastAttempts == 0 {
		c.MaxBroadcastAttempts = defaultMaxBroadcastAttempts
	}
	if c.BroadcastBackoff == 0 {
		c.BroadcastBackoff = defaultBroadcastBackoff
	}
	return c
}

// Engine executes winning solutions on-chain. It owns the settlement
// account's nonce and the lifecycle of every SettlementTransaction.
type Engine struct {
	logger    *zap.Logger
	node      NodeClient
	store     AttemptStore
	metrics   Metrics
	key       *ecdsa.PrivateKey
	account   common.Address
	chainID   *big.Int
	contract  common.Address
	nonces    *NonceOwner
	escalator Escalator
	cfg       Config
	sleep     func(context.Context, time.Duration) error
	now       func() time.Time
}

// NewEngine builds an Engine with dependencies.
func NewEngine(
	node NodeClient,
	store AttemptStore,
	metrics Metrics,
	key *ecdsa.PrivateKey,
	chainID *big.Int,
	contract common.Address,
	cfg Config,
	logger *zap.Logger,
) (*Engine, error) {
	if node == nil {
		return nil, errors.New("node client is required")
	}
	if store == nil {
		return nil, errors.New("attempt store is required")
	}
	if metrics == nil {
		return nil, errors.New("engine metrics is required")
	}
	if key == nil {
		return nil, errors.New("settlement key is required")
	}
	if chainID == nil {
		return nil, errors.New("chain id is required")
	}

	cfg = cfg.withDefaults()
	account := crypto.PubkeyToAddress(key.PublicKey)

	return &Engine{
		logger:    logger.With(zap.String("account", account.Hex())),
		node:      node,
		store:     store,
		metrics:   metrics,
		key:       key,
		account:   account,
		chainID:   chainID,
		contract:  contract,
		nonces:    NewNonceOwner(node, account),
		escalator: Escalator{BumpPercent: cfg.GasBumpPercent, BaseFeeHeadroom: cfg.BaseFeeHeadroom},
		cfg:       cfg,
		sleep:     clock.SleepWithContext,
		now:       time.Now,
	}, nil
}

// execution tracks one auction's attempt chain. All attempts share a single
// nonce; replacements supersede, never duplicate, the attempt in flight.
type execution struct {
	auctionID       int64
	deadline        time.Time
	nonce           uint64
	gasLimit        uint64
	callData        []byte
	feeCap          *big.Int
	tipCap          *big.Int
	attempt         int
	attempts        []liveAttempt
	cancelSubmitted bool
}

type liveAttempt struct {
	hash    common.Hash
	attempt int
	cancel  bool
	feeCap  *big.Int
	tipCap  *big.Int
}

// Execute drives the winning solution to a terminal state. The returned
// result is final for the auction: confirmed, or a failure classification.
// The error is non-nil only when the context was canceled mid-flight, in
// which case no outcome should be recorded; Resume picks the attempt up after
// restart.
func (e *Engine) Execute(ctx context.Context, auction model.Auction, solution model.Solution) (model.ExecutionResult, error) {
	started := e.now()
	logger := e.logger.With(
		zap.Int64("auction_id", auction.ID),
		zap.String("solver", solution.Solver),
	)

	result, err := e.execute(ctx, logger, auction, solution)
	if err != nil {
		return model.ExecutionResult{}, err
	}
	e.metrics.ObserveExecution(result.Reason, started)
	logger.Info("execution finished",
		zap.String("reason", string(result.Reason)),
		zap.String("detail", result.Detail),
	)
	return result, nil
}

func (e *Engine) execute(ctx context.Context, logger *zap.Logger, auction model.Auction, solution model.Solution) (model.ExecutionResult, error) {
	// Building: translate the opaque payload into a concrete call. A failing
	// estimate means the payload references stale state; no chain action has
	// been taken.
	buildStarted := e.now()
	msg := ethereum.CallMsg{From: e.account, To: &e.contract, Data: solution.CallData}
	gasLimit, err := e.node.EstimateGas(ctx, msg)
	e.metrics.ObserveBuild(err, buildStarted)
	if err != nil {
		if ctx.Err() != nil {
			return model.ExecutionResult{}, ctx.Err()
		}
		if ethnode.IsRevert(err) {
			return failureResult(auction.ID, model.OutcomeBuildFailed, "stale state: "+err.Error()), nil
		}
		return failureResult(auction.ID, model.OutcomeBuildFailed, "estimate gas: "+err.Error()), nil
	}
	gasLimit += gasLimit * gasLimitMarginPercent / 100

	// Simulated: dry run without broadcasting. A revert here is fatal for the
	// attempt with no gas spent and no automatic re-nonce.
	if _, err := e.node.CallContract(ctx, msg); err != nil {
		if ctx.Err() != nil {
			return model.ExecutionResult{}, ctx.Err()
		}
		if ethnode.IsRevert(err) {
			return failureResult(auction.ID, model.OutcomeSimulationReverted, err.Error()), nil
		}
		return failureResult(auction.ID, model.OutcomeBuildFailed, "simulate: "+err.Error()), nil
	}

	nonce, release, err := e.nonces.Acquire(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return model.ExecutionResult{}, ctx.Err()
		}
		return failureResult(auction.ID, model.OutcomeBroadcastFailed, err.Error()), nil
	}
	consumed := false
	defer func() {
		release(consumed)
	}()

	feeCap, tipCap, err := e.initialFees(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return model.ExecutionResult{}, ctx.Err()
		}
		return failureResult(auction.ID, model.OutcomeBroadcastFailed, err.Error()), nil
	}

	exec := &execution{
		auctionID: auction.ID,
		deadline:  auction.Deadline,
		nonce:     nonce,
		gasLimit:  gasLimit,
		callData:  solution.CallData,
		feeCap:    feeCap,
		tipCap:    tipCap,
		attempt:   1,
	}

	if err := e.submitAttempt(ctx, logger, exec, false); err != nil {
		if ctx.Err() != nil {
			return model.ExecutionResult{}, ctx.Err()
		}
		// The acknowledgment may have been lost even though the transaction
		// landed, so the nonce state is unknown; releasing unconsumed forces
		// a resync.
		e.persist(ctx, exec, liveAttempt{
			attempt: exec.attempt,
			feeCap:  exec.feeCap,
			tipCap:  exec.tipCap,
		}, model.SettlementFailed)
		return failureResult(auction.ID, model.OutcomeBroadcastFailed, err.Error()), nil
	}

	result, nonceConsumed, err := e.poll(ctx, logger, exec)
	consumed = nonceConsumed
	return result, err
}

// Resume re-enters the poll loop for an attempt chain that was in flight when
// the process stopped. Returns nil when there is nothing to resume. Every
// non-terminal attempt at the nonce gets watched, superseded replacements
// included: any one of them may be the transaction that lands. Escalation is
// not possible without the original payload, but confirmation tracking and
// deadline cancellation are.
func (e *Engine) Resume(ctx context.Context) (*model.ExecutionResult, error) {
	live, err := e.store.LiveSettlementTransactions(ctx)
	if err != nil {
		return nil, fmt.Errorf("load live settlement transactions: %w", err)
	}
	if len(live) == 0 {
		return nil, nil
	}

	newest := live[0]
	logger := e.logger.With(
		zap.Int64("auction_id", newest.AuctionID),
		zap.String("tx_hash", newest.Hash.Hex()),
	)
	logger.Info("resuming in-flight settlement attempt chain",
		zap.Int("attempt", newest.Attempt),
		zap.Int("watched", len(live)),
	)

	exec := &execution{
		auctionID: newest.AuctionID,
		deadline:  newest.Deadline,
		nonce:     newest.Nonce,
		feeCap:    newest.GasFeeCap,
		tipCap:    newest.GasTipCap,
		attempt:   newest.Attempt,
	}
	for _, tx := range live {
		exec.attempts = append(exec.attempts, liveAttempt{
			hash:    tx.Hash,
			attempt: tx.Attempt,
			cancel:  tx.Cancellation,
			feeCap:  tx.GasFeeCap,
			tipCap:  tx.GasTipCap,
		})
		if tx.Cancellation {
			exec.cancelSubmitted = true
		}
	}

	result, _, err := e.poll(ctx, logger, exec)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// poll watches the attempt chain until a terminal state: a mined and
// confirmed transaction, a cancellation freeing the nonce after the deadline,
// or context cancellation. Every exit except the last produces a result the
// caller records as the auction's outcome.
func (e *Engine) poll(ctx context.Context, logger *zap.Logger, exec *execution) (model.ExecutionResult, bool, error) {
	lastEscalation := e.now()

	for {
		if err := ctx.Err(); err != nil {
			return model.ExecutionResult{}, false, err
		}

		mined, result, err := e.checkReceipts(ctx, logger, exec)
		if err != nil {
			return model.ExecutionResult{}, false, err
		}
		if mined {
			return result, true, nil
		}

		switch {
		case !e.now().Before(exec.deadline) && !exec.cancelSubmitted:
			// Deadline expiry: free the nonce with a zero-effect replacement
			// at a minimal qualifying price. The poll keeps watching the
			// original attempts too; whichever lands decides the outcome.
			if err := e.escalate(ctx, logger, exec, true); err != nil {
				if ctx.Err() != nil {
					return model.ExecutionResult{}, false, ctx.Err()
				}
				logger.Error("cancellation broadcast failed", zap.Error(err))
				return failureResult(exec.auctionID, model.OutcomeDeadlineExpired, "cancellation failed: "+err.Error()), false, nil
			}

		case e.now().Sub(lastEscalation) >= e.cfg.EscalationInterval &&
			e.now().Before(exec.deadline) &&
			len(exec.callData) > 0 &&
			!exec.cancelSubmitted:
			if err := e.escalate(ctx, logger, exec, false); err != nil {
				if ctx.Err() != nil {
					return model.ExecutionResult{}, false, ctx.Err()
				}
				// The prior attempt is still in flight; keep polling it and
				// try a higher bump next interval.
				logger.Warn("gas escalation failed", zap.Error(err))
			}
			lastEscalation = e.now()
		}

		if err := e.sleep(ctx, e.cfg.PollInterval); err != nil {
			return model.ExecutionResult{}, false, err
		}
	}
}

// checkReceipts looks for a mined attempt and, if found, waits out the
// confirmation depth. Returns mined=false when nothing is included yet or the
// included transaction was evicted inside the confirmation window.
func (e *Engine) checkReceipts(ctx context.Context, logger *zap.Logger, exec *execution) (bool, model.ExecutionResult, error) {
	for _, attempt := range exec.attempts {
		receipt, err := e.node.TransactionReceipt(ctx, attempt.hash)
		if err != nil {
			if ctx.Err() != nil {
				return false, model.ExecutionResult{}, ctx.Err()
			}
			if !ethnode.IsNotFound(err) {
				logger.Warn("receipt lookup failed", zap.String("tx_hash", attempt.hash.Hex()), zap.Error(err))
			}
			continue
		}

		final, err := e.awaitConfirmations(ctx, logger, attempt.hash, receipt)
		if err != nil {
			return false, model.ExecutionResult{}, err
		}
		if final == nil {
			logger.Warn("included transaction evicted before confirmation depth",
				zap.String("tx_hash", attempt.hash.Hex()))
			continue
		}

		if attempt.cancel {
			e.persist(ctx, exec, attempt, model.SettlementFailed)
			return true, failureResult(exec.auctionID, model.OutcomeDeadlineExpired, "nonce freed by cancellation"), nil
		}

		hash := attempt.hash
		block := final.BlockNumber.Uint64()

		// Mined is not settled: a reverted settlement consumed the nonce and
		// gas but executed no trades, so its orders must stay eligible.
		if final.Status == types.ReceiptStatusFailed {
			e.persist(ctx, exec, attempt, model.SettlementFailed)
			result := failureResult(exec.auctionID, model.OutcomeExecutionReverted, "settlement transaction reverted on-chain")
			result.TxHash = &hash
			result.BlockNumber = &block
			return true, result, nil
		}

		e.persist(ctx, exec, attempt, model.SettlementConfirmed)
		return true, model.ExecutionResult{
			AuctionID:   exec.auctionID,
			Reason:      model.OutcomeConfirmed,
			TxHash:      &hash,
			BlockNumber: &block,
		}, nil
	}
	return false, model.ExecutionResult{}, nil
}

// awaitConfirmations waits until the receipt is k blocks deep, re-checking
// that the transaction is still included, and returns the receipt that held
// at depth. A receipt that disappears inside the window returns nil and
// restarts the outer poll.
func (e *Engine) awaitConfirmations(ctx context.Context, logger *zap.Logger, hash common.Hash, receipt *types.Receipt) (*types.Receipt, error) {
	target := receipt.BlockNumber.Uint64() + e.cfg.Confirmations - 1
	for {
		head, err := e.node.BlockNumber(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			logger.Warn("block number lookup failed", zap.Error(err))
		} else if head >= target {
			current, err := e.node.TransactionReceipt(ctx, hash)
			if err != nil {
				if ctx.Err() != nil {
					return nil, ctx.Err()
				}
				if ethnode.IsNotFound(err) {
					return nil, nil
				}
				logger.Warn("receipt re-check failed", zap.Error(err))
			} else {
				newTarget := current.BlockNumber.Uint64() + e.cfg.Confirmations - 1
				if head >= newTarget {
					return current, nil
				}
				target = newTarget
			}
		}

		if err := e.sleep(ctx, e.cfg.PollInterval); err != nil {
			return nil, err
		}
	}
}

// escalate replaces the live attempt at the same nonce with strictly higher
// fee caps. cancel=true builds a zero-value self-transfer instead of the
// settlement call, purely to free the nonce.
func (e *Engine) escalate(ctx context.Context, logger *zap.Logger, exec *execution, cancel bool) error {
	baseFee, err := e.node.BaseFee(ctx)
	if err != nil {
		return fmt.Errorf("base fee: %w", err)
	}

	var prior *liveAttempt
	if len(exec.attempts) > 0 {
		prior = &exec.attempts[len(exec.attempts)-1]
	}

	exec.feeCap, exec.tipCap = e.escalator.Bump(exec.feeCap, exec.tipCap, baseFee)
	exec.attempt++
	e.metrics.ObserveEscalation(exec.auctionID, exec.attempt)

	logger.Info("escalating settlement transaction",
		zap.Int("attempt", exec.attempt),
		zap.Bool("cancellation", cancel),
		zap.String("gas_fee_cap", exec.feeCap.String()),
		zap.String("gas_tip_cap", exec.tipCap.String()),
	)
	if err := e.submitAttempt(ctx, logger, exec, cancel); err != nil {
		return err
	}

	// Only a broadcast replacement supersedes the prior attempt. Marking it
	// earlier would hide the still-in-flight transaction from a restart.
	if prior != nil {
		e.persist(ctx, exec, *prior, model.SettlementSuperseded)
	}
	return nil
}

// submitAttempt signs, persists, and broadcasts one attempt.
func (e *Engine) submitAttempt(ctx context.Context, logger *zap.Logger, exec *execution, cancel bool) error {
	var tx *types.Transaction
	var err error
	if cancel {
		tx, err = e.sign(exec.nonce, 21_000, exec.feeCap, exec.tipCap, &e.account, nil)
	} else {
		tx, err = e.sign(exec.nonce, exec.gasLimit, exec.feeCap, exec.tipCap, &e.contract, exec.callData)
	}
	if err != nil {
		return fmt.Errorf("sign transaction: %w", err)
	}

	attempt := liveAttempt{
		hash:    tx.Hash(),
		attempt: exec.attempt,
		cancel:  cancel,
		feeCap:  new(big.Int).Set(exec.feeCap),
		tipCap:  new(big.Int).Set(exec.tipCap),
	}
	e.persist(ctx, exec, attempt, model.SettlementSubmitted)

	if err := e.broadcast(ctx, logger, tx); err != nil {
		return err
	}

	exec.attempts = append(exec.attempts, attempt)
	if cancel {
		exec.cancelSubmitted = true
	}
	e.persist(ctx, exec, attempt, model.SettlementPending)
	return nil
}

// broadcast sends the transaction with bounded backoff. A nonce-too-low
// rejection is treated as success: it usually means an earlier attempt at the
// same nonce was mined, which the receipt poll resolves authoritatively.
func (e *Engine) broadcast(ctx context.Context, logger *zap.Logger, tx *types.Transaction) error {
	backoff := e.cfg.BroadcastBackoff
	var lastErr error

	for i := 0; i < e.cfg.MaxBroadcastAttempts; i++ {
		started := e.now()
		err := e.node.SendTransaction(ctx, tx)
		e.metrics.ObserveSubmit(err, started)

		switch {
		case err == nil:
			return nil
		case ethnode.IsAlreadyKnown(err):
			return nil
		case ethnode.IsNonceTooLow(err):
			logger.Info("nonce already consumed; deferring to receipt poll",
				zap.String("tx_hash", tx.Hash().Hex()))
			return nil
		case ethnode.IsReplacementUnderpriced(err):
			return fmt.Errorf("broadcast: %w", err)
		}

		lastErr = err
		logger.Warn("broadcast failed, backing off",
			zap.Int("attempt", i+1),
			zap.Duration("backoff", backoff),
			zap.Error(err),
		)
		if i+1 < e.cfg.MaxBroadcastAttempts {
			if sleepErr := e.sleep(ctx, backoff); sleepErr != nil {
				return sleepErr
			}
			backoff *= 2
		}
	}
	return fmt.Errorf("broadcast after %d attempts: %w", e.cfg.MaxBroadcastAttempts, lastErr)
}

func (e *Engine) initialFees(ctx context.Context) (feeCap, tipCap *big.Int, err error) {
	baseFee, err := e.node.BaseFee(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("base fee: %w", err)
	}
	tip, err := e.node.SuggestGasTipCap(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("suggest gas tip cap: %w", err)
	}
	feeCap, tipCap = e.escalator.Initial(baseFee, tip)
	return feeCap, tipCap, nil
}

func (e *Engine) sign(nonce, gasLimit uint64, feeCap, tipCap *big.Int, to *common.Address, data []byte) (*types.Transaction, error) {
	inner := &types.DynamicFeeTx{
		ChainID:   e.chainID,
		Nonce:     nonce,
		GasTipCap: tipCap,
		GasFeeCap: feeCap,
		Gas:       gasLimit,
		To:        to,
		Value:     big.NewInt(0),
		Data:      data,
	}
	return types.SignNewTx(e.key, types.LatestSignerForChainID(e.chainID), inner)
}

// persist writes one state-machine transition. Persistence enables restart
// resume; a write failure degrades that, so it is logged, not fatal.
func (e *Engine) persist(ctx context.Context, exec *execution, attempt liveAttempt, status model.SettlementStatus) {
	err := e.store.SaveSettlementTransaction(ctx, model.SettlementTransaction{
		AuctionID:    exec.auctionID,
		Attempt:      attempt.attempt,
		Nonce:        exec.nonce,
		GasFeeCap:    new(big.Int).Set(attempt.feeCap),
		GasTipCap:    new(big.Int).Set(attempt.tipCap),
		Hash:         attempt.hash,
		Status:       status,
		Cancellation: attempt.cancel,
		Deadline:     exec.deadline,
	})
	if err != nil {
		e.logger.Error("persist settlement transaction failed",
			zap.Int64("auction_id", exec.auctionID),
			zap.Int("attempt", attempt.attempt),
			zap.Error(err),
		)
	}
}

func failureResult(auctionID int64, reason model.OutcomeReason, detail string) model.ExecutionResult {
	return model.ExecutionResult{AuctionID: auctionID, Reason: reason, Detail: detail}
}
