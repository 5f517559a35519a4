package postgres

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/clearbid/driver-backend/internal/model"
	"github.com/clearbid/driver-backend/pkg/safe"
	"github.com/ethereum/go-ethereum/common"
)

// SaveSettlementTransaction persists one state-machine transition of a
// settlement attempt. The engine writes after every transition so a restart
// can resume by re-querying the chain for the last known hash.
func (r *Repository) SaveSettlementTransaction(ctx context.Context, tx model.SettlementTransaction) (err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("save_settlement_transaction", err, start)
	}()

	const query = `
INSERT INTO settlement_transactions (auction_id, attempt, nonce, gas_fee_cap, gas_tip_cap, tx_hash, status, cancellation, deadline)
VALUES ($1, $2, $3, $4::numeric, $5::numeric, $6, $7, $8, $9)
ON CONFLICT (auction_id, attempt) DO UPDATE
SET nonce = EXCLUDED.nonce,
    gas_fee_cap = EXCLUDED.gas_fee_cap,
    gas_tip_cap = EXCLUDED.gas_tip_cap,
    tx_hash = EXCLUDED.tx_hash,
    status = EXCLUDED.status,
    cancellation = EXCLUDED.cancellation,
    deadline = EXCLUDED.deadline,
    updated_at = now()`

	nonce, err := safe.Int64(tx.Nonce)
	if err != nil {
		return fmt.Errorf("nonce out of range: %w", err)
	}

	if _, err = r.db.Exec(ctx, query,
		tx.AuctionID,
		tx.Attempt,
		nonce,
		tx.GasFeeCap.String(),
		tx.GasTipCap.String(),
		tx.Hash.Hex(),
		string(tx.Status),
		tx.Cancellation,
		tx.Deadline,
	); err != nil {
		return fmt.Errorf("save settlement transaction: %w", err)
	}
	return nil
}

// LiveSettlementTransactions returns every non-terminal attempt of the auction
// that still has a submitted or pending attempt, newest attempt first, or nil
// when nothing is in flight. Superseded replacements are included: any attempt
// at the nonce may be the one that lands, so a restarted poll must watch all
// of them. Used once at startup.
func (r *Repository) LiveSettlementTransactions(ctx context.Context) (txs []model.SettlementTransaction, err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("live_settlement_transactions", err, start)
	}()

	const query = `
SELECT auction_id, attempt, nonce, gas_fee_cap::text, gas_tip_cap::text, tx_hash, status, cancellation, deadline
FROM settlement_transactions
WHERE auction_id = (
    SELECT auction_id
    FROM settlement_transactions
    WHERE status IN ('submitted', 'pending')
    ORDER BY auction_id DESC
    LIMIT 1
)
AND status IN ('submitted', 'pending', 'superseded')
ORDER BY attempt DESC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query live settlement transactions: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			result         model.SettlementTransaction
			nonce          int64
			feeCap, tipCap string
			hash, status   string
		)
		if err = rows.Scan(
			&result.AuctionID,
			&result.Attempt,
			&nonce,
			&feeCap,
			&tipCap,
			&hash,
			&status,
			&result.Cancellation,
			&result.Deadline,
		); err != nil {
			return nil, fmt.Errorf("scan live settlement transaction: %w", err)
		}

		result.Nonce, err = safe.Uint64(nonce)
		if err != nil {
			return nil, fmt.Errorf("nonce of auction %d: %w", result.AuctionID, err)
		}
		var ok bool
		if result.GasFeeCap, ok = new(big.Int).SetString(feeCap, 10); !ok {
			err = fmt.Errorf("parse gas fee cap %q", feeCap)
			return nil, err
		}
		if result.GasTipCap, ok = new(big.Int).SetString(tipCap, 10); !ok {
			err = fmt.Errorf("parse gas tip cap %q", tipCap)
			return nil, err
		}
		result.Hash = common.HexToHash(hash)
		result.Status = model.SettlementStatus(status)
		txs = append(txs, result)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate live settlement transactions: %w", err)
	}
	return txs, nil
}
