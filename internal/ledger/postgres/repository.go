// Package postgres implements the outcome ledger on PostgreSQL. The ledger is
// the single source of truth for "has this auction already settled" and for
// auction id allocation.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// Metrics records duration and status of ledger operations.
	Metrics interface {
		Observe(operation string, err error, started time.Time)
	}

	// Querier is the subset of pgxpool.Pool the repository uses.
	Querier interface {
		Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
		Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
		QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
		SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults
	}
)

// ErrDuplicateOutcome signals a second outcome write for the same auction id.
// This is a programming-error class: it must be surfaced loudly, never
// swallowed or silently overwritten.
var ErrDuplicateOutcome = errors.New("outcome already recorded for auction")

// Repository provides ledger operations backed by PostgreSQL.
type Repository struct {
	db      Querier
	metrics Metrics
}

// NewRepository opens a connection pool and builds a Repository.
func NewRepository(ctx context.Context, dsn string, metrics Metrics) (*Repository, error) {
	if dsn == "" {
		return nil, errors.New("postgres dsn is required")
	}
	if metrics == nil {
		return nil, errors.New("ledger metrics is required")
	}

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres pool: %w", err)
	}

	return &Repository{db: pool, metrics: metrics}, nil
}

const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
