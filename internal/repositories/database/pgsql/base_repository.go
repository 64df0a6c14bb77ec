package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/freightdesk/freight_approval_app/internal/apperrors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// dbConn is the query surface shared by *pgxpool.Pool and pgx.Tx, so one
// repository implementation serves both pooled and tx-bound calls.
type dbConn interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// BaseRepository provides common functionality for all repositories. db is
// the pool by default and a transaction for WithTx-derived instances.
type BaseRepository struct {
	Pool *pgxpool.Pool
	db   dbConn
}

func newBaseRepository(pool *pgxpool.Pool) BaseRepository {
	return BaseRepository{Pool: pool, db: pool}
}

// withTx returns a copy of the base bound to the given transaction.
func (r BaseRepository) withTx(tx pgx.Tx) BaseRepository {
	return BaseRepository{Pool: r.Pool, db: tx}
}

// Begin starts a new database transaction
func (r *BaseRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.Pool.Begin(ctx)
	if err != nil {
		return nil, mapStorageErr(err, "begin transaction")
	}
	return tx, nil
}

// Commit commits a transaction
func (r *BaseRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Commit(ctx); err != nil {
		return mapStorageErr(err, "commit transaction")
	}
	return nil
}

// Rollback rolls back a transaction
func (r *BaseRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, sql.ErrTxDone) && !errors.Is(err, pgx.ErrTxClosed) {
		return mapStorageErr(err, "rollback transaction")
	}
	return nil
}

// mapStorageErr wraps database failures so callers can distinguish retryable
// transient faults (timeouts, lost connections) via apperrors.ErrTransientStorage.
func mapStorageErr(err error, op string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%s: %s: %w", op, err.Error(), apperrors.ErrTransientStorage)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// Class 08: connection exceptions; 57014: statement timeout.
		if len(pgErr.Code) >= 2 && pgErr.Code[:2] == "08" || pgErr.Code == "57014" {
			return fmt.Errorf("%s: %s: %w", op, pgErr.Message, apperrors.ErrTransientStorage)
		}
	}
	return fmt.Errorf("failed to %s: %w", op, err)
}
