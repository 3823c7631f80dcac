package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/SscSPs/library_circulation/internal/apperrors"
	"github.com/SscSPs/library_circulation/internal/middleware"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// BaseRepository holds the pool shared by the postgres repositories.
type BaseRepository struct {
	Pool *pgxpool.Pool
}

// InTx runs fn inside a transaction. fn's error is returned unchanged so sentinel
// errors survive; the transaction is rolled back in that case.
func (r *BaseRepository) InTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := r.Pool.Begin(ctx)
	if err != nil {
		return apperrors.NewAppError(500, "failed to begin transaction", err)
	}
	defer r.rollback(ctx, tx)

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return apperrors.NewAppError(500, "failed to commit transaction", err)
	}
	return nil
}

// rollback is a no-op on a committed transaction.
func (r *BaseRepository) rollback(ctx context.Context, tx pgx.Tx) {
	err := tx.Rollback(ctx)
	if err == nil || errors.Is(err, sql.ErrTxDone) || errors.Is(err, pgx.ErrTxClosed) {
		return
	}
	middleware.GetLoggerFromCtx(ctx).Error("failed to rollback transaction", slog.String("error", err.Error()))
}
