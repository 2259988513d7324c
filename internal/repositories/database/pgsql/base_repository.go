package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/nonprofit_ledger/internal/apperrors"
	"github.com/SscSPs/nonprofit_ledger/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const uniqueViolation = "23505"

// BaseRepository provides common functionality for all repositories
type BaseRepository struct {
	Pool *pgxpool.Pool
}

// Begin starts a new database transaction
func (r *BaseRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.Pool.Begin(ctx)
	if err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrInternal, "failed to begin transaction", err)
	}
	return tx, nil
}

// Commit commits a transaction
func (r *BaseRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Commit(ctx); err != nil {
		return apperrors.NewAppError(apperrors.ErrInternal, "failed to commit transaction", err)
	}
	return nil
}

// Rollback rolls back a transaction
func (r *BaseRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return apperrors.NewAppError(apperrors.ErrInternal, "failed to rollback transaction", err)
	}
	return nil
}

// isUniqueViolation reports whether err is a primary key or unique constraint clash.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

// pageBounds decodes a cursor and returns the ID to resume after and the row
// count to fetch. One extra row is fetched to detect a following page.
func pageBounds(cursor string, limit int) (afterID string, fetch int, err error) {
	afterID, err = pagination.DecodeCursor(cursor)
	if err != nil {
		return "", 0, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}
	if limit <= 0 {
		limit = 100
	}
	return afterID, limit + 1, nil
}

// trimPage cuts an over-fetched page back to limit and returns the next cursor.
func trimPage[T any](rows []T, limit int, idOf func(T) string) ([]T, string) {
	if limit <= 0 {
		limit = 100
	}
	if len(rows) <= limit {
		return rows, ""
	}
	rows = rows[:limit]
	return rows, pagination.EncodeCursor(idOf(rows[len(rows)-1]))
}
