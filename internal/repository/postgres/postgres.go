package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// uniqueViolation is the Postgres error code for unique constraint breaks.
const uniqueViolation = "23505"

// base carries the shared connection pool for all Postgres repositories.
type base struct {
	pool *pgxpool.Pool
}

// Pool returns the underlying connection pool.
func (b *base) Pool() *pgxpool.Pool {
	return b.pool
}

// lockKeyed takes a transaction-scoped advisory lock for the given key.
// Concurrent transactions locking the same key serialize until commit.
func lockKeyed(ctx context.Context, tx pgx.Tx, key string) error {
	_, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, key)
	return err
}

// isNoRows reports whether the error means "row not found".
func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

// isUniqueViolation reports whether the error is a unique constraint break.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
