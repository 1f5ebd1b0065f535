package pgsql

import (
	"context"

	"github.com/SscSPs/psbook/internal/apperrors"
	portsrepo "github.com/SscSPs/psbook/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxUnitOfWork runs a TxFunc inside one PostgreSQL transaction.
type PgxUnitOfWork struct {
	pool     *pgxpool.Pool
	timezone string
}

func newPgxUnitOfWork(pool *pgxpool.Pool, timezone string) *PgxUnitOfWork {
	return &PgxUnitOfWork{pool: pool, timezone: timezone}
}

var _ portsrepo.UnitOfWork = (*PgxUnitOfWork)(nil)

// WithinTransaction begins a transaction, hands fn repositories bound to it and commits
// when fn succeeds. An error or panic in fn rolls everything back.
func (u *PgxUnitOfWork) WithinTransaction(ctx context.Context, fn portsrepo.TxFunc) error {
	tx, err := u.pool.Begin(ctx)
	if err != nil {
		return apperrors.NewAppError(500, "failed to begin transaction", err)
	}
	// Rollback is a no-op once Commit has succeeded.
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(ctx, newRepositories(tx, u.timezone)); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return apperrors.NewAppError(500, "failed to commit transaction", err)
	}
	return nil
}
