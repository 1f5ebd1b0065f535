package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/psbook/internal/apperrors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX is satisfied by both *pgxpool.Pool and pgx.Tx, so every repository can run
// either standalone or inside a unit of work.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// BaseRepository provides common functionality for all repositories
type BaseRepository struct {
	DB DBTX
}

// rowScanner is implemented by pgx.Row and pgx.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// wrapWriteError translates constraint violations into application errors.
func wrapWriteError(err error, what string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return fmt.Errorf("%w: %s violates %s", apperrors.ErrDuplicate, what, pgErr.ConstraintName)
		case pgForeignKeyViolation:
			return fmt.Errorf("%w: %s references a missing row (%s)", apperrors.ErrNotFound, what, pgErr.ConstraintName)
		}
	}
	return fmt.Errorf("failed to %s: %w", what, err)
}

// wrapReadError turns pgx.ErrNoRows into apperrors.ErrNotFound.
func wrapReadError(err error, what string) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%w: %s", apperrors.ErrNotFound, what)
	}
	return fmt.Errorf("failed to find %s: %w", what, err)
}

// normalizePage applies the default page size and clamps the offset.
func normalizePage(limit, offset int) (int, int) {
	if limit <= 0 || limit > 500 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

// queryBuilder accumulates WHERE conditions with numbered placeholders.
type queryBuilder struct {
	conds []string
	args  []any
}

func (b *queryBuilder) add(cond string, arg any) {
	b.args = append(b.args, arg)
	b.conds = append(b.conds, fmt.Sprintf(cond, len(b.args)))
}

func (b *queryBuilder) addRaw(cond string) {
	b.conds = append(b.conds, cond)
}

func (b *queryBuilder) where() string {
	if len(b.conds) == 0 {
		return ""
	}
	out := " WHERE " + b.conds[0]
	for _, c := range b.conds[1:] {
		out += " AND " + c
	}
	return out
}

// page appends LIMIT and OFFSET placeholders and returns the clause.
func (b *queryBuilder) page(limit, offset int) string {
	limit, offset = normalizePage(limit, offset)
	b.args = append(b.args, limit, offset)
	return fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(b.args)-1, len(b.args))
}
