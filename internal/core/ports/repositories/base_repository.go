package repositories

import "context"

// TxFunc is the body of a unit of work. Every repository reached through repos shares the
// same database transaction.
type TxFunc func(ctx context.Context, repos Repositories) error

// UnitOfWork runs a group of repository calls atomically: fn's writes are committed together
// when it returns nil and rolled back otherwise.
type UnitOfWork interface {
	WithinTransaction(ctx context.Context, fn TxFunc) error
}
