package repository

import "context"

// UnitOfWork groups the repository writes of one sale operation into a
// single transaction. A unit of work serves one operation and is not safe
// for concurrent use.
type UnitOfWork interface {
	// BeginTransaction starts a transaction. It fails if one is already active.
	BeginTransaction(ctx context.Context) error
	// Commit commits the active transaction. If the commit fails the
	// transaction is rolled back and the commit error returned.
	Commit(ctx context.Context) error
	// Rollback discards the active transaction. Without one it does nothing.
	Rollback(ctx context.Context) error

	Sales() SaleRepository
	Carts() CartRepository
	Products() ProductRepository
}

// UnitOfWorkFactory hands out a fresh unit of work per operation
type UnitOfWorkFactory interface {
	New() UnitOfWork
}
