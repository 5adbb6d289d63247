package ports

import (
	"context"
)

// UnitOfWorkFactory hands out a fresh UnitOfWork per command so concurrent
// handlers never share transaction state.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is the transaction boundary a command handler works inside.
// The handler drives the lifecycle explicitly: Begin, use the repositories,
// then Commit or Rollback.
type UnitOfWork interface {
	// Begin opens the underlying database transaction.
	Begin(ctx context.Context) error

	// Commit finishes the transaction. Fails when none is active.
	Commit(ctx context.Context) error

	// Rollback discards the transaction. Fails when none is active.
	Rollback(ctx context.Context) error

	// DriverRepository is bound to the transaction opened by Begin.
	DriverRepository() DriverRepository

	// OrderRepository is bound to the transaction opened by Begin.
	OrderRepository() OrderRepository
}
