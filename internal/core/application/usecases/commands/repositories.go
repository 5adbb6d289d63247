// Package commands holds the write side of the application: every state
// change (submitting orders, accepting them, reporting positions, closing
// deliveries) is a command with a guarded constructor and a handler that
// runs it inside a unit of work.
package commands

import (
	"context"

	"tawsila/internal/core/ports"
)

// Handlers declare the narrowest unit-of-work shape they need, so a handler
// that only touches orders cannot reach the driver repository by accident.
type (
	// TxManager is the transaction lifecycle shared by all unit-of-work
	// variants.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory exposes the order repository bound to the
	// transaction in progress.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// DriverRepoFactory exposes the driver repository bound to the
	// transaction in progress.
	DriverRepoFactory interface {
		DriverRepository() ports.DriverRepository
	}

	// OrderUoW serves commands that touch order aggregates only.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates an OrderUoW per command execution.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// DriverUoW serves commands that touch driver aggregates only.
	DriverUoW interface {
		TxManager
		DriverRepoFactory
	}

	// DriverUoWFactory creates a DriverUoW per command execution.
	DriverUoWFactory interface {
		Create() DriverUoW
	}

	// UoW spans both aggregates. Dispatch and availability reconciliation
	// need it because they read drivers while writing orders (or the other
	// way around) in one atomic step.
	UoW interface {
		TxManager
		DriverRepoFactory
		OrderRepoFactory
	}

	// UoWFactory creates a UoW per command execution.
	UoWFactory interface {
		Create() UoW
	}
)
