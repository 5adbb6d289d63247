package commands

import (
	"errors"

	"tawsila/internal/pkg/guard"
)

var ErrSyncAvailabilityCommandIsNotConstructed = errors.New(
	"SyncAvailabilityCommand must be created via NewSyncAvailabilityCommand constructor",
)

// SyncAvailabilityCommand triggers one availability reconciliation pass.
// It carries no data; the handler derives everything from storage.
type SyncAvailabilityCommand struct { //nolint:recvcheck //using for validation
	guard guard.ConstructorGuard
}

// NewSyncAvailabilityCommand creates a reconciliation trigger command.
func NewSyncAvailabilityCommand() SyncAvailabilityCommand {
	return SyncAvailabilityCommand{
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
func (c SyncAvailabilityCommand) Validate() error {
	return c.guard.Validate(ErrSyncAvailabilityCommandIsNotConstructed)
}
