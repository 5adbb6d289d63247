package commands

import (
	"errors"
	"time"

	"tawsila/internal/pkg/errs"
	"tawsila/internal/pkg/guard"
)

var ErrRebroadcastOrdersCommandIsNotConstructed = errors.New(
	"RebroadcastOrdersCommand must be created via NewRebroadcastOrdersCommand constructor",
)

// RebroadcastOrdersCommand triggers a re-announcement of orders that have
// been waiting for a driver longer than OlderThan.
type RebroadcastOrdersCommand struct { //nolint:recvcheck //using for validation
	olderThan time.Duration

	guard guard.ConstructorGuard
}

// NewRebroadcastOrdersCommand creates a rebroadcast trigger command.
// olderThan must not be negative; zero re-announces every waiting order.
func NewRebroadcastOrdersCommand(olderThan time.Duration) (RebroadcastOrdersCommand, error) {
	if olderThan < 0 {
		return RebroadcastOrdersCommand{}, errs.NewValueIsInvalidError("olderThan")
	}

	return RebroadcastOrdersCommand{
		olderThan: olderThan,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c RebroadcastOrdersCommand) Validate() error {
	return c.guard.Validate(ErrRebroadcastOrdersCommandIsNotConstructed)
}

// OlderThan returns the minimum waiting time before re-announcement.
func (c RebroadcastOrdersCommand) OlderThan() time.Duration {
	return c.olderThan
}
