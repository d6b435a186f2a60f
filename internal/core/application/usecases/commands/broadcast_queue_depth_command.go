package commands

import (
	"errors"
	"time"

	"printfloor/internal/pkg/errs"
	"printfloor/internal/pkg/guard"
)

var ErrBroadcastQueueDepthCommandIsNotConstructed = errors.New(
	"BroadcastQueueDepthCommand must be created via NewBroadcastQueueDepthCommand constructor",
)

// BroadcastQueueDepthCommand reconciles displays with the current number of
// QUEUED jobs.
type BroadcastQueueDepthCommand struct { //nolint:recvcheck //using for validation
	at time.Time

	guard guard.ConstructorGuard
}

func NewBroadcastQueueDepthCommand(at time.Time) (BroadcastQueueDepthCommand, error) {
	if at.IsZero() {
		return BroadcastQueueDepthCommand{}, errs.NewValueIsRequiredError("at")
	}
	return BroadcastQueueDepthCommand{at: at, guard: guard.NewConstructorGuard()}, nil
}

func (c BroadcastQueueDepthCommand) Validate() error {
	return c.guard.Validate(ErrBroadcastQueueDepthCommandIsNotConstructed)
}

func (c BroadcastQueueDepthCommand) At() time.Time { return c.at }
