package commands

import (
	"context"
)

// MoveJobStatusCommandHandler moves a single job through the status engine.
// Errors are *errs.InvalidTransitionError for moves the status graph forbids
// and *errs.ObjectNotFoundError for unknown jobs.
type MoveJobStatusCommandHandler struct {
	engine *StatusEngine
}

func NewMoveJobStatusCommandHandler(engine *StatusEngine) MoveJobStatusCommandHandler {
	return MoveJobStatusCommandHandler{engine: engine}
}

func (h MoveJobStatusCommandHandler) Handle(ctx context.Context, cmd MoveJobStatusCommand) (MoveResult, error) {
	if err := cmd.Validate(); err != nil {
		return MoveResult{}, err
	}
	return h.engine.Move(ctx, cmd.JobID(), cmd.Target(), cmd.Operator())
}
