package commands

import (
	"context"

	"printfloor/internal/core/domain/model/kernel"
)

// MoveOutcome is the result of one job in a batch move. Exactly one of Result
// and Err is meaningful.
type MoveOutcome struct {
	JobID  kernel.UUID
	Result MoveResult
	Err    error
}

func (o MoveOutcome) Succeeded() bool {
	return o.Err == nil
}

// BatchMoveResult lists outcomes in request order.
type BatchMoveResult struct {
	Succeeded int
	Failed    int
	Outcomes  []MoveOutcome
}

// BatchMoveJobStatusCommandHandler applies one target status to many jobs.
// Every id is attempted, each in its own transaction; a failure is recorded
// against its id and the batch carries on.
type BatchMoveJobStatusCommandHandler struct {
	engine *StatusEngine
}

func NewBatchMoveJobStatusCommandHandler(engine *StatusEngine) BatchMoveJobStatusCommandHandler {
	return BatchMoveJobStatusCommandHandler{engine: engine}
}

func (h BatchMoveJobStatusCommandHandler) Handle(ctx context.Context, cmd BatchMoveJobStatusCommand) (BatchMoveResult, error) {
	if err := cmd.Validate(); err != nil {
		return BatchMoveResult{}, err
	}

	var result BatchMoveResult
	for _, id := range cmd.JobIDs() {
		moved, err := h.engine.Move(ctx, id, cmd.Target(), cmd.Operator())
		result.Outcomes = append(result.Outcomes, MoveOutcome{JobID: id, Result: moved, Err: err})
		if err != nil {
			result.Failed++
			continue
		}
		result.Succeeded++
	}
	return result, nil
}
