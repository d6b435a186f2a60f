package commands

import (
	"context"
)

// RecordQCResultCommandHandler applies QC results through the status engine.
// A pass or conditional result releases the job to PACKAGING; a fail sends it
// back to CUTTING for rework.
type RecordQCResultCommandHandler struct {
	engine *StatusEngine
}

func NewRecordQCResultCommandHandler(engine *StatusEngine) RecordQCResultCommandHandler {
	return RecordQCResultCommandHandler{engine: engine}
}

func (h RecordQCResultCommandHandler) Handle(ctx context.Context, cmd RecordQCResultCommand) (MoveResult, error) {
	if err := cmd.Validate(); err != nil {
		return MoveResult{}, err
	}
	return h.engine.RecordQC(ctx, cmd.JobID(), cmd.Result(), cmd.Notes(), cmd.Operator())
}
