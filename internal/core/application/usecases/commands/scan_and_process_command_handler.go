package commands

import (
	"context"
)

// ScanAndProcessCommandHandler handles an intake label scan. The first scan
// moves the record from pending to processing; every scan makes sure the
// order has a design artifact and jobs, creating only what is missing.
// An unknown code is an *errs.ObjectNotFoundError.
type ScanAndProcessCommandHandler struct {
	steps *PipelineSteps
}

func NewScanAndProcessCommandHandler(steps *PipelineSteps) ScanAndProcessCommandHandler {
	return ScanAndProcessCommandHandler{steps: steps}
}

func (h ScanAndProcessCommandHandler) Handle(ctx context.Context, cmd ScanAndProcessCommand) (PipelineResult, error) {
	if err := cmd.Validate(); err != nil {
		return PipelineResult{}, err
	}

	record, err := h.steps.uowFactory.Create().IntakeRepository().GetByCode(ctx, cmd.Code())
	if err != nil {
		return PipelineResult{}, err
	}

	orderID := record.OrderID()
	ctx, span := h.steps.span(ctx, "pipeline.scan", orderID)
	defer span.End()

	return PipelineResult{
		OrderID: orderID,
		Steps: []StepResult{
			h.steps.startProcessing(ctx, record.ID(), orderID),
			h.steps.ensureDesign(ctx, orderID),
			h.steps.jobsStep(ctx, orderID),
		},
	}, nil
}
