package commands

import (
	"context"
	"errors"
)

// InitiatePipelineCommandHandler starts an order through the whole pipeline:
// intake record, design artifact and production jobs. Every step is attempted
// even when an earlier one fails, and steps whose outcome already exists are
// skipped. Only jobs need the order itself; if the storefront cannot supply it
// the intake and design steps still run.
type InitiatePipelineCommandHandler struct {
	steps *PipelineSteps
}

func NewInitiatePipelineCommandHandler(steps *PipelineSteps) InitiatePipelineCommandHandler {
	return InitiatePipelineCommandHandler{steps: steps}
}

func (h InitiatePipelineCommandHandler) Handle(ctx context.Context, cmd InitiatePipelineCommand) (PipelineResult, error) {
	if err := cmd.Validate(); err != nil {
		return PipelineResult{}, err
	}

	orderID := cmd.OrderID()
	ctx, span := h.steps.span(ctx, "pipeline.initiate", orderID)
	defer span.End()

	result := PipelineResult{OrderID: orderID}

	o, orderStep := h.steps.fetchOrder(ctx, orderID)
	result.Steps = append(result.Steps,
		orderStep,
		h.steps.ensureIntake(ctx, orderID, o.OwnerID),
		h.steps.ensureDesign(ctx, orderID),
	)

	if orderStep.Status == StepFailed {
		result.Steps = append(result.Steps, failed(StepJobs, errors.New("order unavailable")))
	} else {
		result.Steps = append(result.Steps, h.steps.ensureJobs(ctx, o))
	}

	return result, nil
}
