package commands

import (
	"context"

	"printfloor/internal/core/domain/services"
)

// CreateJobsCommandResult reports the jobs of an order. AlreadyExisted is set
// when the order had jobs before the call; they are returned and Created is 0.
type CreateJobsCommandResult struct {
	services.JobFactoryResult
	AlreadyExisted bool
}

// CreateJobsCommandHandler fetches an order from the storefront and derives
// one QUEUED job per printable line item. Running it twice for an order does
// not duplicate work.
type CreateJobsCommandHandler struct {
	steps *PipelineSteps
}

func NewCreateJobsCommandHandler(steps *PipelineSteps) CreateJobsCommandHandler {
	return CreateJobsCommandHandler{steps: steps}
}

func (h CreateJobsCommandHandler) Handle(ctx context.Context, cmd CreateJobsCommand) (CreateJobsCommandResult, error) {
	if err := cmd.Validate(); err != nil {
		return CreateJobsCommandResult{}, err
	}

	o, err := h.steps.orderSource.GetOrder(ctx, cmd.OrderID())
	if err != nil {
		return CreateJobsCommandResult{}, err
	}

	result, existing, err := h.steps.createJobs(ctx, o)
	if err != nil {
		return CreateJobsCommandResult{}, err
	}
	return CreateJobsCommandResult{JobFactoryResult: result, AlreadyExisted: existing}, nil
}
