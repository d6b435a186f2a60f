package commands

import (
	"context"
	"fmt"

	"printfloor/internal/core/domain/model/design"
	"printfloor/internal/core/domain/model/job"
	"printfloor/internal/core/domain/model/kernel"
)

// ApproveDesignResult adds the per-job outcomes of releasing queued work.
type ApproveDesignResult struct {
	PipelineResult
	Released []MoveOutcome
}

// ApproveDesignCommandHandler approves a design artifact and releases the
// order's work into production. Approval goes to the design tool first and
// is only recorded locally once the tool accepts it. Then, if the order has
// no jobs they are created; otherwise every job still QUEUED is moved to
// PREPRESS through the status engine.
type ApproveDesignCommandHandler struct {
	steps  *PipelineSteps
	engine *StatusEngine
}

func NewApproveDesignCommandHandler(steps *PipelineSteps, engine *StatusEngine) ApproveDesignCommandHandler {
	return ApproveDesignCommandHandler{steps: steps, engine: engine}
}

func (h ApproveDesignCommandHandler) Handle(ctx context.Context, cmd ApproveDesignCommand) (ApproveDesignResult, error) {
	if err := cmd.Validate(); err != nil {
		return ApproveDesignResult{}, err
	}

	artifact, err := h.steps.uowFactory.Create().DesignRepository().Get(ctx, cmd.DesignID())
	if err != nil {
		return ApproveDesignResult{}, err
	}

	orderID := artifact.OrderID()
	ctx, span := h.steps.span(ctx, "pipeline.approve", orderID)
	defer span.End()

	result := ApproveDesignResult{PipelineResult: PipelineResult{OrderID: orderID}}

	designStep := h.approve(ctx, artifact)
	result.Steps = append(result.Steps, designStep)
	if designStep.Status == StepFailed {
		result.Steps = append(result.Steps, skipped(StepJobs, "design not approved"))
		return result, nil
	}

	jobsStep, released := h.release(ctx, orderID)
	result.Steps = append(result.Steps, jobsStep)
	result.Released = released
	return result, nil
}

func (h ApproveDesignCommandHandler) approve(ctx context.Context, artifact *design.Artifact) StepResult {
	ctx, span := h.steps.span(ctx, "pipeline.step.design", artifact.OrderID())
	defer span.End()

	if artifact.IsApproved() {
		return h.steps.record(span, artifact.OrderID(), skipped(StepDesign, "already approved"))
	}

	if err := h.steps.designTool.SetArtifactStatus(ctx, artifact.ExternalID(), string(design.StatusApproved)); err != nil {
		span.RecordError(err)
		return h.steps.record(span, artifact.OrderID(), failed(StepDesign, fmt.Errorf("design tool: %w", err)))
	}

	if err := h.persistApproval(ctx, artifact); err != nil {
		span.RecordError(err)
		return h.steps.record(span, artifact.OrderID(), failed(StepDesign, err))
	}
	return h.steps.record(span, artifact.OrderID(), succeeded(StepDesign, "artifact "+artifact.ExternalID()+" approved"))
}

func (h ApproveDesignCommandHandler) persistApproval(ctx context.Context, artifact *design.Artifact) error {
	uow := h.steps.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	artifact.Approve(h.steps.now())
	if err := uow.DesignRepository().Update(ctx, artifact); err != nil {
		return err
	}
	return uow.Commit(ctx)
}

func (h ApproveDesignCommandHandler) release(ctx context.Context, orderID kernel.UUID) (StepResult, []MoveOutcome) {
	jobs, err := h.steps.uowFactory.Create().JobRepository().ListByOrder(ctx, orderID)
	if err != nil {
		return failed(StepJobs, err), nil
	}
	if len(jobs) == 0 {
		return h.steps.jobsStep(ctx, orderID), nil
	}

	var outcomes []MoveOutcome
	failures := 0
	for _, j := range jobs {
		if j.Status() != job.Queued {
			continue
		}
		moved, moveErr := h.engine.Move(ctx, j.ID(), job.Prepress, "")
		outcomes = append(outcomes, MoveOutcome{JobID: j.ID(), Result: moved, Err: moveErr})
		if moveErr != nil {
			failures++
		}
	}

	switch {
	case len(outcomes) == 0:
		return skipped(StepJobs, "no queued jobs"), nil
	case failures > 0:
		return StepResult{
			Step:   StepJobs,
			Status: StepFailed,
			Detail: fmt.Sprintf("released %d of %d queued jobs", len(outcomes)-failures, len(outcomes)),
		}, outcomes
	default:
		return succeeded(StepJobs, fmt.Sprintf("released %d queued jobs", len(outcomes))), outcomes
	}
}
