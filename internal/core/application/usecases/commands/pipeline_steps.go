package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"printfloor/internal/core/domain/model/design"
	"printfloor/internal/core/domain/model/intake"
	"printfloor/internal/core/domain/model/job"
	"printfloor/internal/core/domain/model/kernel"
	"printfloor/internal/core/domain/model/order"
	"printfloor/internal/core/domain/services"
	"printfloor/internal/core/ports"
	"printfloor/internal/pkg/errs"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Pipeline step names.
const (
	StepOrder  = "order"
	StepIntake = "intake"
	StepDesign = "design"
	StepJobs   = "jobs"
	StepSlot   = "slot"
)

type StepStatus string

const (
	StepSucceeded StepStatus = "succeeded"
	StepSkipped   StepStatus = "skipped"
	StepFailed    StepStatus = "failed"
)

// StepResult records the outcome of one pipeline step. A failed step never
// stops its siblings; its reason is kept in Detail.
type StepResult struct {
	Step   string
	Status StepStatus
	Detail string
}

func succeeded(step, detail string) StepResult {
	return StepResult{Step: step, Status: StepSucceeded, Detail: detail}
}

func skipped(step, detail string) StepResult {
	return StepResult{Step: step, Status: StepSkipped, Detail: detail}
}

func failed(step string, err error) StepResult {
	return StepResult{Step: step, Status: StepFailed, Detail: err.Error()}
}

// PipelineResult collects the step outcomes of one orchestrator call.
type PipelineResult struct {
	OrderID kernel.UUID
	Steps   []StepResult
}

// Failed reports whether any step failed.
func (r PipelineResult) Failed() bool {
	for _, s := range r.Steps {
		if s.Status == StepFailed {
			return true
		}
	}
	return false
}

// Step returns the result for a named step, if it ran.
func (r PipelineResult) Step(name string) (StepResult, bool) {
	for _, s := range r.Steps {
		if s.Step == name {
			return s, true
		}
	}
	return StepResult{}, false
}

// PipelineSteps holds the idempotent building blocks the pipeline commands
// are made of. Every step runs in its own transaction and is skipped when its
// outcome already exists, so re-running a command is safe.
type PipelineSteps struct {
	uowFactory  UoWFactory
	orderSource ports.OrderSource
	designTool  ports.DesignTool
	publisher   ports.EventPublisher
	factory     services.JobFactory
	tracer      trace.Tracer
	logger      *slog.Logger
	now         func() time.Time
}

func NewPipelineSteps(
	uowFactory UoWFactory,
	orderSource ports.OrderSource,
	designTool ports.DesignTool,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) *PipelineSteps {
	return &PipelineSteps{
		uowFactory:  uowFactory,
		orderSource: orderSource,
		designTool:  designTool,
		publisher:   publisher,
		factory:     services.NewJobFactory(),
		tracer:      otel.Tracer("printfloor/pipeline"),
		logger:      logger.With("component", "pipeline"),
		now:         time.Now,
	}
}

// span starts a span for an orchestrator operation or step.
func (p *PipelineSteps) span(ctx context.Context, name string, orderID kernel.UUID) (context.Context, trace.Span) {
	return p.tracer.Start(ctx, name, trace.WithAttributes(attribute.String("order.id", orderID.String())))
}

// record logs and traces a step outcome and returns it unchanged.
func (p *PipelineSteps) record(span trace.Span, orderID kernel.UUID, r StepResult) StepResult {
	span.SetAttributes(attribute.String("step.status", string(r.Status)))
	if r.Status == StepFailed {
		span.SetStatus(codes.Error, r.Detail)
		p.logger.Warn("pipeline step failed",
			"order_id", orderID.String(),
			"step", r.Step,
			"detail", r.Detail)
	}
	return r
}

func (p *PipelineSteps) fetchOrder(ctx context.Context, orderID kernel.UUID) (order.Order, StepResult) {
	ctx, span := p.span(ctx, "pipeline.step.order", orderID)
	defer span.End()

	o, err := p.orderSource.GetOrder(ctx, orderID)
	if err != nil {
		span.RecordError(err)
		return order.Order{}, p.record(span, orderID, failed(StepOrder, err))
	}
	return o, p.record(span, orderID, succeeded(StepOrder, fmt.Sprintf("%d line items", len(o.Items))))
}

// ensureIntake creates the order's intake record unless it has one.
func (p *PipelineSteps) ensureIntake(ctx context.Context, orderID kernel.UUID, ownerID string) StepResult {
	ctx, span := p.span(ctx, "pipeline.step.intake", orderID)
	defer span.End()

	r, err := p.createIntake(ctx, orderID, ownerID)
	if err != nil {
		span.RecordError(err)
		return p.record(span, orderID, failed(StepIntake, err))
	}
	return p.record(span, orderID, r)
}

func (p *PipelineSteps) createIntake(ctx context.Context, orderID kernel.UUID, ownerID string) (StepResult, error) {
	uow := p.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return StepResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.IntakeRepository()
	existing, err := repo.GetByOrder(ctx, orderID)
	if err == nil {
		return skipped(StepIntake, "intake record "+existing.Code()+" exists"), nil
	}
	if !errors.Is(err, errs.ErrObjectNotFound) {
		return StepResult{}, err
	}

	record, err := intake.NewRecord(kernel.NewUUID(), orderID, ownerID, p.now())
	if err != nil {
		return StepResult{}, err
	}
	if err = repo.Add(ctx, record); err != nil {
		return StepResult{}, err
	}
	if err = uow.Commit(ctx); err != nil {
		return StepResult{}, err
	}
	return succeeded(StepIntake, "created intake record "+record.Code()), nil
}

// ensureDesign asks the design tool for an artifact unless the order has one.
func (p *PipelineSteps) ensureDesign(ctx context.Context, orderID kernel.UUID) StepResult {
	ctx, span := p.span(ctx, "pipeline.step.design", orderID)
	defer span.End()

	r, err := p.createDesign(ctx, orderID)
	if err != nil {
		span.RecordError(err)
		return p.record(span, orderID, failed(StepDesign, err))
	}
	return p.record(span, orderID, r)
}

func (p *PipelineSteps) createDesign(ctx context.Context, orderID kernel.UUID) (StepResult, error) {
	existing, err := p.uowFactory.Create().DesignRepository().GetByOrder(ctx, orderID)
	if err == nil {
		return skipped(StepDesign, "artifact "+existing.ExternalID()+" exists"), nil
	}
	if !errors.Is(err, errs.ErrObjectNotFound) {
		return StepResult{}, err
	}

	receipt, err := p.designTool.CreateArtifact(ctx, orderID)
	if err != nil {
		return StepResult{}, fmt.Errorf("design tool: %w", err)
	}

	artifact, err := design.NewArtifact(kernel.NewUUID(), orderID, receipt.ExternalID, len(receipt.Pages), p.now())
	if err != nil {
		return StepResult{}, err
	}

	uow := p.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return StepResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.DesignRepository().Add(ctx, artifact); err != nil {
		return StepResult{}, err
	}
	if err = uow.Commit(ctx); err != nil {
		return StepResult{}, err
	}
	return succeeded(StepDesign, fmt.Sprintf("created artifact %s with %d pages", receipt.ExternalID, len(receipt.Pages))), nil
}

// ensureJobs derives the order's jobs unless it already has some.
func (p *PipelineSteps) ensureJobs(ctx context.Context, o order.Order) StepResult {
	ctx, span := p.span(ctx, "pipeline.step.jobs", o.ID)
	defer span.End()

	result, existing, err := p.createJobs(ctx, o)
	switch {
	case err != nil:
		span.RecordError(err)
		return p.record(span, o.ID, failed(StepJobs, err))
	case existing:
		return p.record(span, o.ID, skipped(StepJobs, fmt.Sprintf("%d jobs exist", len(result.Jobs))))
	case result.Created == 0:
		return p.record(span, o.ID, succeeded(StepJobs, "no printable items"))
	default:
		return p.record(span, o.ID, succeeded(StepJobs, fmt.Sprintf("created %d jobs", result.Created)))
	}
}

// createJobs derives and stores jobs for o. When the order already has jobs
// they are returned with existing set and nothing is created.
func (p *PipelineSteps) createJobs(ctx context.Context, o order.Order) (services.JobFactoryResult, bool, error) {
	uow := p.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return services.JobFactoryResult{}, false, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.JobRepository()
	current, err := repo.ListByOrder(ctx, o.ID)
	if err != nil {
		return services.JobFactoryResult{}, false, err
	}
	if len(current) > 0 {
		return services.JobFactoryResult{Jobs: current}, true, nil
	}

	at := p.now()
	result, err := p.factory.CreateJobs(o, at)
	if err != nil {
		return services.JobFactoryResult{}, false, err
	}
	if result.Created == 0 {
		return result, false, nil
	}

	for _, j := range result.Jobs {
		if err = repo.Add(ctx, j); err != nil {
			return services.JobFactoryResult{}, false, err
		}
	}

	depth, err := repo.CountByStatus(ctx, job.Queued)
	if err != nil {
		return services.JobFactoryResult{}, false, err
	}

	if err = uow.Commit(ctx); err != nil {
		return services.JobFactoryResult{}, false, err
	}

	for _, j := range result.Jobs {
		p.publisher.Publish(jobCreatedEvent(j, at), jobTopics(j)...)
	}
	p.publisher.Publish(queueDepthEvent(depth, at), ports.FloorTopic)

	return result, false, nil
}

// startProcessing moves a pending intake record to processing.
func (p *PipelineSteps) startProcessing(ctx context.Context, intakeID kernel.UUID, orderID kernel.UUID) StepResult {
	ctx, span := p.span(ctx, "pipeline.step.intake", orderID)
	defer span.End()

	r, err := p.advanceIntake(ctx, orderID)
	if err != nil {
		span.RecordError(err)
		return p.record(span, orderID, failed(StepIntake, err))
	}
	span.SetAttributes(attribute.String("intake.id", intakeID.String()))
	return p.record(span, orderID, r)
}

func (p *PipelineSteps) advanceIntake(ctx context.Context, orderID kernel.UUID) (StepResult, error) {
	uow := p.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return StepResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.IntakeRepository()
	record, err := repo.GetByOrder(ctx, orderID)
	if err != nil {
		return StepResult{}, err
	}
	if !record.StartProcessing() {
		return skipped(StepIntake, "intake already "+record.Status().String()), nil
	}
	if err = repo.Update(ctx, record); err != nil {
		return StepResult{}, err
	}
	if err = uow.Commit(ctx); err != nil {
		return StepResult{}, err
	}
	return succeeded(StepIntake, "intake processing"), nil
}

// jobsStep ensures the order has jobs, fetching the order from the storefront
// only when there are none yet.
func (p *PipelineSteps) jobsStep(ctx context.Context, orderID kernel.UUID) StepResult {
	current, err := p.uowFactory.Create().JobRepository().ListByOrder(ctx, orderID)
	if err != nil {
		return failed(StepJobs, err)
	}
	if len(current) > 0 {
		return skipped(StepJobs, fmt.Sprintf("%d jobs exist", len(current)))
	}

	o, orderStep := p.fetchOrder(ctx, orderID)
	if orderStep.Status == StepFailed {
		return failed(StepJobs, fmt.Errorf("order unavailable: %s", orderStep.Detail))
	}
	return p.ensureJobs(ctx, o)
}
