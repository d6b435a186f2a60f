package commands

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"printfloor/internal/core/domain/model/job"
	"printfloor/internal/core/domain/model/kernel"
	"printfloor/internal/core/ports"
	"printfloor/internal/pkg/errs"
)

// MoveResult reports a committed status change. NotificationError is set when
// the lifecycle notification to marketing failed; the move itself stands.
type MoveResult struct {
	Job               *job.Job
	From              job.Status
	To                job.Status
	NotificationError string
}

// StatusEngine executes job status changes: it validates the move against the
// status graph, persists it in its own transaction together with any batch or
// intake completion it causes, and after commit sends the lifecycle
// notification and broadcasts the change.
//
// Concurrent moves of the same job are not serialised. Each reads, validates
// and writes without a version check, so the last write wins.
type StatusEngine struct {
	uowFactory UoWFactory
	marketing  ports.Marketing
	publisher  ports.EventPublisher
	logger     *slog.Logger
	now        func() time.Time
}

func NewStatusEngine(
	uowFactory UoWFactory,
	marketing ports.Marketing,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) *StatusEngine {
	return &StatusEngine{
		uowFactory: uowFactory,
		marketing:  marketing,
		publisher:  publisher,
		logger:     logger.With("component", "status_engine"),
		now:        time.Now,
	}
}

// Move advances a job to target.
func (e *StatusEngine) Move(ctx context.Context, jobID kernel.UUID, target job.Status, operator string) (MoveResult, error) {
	return e.apply(ctx, jobID, func(j *job.Job, at time.Time) error {
		return j.MoveTo(target, operator, at)
	})
}

// RecordQC applies an inspection result to a job in QC_CHECK.
func (e *StatusEngine) RecordQC(
	ctx context.Context,
	jobID kernel.UUID,
	result job.QCResult,
	notes, operator string,
) (MoveResult, error) {
	return e.apply(ctx, jobID, func(j *job.Job, at time.Time) error {
		return j.RecordQC(result, notes, operator, at)
	})
}

type moveEffects struct {
	queueDepth   *int
	batchMembers []*job.Job
}

func (e *StatusEngine) apply(
	ctx context.Context,
	jobID kernel.UUID,
	mutate func(j *job.Job, at time.Time) error,
) (MoveResult, error) {
	uow := e.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return MoveResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.JobRepository()
	j, err := repo.Get(ctx, jobID)
	if err != nil {
		return MoveResult{}, err
	}

	from := j.Status()
	at := e.now()
	if err = mutate(j, at); err != nil {
		return MoveResult{}, err
	}

	if err = repo.Update(ctx, j); err != nil {
		return MoveResult{}, err
	}

	effects, err := collectEffects(ctx, uow, j, from, at)
	if err != nil {
		return MoveResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return MoveResult{}, err
	}

	e.broadcast(j, from, at, effects)

	result := MoveResult{Job: j, From: from, To: j.Status()}
	if from != j.Status() && j.Status().IsLifecycleMilestone() {
		result.NotificationError = e.notify(ctx, j)
	}
	return result, nil
}

// collectEffects applies, inside the transaction, what a move implies beyond
// the job itself:
//   - the new queue depth when QUEUED was entered or left
//   - batch completion when this move was the last one off the printer
//   - intake completion when the order's last job left the building
func collectEffects(ctx context.Context, uow UoW, j *job.Job, from job.Status, at time.Time) (moveEffects, error) {
	var effects moveEffects
	if from == j.Status() {
		return effects, nil
	}

	repo := uow.JobRepository()
	if from == job.Queued || j.Status() == job.Queued {
		depth, err := repo.CountByStatus(ctx, job.Queued)
		if err != nil {
			return moveEffects{}, err
		}
		effects.queueDepth = &depth
	}

	members, err := completeBatch(ctx, uow, j, from, at)
	if err != nil {
		return moveEffects{}, err
	}
	effects.batchMembers = members

	if err = completeIntake(ctx, uow, j, at); err != nil {
		return moveEffects{}, err
	}
	return effects, nil
}

// completeBatch stamps j's gang sheet complete once no member is still
// waiting on or in PRINTING, counting cancelled members as done. It returns
// the members when this move completed the batch, nil otherwise; a batch is
// completed at most once, so a reprint back-edge does not re-announce it.
func completeBatch(ctx context.Context, uow UoW, j *job.Job, from job.Status, at time.Time) ([]*job.Job, error) {
	to := j.Status()
	if j.BatchID() == nil || from.HasLeftPrinting() || !(to.HasLeftPrinting() || to == job.Cancelled) {
		return nil, nil
	}

	members, err := uow.JobRepository().ListByBatch(ctx, *j.BatchID())
	if err != nil {
		return nil, err
	}
	for _, m := range members {
		status := m.Status()
		if m.IsEqual(j) {
			status = to
		}
		if !status.HasLeftPrinting() && status != job.Cancelled {
			return nil, nil
		}
	}

	sheets := uow.GangSheetRepository()
	batch, err := sheets.Get(ctx, *j.BatchID())
	if err != nil {
		return nil, err
	}
	if !batch.Complete(at) {
		return nil, nil
	}
	if err = sheets.Update(ctx, batch); err != nil {
		return nil, err
	}
	return members, nil
}

// completeIntake closes the order's intake record, freeing its shelf slot,
// once every job of the order has been collected, shipped or cancelled.
// Orders that never went through intake are left alone.
func completeIntake(ctx context.Context, uow UoW, j *job.Job, at time.Time) error {
	if !j.Status().HasLeftBuilding() {
		return nil
	}

	siblings, err := uow.JobRepository().ListByOrder(ctx, j.OrderID())
	if err != nil {
		return err
	}
	for _, s := range siblings {
		status := s.Status()
		if s.IsEqual(j) {
			status = j.Status()
		}
		if !status.HasLeftBuilding() && status != job.Cancelled {
			return nil
		}
	}

	intakes := uow.IntakeRepository()
	record, err := intakes.GetByOrder(ctx, j.OrderID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if !record.Complete(at) {
		return nil
	}
	return intakes.Update(ctx, record)
}

func (e *StatusEngine) broadcast(j *job.Job, from job.Status, at time.Time, effects moveEffects) {
	e.publisher.Publish(jobMovedEvent(j, from, at), jobTopics(j)...)

	if effects.queueDepth != nil {
		e.publisher.Publish(queueDepthEvent(*effects.queueDepth, at), ports.FloorTopic)
	}
	if effects.batchMembers != nil {
		e.publisher.Publish(batchCompleteEvent(*j.BatchID(), effects.batchMembers, at), ports.FloorTopic)
	}
}

// notify sends the lifecycle event for j's current status. A failure is
// logged and returned as text for the caller's result.
func (e *StatusEngine) notify(ctx context.Context, j *job.Job) string {
	event := "job_" + strings.ToLower(j.Status().String())
	err := e.marketing.TrackEvent(ctx, j.OwnerID(), event, map[string]any{
		"job_id":       j.ID().String(),
		"order_id":     j.OrderID().String(),
		"title":        j.Title(),
		"product_type": j.ProductType().String(),
		"status":       j.Status().String(),
	})
	if err != nil {
		e.logger.Warn("lifecycle notification failed",
			"job_id", j.ID().String(),
			"event", event,
			"error", err)
		return err.Error()
	}
	return ""
}
