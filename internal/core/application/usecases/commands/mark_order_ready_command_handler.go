package commands

import (
	"context"
	"errors"
	"time"

	"printfloor/internal/core/domain/model/intake"
	"printfloor/internal/core/domain/model/job"
	"printfloor/internal/core/domain/model/pipeline"
)

var ErrNoActiveSlot = errors.New("no active storage slot")

// MarkOrderReadyResult reports whether the order was marked ready. When it
// was not, Pending holds exactly the jobs still in production and Reason
// says why; nothing was changed.
type MarkOrderReadyResult struct {
	Ready   bool
	Reason  string
	Pending []*job.Job
	Intake  *intake.Record
	Slot    *intake.Slot
}

// MarkOrderReadyCommandHandler parks a finished order for pickup. Every job
// must be READY, PICKED_UP, SHIPPED or COMPLETED. The intake record then goes
// to the active storage slot holding the fewest ready orders (ties by label)
// and becomes ready.
type MarkOrderReadyCommandHandler struct {
	uowFactory UoWFactory
}

func NewMarkOrderReadyCommandHandler(uowFactory UoWFactory) MarkOrderReadyCommandHandler {
	return MarkOrderReadyCommandHandler{uowFactory: uowFactory}
}

func (h MarkOrderReadyCommandHandler) Handle(ctx context.Context, cmd MarkOrderReadyCommand) (MarkOrderReadyResult, error) {
	if err := cmd.Validate(); err != nil {
		return MarkOrderReadyResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return MarkOrderReadyResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	jobs, err := uow.JobRepository().ListByOrder(ctx, cmd.OrderID())
	if err != nil {
		return MarkOrderReadyResult{}, err
	}
	if len(jobs) == 0 {
		return MarkOrderReadyResult{Reason: "order has no jobs"}, nil
	}
	if pending := (pipeline.State{Jobs: jobs}).PendingJobs(); len(pending) > 0 {
		return MarkOrderReadyResult{Reason: "jobs still in production", Pending: pending}, nil
	}

	intakeRepo := uow.IntakeRepository()
	record, err := intakeRepo.GetByOrder(ctx, cmd.OrderID())
	if err != nil {
		return MarkOrderReadyResult{}, err
	}
	if record.Status() == intake.StatusReady && record.SlotID() != nil {
		return MarkOrderReadyResult{Ready: true, Reason: "already ready", Intake: record}, nil
	}

	loads, err := uow.SlotRepository().ListLoads(ctx)
	if err != nil {
		return MarkOrderReadyResult{}, err
	}
	slot := intake.LeastLoaded(loads)
	if slot == nil {
		return MarkOrderReadyResult{}, ErrNoActiveSlot
	}

	if err = record.MarkReady(slot, time.Now()); err != nil {
		return MarkOrderReadyResult{}, err
	}
	if err = intakeRepo.Update(ctx, record); err != nil {
		return MarkOrderReadyResult{}, err
	}
	if err = uow.Commit(ctx); err != nil {
		return MarkOrderReadyResult{}, err
	}

	return MarkOrderReadyResult{Ready: true, Intake: record, Slot: slot}, nil
}
