package commands

import (
	"context"
	"time"

	"printfloor/internal/core/domain/model/job"
	"printfloor/internal/core/ports"
)

// AssignJobToPrinterCommandHandler puts a job on a printer after checking the
// printer can take it. A printer that is too narrow, lacks the job's product
// type, or is offline or in maintenance yields *errs.CapabilityMismatchError.
//
// The change is broadcast as job.moved with an unchanged status so the
// printer's display picks the job up.
type AssignJobToPrinterCommandHandler struct {
	uowFactory UoWFactory
	publisher  ports.EventPublisher
}

func NewAssignJobToPrinterCommandHandler(uowFactory UoWFactory, publisher ports.EventPublisher) AssignJobToPrinterCommandHandler {
	return AssignJobToPrinterCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

func (h AssignJobToPrinterCommandHandler) Handle(ctx context.Context, cmd AssignJobToPrinterCommand) (*job.Job, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	jobRepo := uow.JobRepository()
	j, err := jobRepo.Get(ctx, cmd.JobID())
	if err != nil {
		return nil, err
	}

	p, err := uow.PrinterRepository().Get(ctx, cmd.PrinterID())
	if err != nil {
		return nil, err
	}

	if err = p.CanPrint(j); err != nil {
		return nil, err
	}

	at := time.Now()
	if err = j.AssignPrinter(p.ID(), at); err != nil {
		return nil, err
	}

	if err = jobRepo.Update(ctx, j); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.publisher.Publish(jobMovedEvent(j, j.Status(), at), jobTopics(j)...)
	return j, nil
}
