package commands

import (
	"context"
	"time"

	"printfloor/internal/core/domain/model/gangsheet"
	"printfloor/internal/core/domain/model/job"
	"printfloor/internal/core/domain/model/kernel"
	"printfloor/internal/core/domain/services"
)

// CreateGangSheetCommandHandler stores a new gang sheet and places its member
// jobs on it, all in one transaction. Unknown job ids fail the whole command
// with *errs.ObjectNotFoundError.
type CreateGangSheetCommandHandler struct {
	uowFactory UoWFactory
	packer     services.GangSheetPacker
}

func NewCreateGangSheetCommandHandler(uowFactory UoWFactory) CreateGangSheetCommandHandler {
	return CreateGangSheetCommandHandler{
		uowFactory: uowFactory,
		packer:     services.NewGangSheetPacker(),
	}
}

func (h CreateGangSheetCommandHandler) Handle(ctx context.Context, cmd CreateGangSheetCommand) (*gangsheet.Batch, error) {
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
	jobs := make([]*job.Job, 0, len(cmd.JobIDs()))
	for _, id := range cmd.JobIDs() {
		j, err := jobRepo.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, j)
	}

	batch, err := h.packer.Pack(kernel.NewUUID(), cmd.Sheet(), jobs, time.Now())
	if err != nil {
		return nil, err
	}

	if err = uow.GangSheetRepository().Add(ctx, batch); err != nil {
		return nil, err
	}

	for _, j := range jobs {
		if err = jobRepo.Update(ctx, j); err != nil {
			return nil, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return batch, nil
}
