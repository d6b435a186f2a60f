package queries

import (
	"context"
	"errors"

	"printfloor/internal/core/domain/model/kernel"
	"printfloor/internal/core/domain/model/pipeline"
	"printfloor/internal/core/ports"
	"printfloor/internal/pkg/errs"
)

// loadOrderState reads everything the three subsystems hold for an order.
// A missing intake record or design artifact leaves the field nil.
func loadOrderState(ctx context.Context, uow ports.UnitOfWork, orderID kernel.UUID) (pipeline.State, error) {
	var state pipeline.State

	record, err := uow.IntakeRepository().GetByOrder(ctx, orderID)
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
	case err != nil:
		return pipeline.State{}, err
	default:
		state.Intake = record
	}

	artifact, err := uow.DesignRepository().GetByOrder(ctx, orderID)
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
	case err != nil:
		return pipeline.State{}, err
	default:
		state.Design = artifact
	}

	state.Jobs, err = uow.JobRepository().ListByOrder(ctx, orderID)
	if err != nil {
		return pipeline.State{}, err
	}

	return state, nil
}
