package queries

import (
	"context"

	"printfloor/internal/core/domain/model/pipeline"
	"printfloor/internal/core/ports"
)

type GetPipelineDashboardQueryHandler struct {
	uowFactory ports.UnitOfWorkFactory
}

func NewGetPipelineDashboardQueryHandler(uowFactory ports.UnitOfWorkFactory) GetPipelineDashboardQueryHandler {
	return GetPipelineDashboardQueryHandler{uowFactory: uowFactory}
}

func (h GetPipelineDashboardQueryHandler) Handle(
	ctx context.Context,
	query GetPipelineDashboardQuery,
) (GetPipelineDashboardQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetPipelineDashboardQueryResponse{}, err
	}

	uow := h.uowFactory.Create()

	records, err := uow.IntakeRepository().ListInFlight(ctx)
	if err != nil {
		return GetPipelineDashboardQueryResponse{}, err
	}

	resp := GetPipelineDashboardQueryResponse{
		PhaseCounts: make(map[string]int),
		Rows:        make([]DashboardRowResponse, 0, len(records)),
	}
	for _, p := range pipeline.AllPhases() {
		resp.PhaseCounts[string(p)] = 0
	}

	for _, r := range records {
		state, stateErr := loadOrderState(ctx, uow, r.OrderID())
		if stateErr != nil {
			return GetPipelineDashboardQueryResponse{}, stateErr
		}

		phase := string(state.Phase())
		resp.PhaseCounts[phase]++
		resp.Rows = append(resp.Rows, DashboardRowResponse{
			OrderID:      r.OrderID(),
			OwnerID:      r.OwnerID(),
			Code:         r.Code(),
			IntakeStatus: r.Status().String(),
			Phase:        phase,
			SlotID:       r.SlotID(),
			Jobs:         summarizeJobs(state),
			CreatedAt:    r.CreatedAt(),
		})
	}

	return resp, nil
}
