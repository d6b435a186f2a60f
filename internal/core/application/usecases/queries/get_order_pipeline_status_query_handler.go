package queries

import (
	"context"

	"printfloor/internal/core/domain/model/pipeline"
	"printfloor/internal/core/ports"
	"printfloor/internal/pkg/errs"
)

type GetOrderPipelineStatusQueryHandler struct {
	uowFactory ports.UnitOfWorkFactory
}

func NewGetOrderPipelineStatusQueryHandler(uowFactory ports.UnitOfWorkFactory) GetOrderPipelineStatusQueryHandler {
	return GetOrderPipelineStatusQueryHandler{uowFactory: uowFactory}
}

// Handle returns ObjectNotFound when none of intake, design or production
// knows the order.
func (h GetOrderPipelineStatusQueryHandler) Handle(
	ctx context.Context,
	query GetOrderPipelineStatusQuery,
) (GetOrderPipelineStatusQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderPipelineStatusQueryResponse{}, err
	}

	state, err := loadOrderState(ctx, h.uowFactory.Create(), query.OrderID())
	if err != nil {
		return GetOrderPipelineStatusQueryResponse{}, err
	}
	if state.Intake == nil && state.Design == nil && len(state.Jobs) == 0 {
		return GetOrderPipelineStatusQueryResponse{}, errs.NewObjectNotFoundError("order", query.OrderID().String())
	}

	resp := GetOrderPipelineStatusQueryResponse{
		OrderID:  query.OrderID(),
		Phase:    string(state.Phase()),
		Jobs:     summarizeJobs(state),
		Timeline: make([]TimelineEntryResponse, 0),
	}

	if r := state.Intake; r != nil {
		resp.Intake = &IntakeResponse{
			ID:     r.ID(),
			Code:   r.Code(),
			Status: r.Status().String(),
			SlotID: r.SlotID(),
		}
	}
	if a := state.Design; a != nil {
		resp.Design = &DesignResponse{
			ID:         a.ID(),
			ExternalID: a.ExternalID(),
			Status:     string(a.Status()),
			PageCount:  a.PageCount(),
		}
	}
	for _, e := range state.Timeline() {
		resp.Timeline = append(resp.Timeline, TimelineEntryResponse{Event: e.Event, At: e.At})
	}

	return resp, nil
}

func summarizeJobs(state pipeline.State) JobSummaryResponse {
	summary := JobSummaryResponse{
		Total:    len(state.Jobs),
		Pending:  len(state.PendingJobs()),
		ByStatus: make(map[string]int),
	}
	for _, j := range state.Jobs {
		summary.ByStatus[j.Status().String()]++
	}
	return summary
}
