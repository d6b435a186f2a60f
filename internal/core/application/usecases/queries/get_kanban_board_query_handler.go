package queries

import (
	"context"

	"printfloor/internal/core/domain/services"
	"printfloor/internal/core/ports"
)

// GetKanbanBoardQueryHandler loads the non-purged jobs and projects them onto
// the board.
type GetKanbanBoardQueryHandler struct {
	uowFactory ports.UnitOfWorkFactory
	projector  services.KanbanProjector
}

func NewGetKanbanBoardQueryHandler(
	uowFactory ports.UnitOfWorkFactory,
	projector services.KanbanProjector,
) GetKanbanBoardQueryHandler {
	return GetKanbanBoardQueryHandler{uowFactory: uowFactory, projector: projector}
}

func (h GetKanbanBoardQueryHandler) Handle(
	ctx context.Context,
	query GetKanbanBoardQuery,
) (GetKanbanBoardQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetKanbanBoardQueryResponse{}, err
	}

	jobs, err := h.uowFactory.Create().JobRepository().
		ListForBoard(ctx, query.OwnerID(), h.projector.PurgeCutoff(query.AsOf()))
	if err != nil {
		return GetKanbanBoardQueryResponse{}, err
	}

	board := h.projector.Project(jobs, query.AsOf())

	resp := GetKanbanBoardQueryResponse{
		AsOf:    board.AsOf,
		Columns: make([]KanbanColumnResponse, 0, len(board.Columns)),
	}
	for _, col := range board.Columns {
		cards := make([]KanbanCardResponse, 0, len(col.Rows))
		for _, row := range col.Rows {
			j := row.Job
			cards = append(cards, KanbanCardResponse{
				JobID:       j.ID(),
				OrderID:     j.OrderID(),
				OwnerID:     j.OwnerID(),
				Title:       j.Title(),
				Width:       j.Size().Width(),
				Height:      j.Size().Height(),
				ProductType: j.ProductType().String(),
				Quantity:    j.Quantity(),
				Priority:    j.Priority().String(),
				PrinterID:   j.PrinterID(),
				BatchID:     j.BatchID(),
				Position:    j.Position(),
				Operator:    j.Operator(),
				QueuedAt:    j.QueuedAt(),
				Wait:        row.Wait,
				Overdue:     row.Overdue,
			})
		}
		resp.Columns = append(resp.Columns, KanbanColumnResponse{Status: col.Status.String(), Cards: cards})
	}

	return resp, nil
}
