package queries

import (
	"errors"
	"time"

	"printfloor/internal/core/domain/model/kernel"
	"printfloor/internal/pkg/guard"
)

var ErrGetOrderPipelineStatusQueryIsNotConstructed = errors.New(
	"GetOrderPipelineStatusQuery must be created via NewGetOrderPipelineStatusQuery constructor",
)

// GetOrderPipelineStatusQuery asks where one order stands across intake,
// design and production.
//
// Example:
//
//	query, _ := NewGetOrderPipelineStatusQuery(orderID)
//	status, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(status.Phase)
type GetOrderPipelineStatusQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetOrderPipelineStatusQuery(orderID kernel.UUID) (GetOrderPipelineStatusQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderPipelineStatusQuery{}, err
	}
	return GetOrderPipelineStatusQuery{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetOrderPipelineStatusQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderPipelineStatusQueryIsNotConstructed)
}

func (q GetOrderPipelineStatusQuery) OrderID() kernel.UUID { return q.orderID }

type TimelineEntryResponse struct {
	Event string
	At    time.Time
}

type IntakeResponse struct {
	ID     kernel.UUID
	Code   string
	Status string
	SlotID *kernel.UUID
}

type DesignResponse struct {
	ID         kernel.UUID
	ExternalID string
	Status     string
	PageCount  int
}

// JobSummaryResponse counts the order's jobs. Pending are those not yet
// handed off, cancelled ones included.
type JobSummaryResponse struct {
	Total    int
	Pending  int
	ByStatus map[string]int
}

type GetOrderPipelineStatusQueryResponse struct {
	OrderID  kernel.UUID
	Phase    string
	Intake   *IntakeResponse
	Design   *DesignResponse
	Jobs     JobSummaryResponse
	Timeline []TimelineEntryResponse
}
