// Package queries contains read operations for the production floor: the
// kanban board, statistics, gang sheets and the order pipeline views.
package queries

import (
	"errors"
	"strings"
	"time"

	"printfloor/internal/core/domain/model/kernel"
	"printfloor/internal/pkg/errs"
	"printfloor/internal/pkg/guard"
)

var ErrGetKanbanBoardQueryIsNotConstructed = errors.New(
	"GetKanbanBoardQuery must be created via NewGetKanbanBoardQuery constructor",
)

// GetKanbanBoardQuery asks for the operator board as of a given instant,
// optionally narrowed to one owner's jobs.
//
// Example:
//
//	query, err := NewGetKanbanBoardQuery("", time.Now())
//	if err != nil {
//	    return err
//	}
//	board, err := handler.Handle(ctx, query)
type GetKanbanBoardQuery struct {
	ownerID string
	asOf    time.Time

	guard guard.ConstructorGuard
}

// NewGetKanbanBoardQuery builds the query. An empty ownerID means every owner.
func NewGetKanbanBoardQuery(ownerID string, asOf time.Time) (GetKanbanBoardQuery, error) {
	if asOf.IsZero() {
		return GetKanbanBoardQuery{}, errs.NewValueIsRequiredError("asOf")
	}
	return GetKanbanBoardQuery{
		ownerID: strings.TrimSpace(ownerID),
		asOf:    asOf,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (q GetKanbanBoardQuery) Validate() error {
	return q.guard.Validate(ErrGetKanbanBoardQueryIsNotConstructed)
}

func (q GetKanbanBoardQuery) OwnerID() string { return q.ownerID }
func (q GetKanbanBoardQuery) AsOf() time.Time { return q.asOf }

// GetKanbanBoardQueryResponse is the board with one column per status, in
// status order. Empty columns are included.
type GetKanbanBoardQueryResponse struct {
	AsOf    time.Time
	Columns []KanbanColumnResponse
}

type KanbanColumnResponse struct {
	Status string
	Cards  []KanbanCardResponse
}

// KanbanCardResponse is one job on the board.
type KanbanCardResponse struct {
	JobID       kernel.UUID
	OrderID     kernel.UUID
	OwnerID     string
	Title       string
	Width       float64
	Height      float64
	ProductType string
	Quantity    int
	Priority    string
	PrinterID   *kernel.UUID
	BatchID     *kernel.UUID
	Position    int
	Operator    string
	QueuedAt    time.Time
	Wait        time.Duration
	Overdue     bool
}
