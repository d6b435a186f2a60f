package queries

import (
	"errors"
	"time"

	"printfloor/internal/core/domain/model/kernel"
	"printfloor/internal/pkg/guard"
)

var ErrGetPipelineDashboardQueryIsNotConstructed = errors.New(
	"GetPipelineDashboardQuery must be created via NewGetPipelineDashboardQuery constructor",
)

// GetPipelineDashboardQuery lists every order whose intake is not completed.
type GetPipelineDashboardQuery struct {
	guard guard.ConstructorGuard
}

func NewGetPipelineDashboardQuery() GetPipelineDashboardQuery {
	return GetPipelineDashboardQuery{guard: guard.NewConstructorGuard()}
}

func (q GetPipelineDashboardQuery) Validate() error {
	return q.guard.Validate(ErrGetPipelineDashboardQueryIsNotConstructed)
}

type DashboardRowResponse struct {
	OrderID      kernel.UUID
	OwnerID      string
	Code         string
	IntakeStatus string
	Phase        string
	SlotID       *kernel.UUID
	Jobs         JobSummaryResponse
	CreatedAt    time.Time
}

// GetPipelineDashboardQueryResponse has a count for every phase, zero included.
type GetPipelineDashboardQueryResponse struct {
	PhaseCounts map[string]int
	Rows        []DashboardRowResponse
}
