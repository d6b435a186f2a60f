package queries

import (
	"errors"
	"time"

	"printfloor/internal/core/domain/model/kernel"
	"printfloor/internal/pkg/guard"
)

var ErrGetGangSheetQueryIsNotConstructed = errors.New(
	"GetGangSheetQuery must be created via NewGetGangSheetQuery constructor",
)

// GetGangSheetQuery fetches one batch with its member jobs in position order.
type GetGangSheetQuery struct {
	batchID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetGangSheetQuery(batchID kernel.UUID) (GetGangSheetQuery, error) {
	if err := batchID.Validate(); err != nil {
		return GetGangSheetQuery{}, err
	}
	return GetGangSheetQuery{batchID: batchID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetGangSheetQuery) Validate() error {
	return q.guard.Validate(ErrGetGangSheetQueryIsNotConstructed)
}

func (q GetGangSheetQuery) BatchID() kernel.UUID { return q.batchID }

// GangSheetSummary is the stored metrics of a batch.
type GangSheetSummary struct {
	ID          kernel.UUID
	SheetWidth  float64
	SheetHeight float64
	TotalArea   float64
	UsedArea    float64
	WasteArea   float64
	FillRate    float64
	MultiOrder  bool
	OrderCount  int
	JobCount    int
	CreatedAt   time.Time
}

type GangSheetMemberResponse struct {
	Position int
	JobID    kernel.UUID
	OrderID  kernel.UUID
	Title    string
	Width    float64
	Height   float64
	Status   string
}

type GetGangSheetQueryResponse struct {
	GangSheetSummary
	Members []GangSheetMemberResponse
}
