package ports

import (
	"context"

	"printfloor/internal/core/domain/model/intake"
	"printfloor/internal/core/domain/model/kernel"
)

// IntakeRepository defines the persistence contract for intake records.
type IntakeRepository interface {
	Add(ctx context.Context, aggregate *intake.Record) error
	Update(ctx context.Context, aggregate *intake.Record) error

	// GetByOrder returns the order's intake record, or an *errs.ObjectNotFoundError.
	GetByOrder(ctx context.Context, orderID kernel.UUID) (*intake.Record, error)

	// GetByCode resolves a scanned code. Codes are matched after intake.NormalizeCode.
	GetByCode(ctx context.Context, code string) (*intake.Record, error)

	// ListInFlight returns every record not yet completed, oldest first.
	ListInFlight(ctx context.Context) ([]*intake.Record, error)
}

// SlotRepository reads storage slots together with their current occupancy.
type SlotRepository interface {
	Add(ctx context.Context, slot *intake.Slot) error

	// ListLoads returns every slot with the number of ready records parked in it.
	ListLoads(ctx context.Context) ([]intake.SlotLoad, error)
}
