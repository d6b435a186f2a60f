package ports

import (
	"context"

	"printfloor/internal/core/domain/model/gangsheet"
	"printfloor/internal/core/domain/model/kernel"
)

// GangSheetRepository stores gang sheet batches.
type GangSheetRepository interface {
	Add(ctx context.Context, aggregate *gangsheet.Batch) error
	// Update persists the completion stamp; membership and metrics are never rewritten.
	Update(ctx context.Context, aggregate *gangsheet.Batch) error
	Get(ctx context.Context, id kernel.UUID) (*gangsheet.Batch, error)
}
