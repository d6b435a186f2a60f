package ports

import (
	"context"

	"printfloor/internal/core/domain/model/design"
	"printfloor/internal/core/domain/model/kernel"
)

// DesignRepository stores the local record of design-tool artifacts.
type DesignRepository interface {
	Add(ctx context.Context, aggregate *design.Artifact) error
	Update(ctx context.Context, aggregate *design.Artifact) error
	Get(ctx context.Context, id kernel.UUID) (*design.Artifact, error)
	GetByOrder(ctx context.Context, orderID kernel.UUID) (*design.Artifact, error)
}
