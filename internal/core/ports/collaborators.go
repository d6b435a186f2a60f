package ports

import (
	"context"

	"printfloor/internal/core/domain/model/kernel"
	"printfloor/internal/core/domain/model/order"
)

// OrderSource reads orders from the storefront.
type OrderSource interface {
	// GetOrder returns the order snapshot, or an *errs.ObjectNotFoundError.
	GetOrder(ctx context.Context, orderID kernel.UUID) (order.Order, error)
}

// ArtifactReceipt is what the design tool returns for a new artifact.
type ArtifactReceipt struct {
	ExternalID string
	Pages      []string
}

// DesignTool is the external design collaborator.
type DesignTool interface {
	CreateArtifact(ctx context.Context, orderID kernel.UUID) (ArtifactReceipt, error)
	SetArtifactStatus(ctx context.Context, externalID string, status string) error
}

// Marketing receives lifecycle events for customer messaging. Calls are best
// effort; callers log failures and carry on.
type Marketing interface {
	TrackEvent(ctx context.Context, ownerID string, event string, properties map[string]any) error
}
