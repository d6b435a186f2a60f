// Package ports defines the contracts between the production-floor core and
// the outside world: repositories and the unit of work on one side,
// collaborating systems and the event broadcaster on the other.
package ports

import (
	"context"
	"time"

	"printfloor/internal/core/domain/model/job"
	"printfloor/internal/core/domain/model/kernel"
)

// JobRepository defines the persistence contract for job aggregates.
type JobRepository interface {
	// Add persists a new job. The job must be valid.
	Add(ctx context.Context, aggregate *job.Job) error

	// Update persists changes to an existing job.
	Update(ctx context.Context, aggregate *job.Job) error

	// Get returns the job with id, or an *errs.ObjectNotFoundError.
	Get(ctx context.Context, id kernel.UUID) (*job.Job, error)

	// ListByOrder returns every job derived from an order, oldest first.
	ListByOrder(ctx context.Context, orderID kernel.UUID) ([]*job.Job, error)

	// ListByBatch returns the members of a gang sheet in position order.
	ListByBatch(ctx context.Context, batchID kernel.UUID) ([]*job.Job, error)

	// ListForBoard returns the jobs an operator board shows: every non-terminal
	// job, plus terminal jobs updated at or after purgeCutoff. An empty ownerID
	// means all owners.
	ListForBoard(ctx context.Context, ownerID string, purgeCutoff time.Time) ([]*job.Job, error)

	// ListInProduction returns jobs still on the floor: not terminal and not
	// yet handed off.
	ListInProduction(ctx context.Context) ([]*job.Job, error)

	// CountByStatus returns how many jobs are currently in status.
	CountByStatus(ctx context.Context, status job.Status) (int, error)
}
