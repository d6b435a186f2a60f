package jobrepo

import (
	"context"
	"errors"
	"time"

	"printfloor/internal/core/domain/model/job"
	"printfloor/internal/core/domain/model/kernel"
	"printfloor/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormJobRepository implements ports.JobRepository using GORM.
type GormJobRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormJobRepository(db *gorm.DB, tracker aggregateTracker) *GormJobRepository {
	return &GormJobRepository{
		db:      db,
		tracker: tracker,
	}
}

func (r *GormJobRepository) Add(ctx context.Context, aggregate *job.Job) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update writes every column, so cleared stage times and printer ids are
// persisted as NULL.
func (r *GormJobRepository) Update(ctx context.Context, aggregate *job.Job) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&JobDTO{}).Where("id = ?", dto.ID).Select("*").Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("job", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormJobRepository) Get(ctx context.Context, id kernel.UUID) (*job.Job, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto JobDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("job", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

func (r *GormJobRepository) ListByOrder(ctx context.Context, orderID kernel.UUID) ([]*job.Job, error) {
	return r.find(r.db.WithContext(ctx).
		Where("order_id = ?", orderID.Bytes()).
		Order("queued_at, id"))
}

func (r *GormJobRepository) ListByBatch(ctx context.Context, batchID kernel.UUID) ([]*job.Job, error) {
	return r.find(r.db.WithContext(ctx).
		Where("batch_id = ?", batchID.Bytes()).
		Order("position"))
}

func (r *GormJobRepository) ListForBoard(ctx context.Context, ownerID string, purgeCutoff time.Time) ([]*job.Job, error) {
	q := r.db.WithContext(ctx).
		Where("status NOT IN ? OR updated_at >= ?", terminalStatuses(), purgeCutoff)
	if ownerID != "" {
		q = q.Where("owner_id = ?", ownerID)
	}
	return r.find(q.Order("queued_at, id"))
}

func (r *GormJobRepository) ListInProduction(ctx context.Context) ([]*job.Job, error) {
	settled := append(terminalStatuses(), job.Ready.String(), job.PickedUp.String(), job.Shipped.String())
	return r.find(r.db.WithContext(ctx).
		Where("status NOT IN ?", settled).
		Order("queued_at, id"))
}

func (r *GormJobRepository) CountByStatus(ctx context.Context, status job.Status) (int, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&JobDTO{}).Where("status = ?", status.String()).Count(&count).Error; err != nil {
		return 0, err
	}
	return int(count), nil
}

func (r *GormJobRepository) find(q *gorm.DB) ([]*job.Job, error) {
	var dtos []JobDTO
	if err := q.Find(&dtos).Error; err != nil {
		return nil, err
	}

	jobs := make([]*job.Job, 0, len(dtos))
	for _, dto := range dtos {
		j, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, j)
	}
	return jobs, nil
}

func terminalStatuses() []string {
	return []string{job.Completed.String(), job.Cancelled.String()}
}
