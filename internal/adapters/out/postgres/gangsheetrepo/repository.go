package gangsheetrepo

import (
	"context"
	"errors"

	"printfloor/internal/core/domain/model/gangsheet"
	"printfloor/internal/core/domain/model/kernel"
	"printfloor/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormGangSheetRepository implements ports.GangSheetRepository using GORM.
// Member ids and metrics are written once; Update touches only completed_at.
type GormGangSheetRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormGangSheetRepository(db *gorm.DB, tracker aggregateTracker) *GormGangSheetRepository {
	return &GormGangSheetRepository{
		db:      db,
		tracker: tracker,
	}
}

func (r *GormGangSheetRepository) Add(ctx context.Context, aggregate *gangsheet.Batch) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto, err := fromDomain(aggregate)
	if err != nil {
		return err
	}
	if err = r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormGangSheetRepository) Update(ctx context.Context, aggregate *gangsheet.Batch) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Model(&GangSheetDTO{}).
		Where("id = ?", aggregate.ID().Bytes()).
		Update("completed_at", aggregate.CompletedAt())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("gang sheet", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormGangSheetRepository) Get(ctx context.Context, id kernel.UUID) (*gangsheet.Batch, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto GangSheetDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("gang sheet", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}
