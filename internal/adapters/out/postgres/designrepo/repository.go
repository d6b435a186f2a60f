package designrepo

import (
	"context"
	"errors"

	"printfloor/internal/core/domain/model/design"
	"printfloor/internal/core/domain/model/kernel"
	"printfloor/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormDesignRepository implements ports.DesignRepository using GORM.
type GormDesignRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormDesignRepository(db *gorm.DB, tracker aggregateTracker) *GormDesignRepository {
	return &GormDesignRepository{
		db:      db,
		tracker: tracker,
	}
}

func (r *GormDesignRepository) Add(ctx context.Context, aggregate *design.Artifact) error {
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

func (r *GormDesignRepository) Update(ctx context.Context, aggregate *design.Artifact) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&ArtifactDTO{}).Where("id = ?", dto.ID).Select("*").Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("design artifact", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormDesignRepository) Get(ctx context.Context, id kernel.UUID) (*design.Artifact, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	return r.first(ctx, "id = ?", id)
}

func (r *GormDesignRepository) GetByOrder(ctx context.Context, orderID kernel.UUID) (*design.Artifact, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}
	return r.first(ctx, "order_id = ?", orderID)
}

func (r *GormDesignRepository) first(ctx context.Context, where string, id kernel.UUID) (*design.Artifact, error) {
	var dto ArtifactDTO
	if err := r.db.WithContext(ctx).First(&dto, where, id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("design artifact", id.String())
		}
		return nil, err
	}
	return toDomain(dto)
}
