package intakerepo

import (
	"context"
	"errors"

	"printfloor/internal/core/domain/model/intake"
	"printfloor/internal/core/domain/model/kernel"
	"printfloor/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormIntakeRepository implements ports.IntakeRepository using GORM.
type GormIntakeRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormIntakeRepository(db *gorm.DB, tracker aggregateTracker) *GormIntakeRepository {
	return &GormIntakeRepository{
		db:      db,
		tracker: tracker,
	}
}

func (r *GormIntakeRepository) Add(ctx context.Context, aggregate *intake.Record) error {
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

func (r *GormIntakeRepository) Update(ctx context.Context, aggregate *intake.Record) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&IntakeDTO{}).Where("id = ?", dto.ID).Select("*").Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("intake record", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormIntakeRepository) GetByOrder(ctx context.Context, orderID kernel.UUID) (*intake.Record, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}
	return r.first(ctx, "order_id = ?", orderID.String(), orderID.Bytes())
}

func (r *GormIntakeRepository) GetByCode(ctx context.Context, code string) (*intake.Record, error) {
	normalized := intake.NormalizeCode(code)
	return r.first(ctx, "code = ?", normalized, normalized)
}

func (r *GormIntakeRepository) ListInFlight(ctx context.Context) ([]*intake.Record, error) {
	var dtos []IntakeDTO
	err := r.db.WithContext(ctx).
		Where("status <> ?", intake.StatusCompleted.String()).
		Order("created_at, id").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	records := make([]*intake.Record, 0, len(dtos))
	for _, dto := range dtos {
		rec, convErr := toDomain(dto)
		if convErr != nil {
			return nil, convErr
		}
		records = append(records, rec)
	}
	return records, nil
}

func (r *GormIntakeRepository) first(ctx context.Context, where, key string, arg any) (*intake.Record, error) {
	var dto IntakeDTO
	if err := r.db.WithContext(ctx).First(&dto, where, arg).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("intake record", key)
		}
		return nil, err
	}
	return toDomain(dto)
}

// GormSlotRepository implements ports.SlotRepository using GORM.
type GormSlotRepository struct {
	db *gorm.DB
}

func NewGormSlotRepository(db *gorm.DB) *GormSlotRepository {
	return &GormSlotRepository{db: db}
}

func (r *GormSlotRepository) Add(ctx context.Context, slot *intake.Slot) error {
	if err := slot.Validate(); err != nil {
		return err
	}

	dto := SlotDTO{ID: slot.ID().Bytes(), Label: slot.Label(), Active: slot.Active()}
	return r.db.WithContext(ctx).Create(&dto).Error
}

// ListLoads counts the ready intake records parked in each slot.
func (r *GormSlotRepository) ListLoads(ctx context.Context) ([]intake.SlotLoad, error) {
	rows, err := r.db.WithContext(ctx).Raw(`
		SELECT
			s.id,
			s.label,
			s.active,
			COUNT(i.id) AS assigned
		FROM storage_slots s
		LEFT JOIN intake_records i
			ON i.slot_id = s.id AND i.status = ?
		GROUP BY s.id, s.label, s.active
		ORDER BY s.label
	`, intake.StatusReady.String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	loads := make([]intake.SlotLoad, 0)
	for rows.Next() {
		var dto SlotDTO
		var id uuid.UUID
		var assigned int
		if err = rows.Scan(&id, &dto.Label, &dto.Active, &assigned); err != nil {
			return nil, err
		}
		dto.ID = id

		slot, slotErr := slotToDomain(dto)
		if slotErr != nil {
			return nil, slotErr
		}
		loads = append(loads, intake.SlotLoad{Slot: slot, Assigned: assigned})
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return loads, nil
}
