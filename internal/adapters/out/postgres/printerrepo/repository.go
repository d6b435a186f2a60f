package printerrepo

import (
	"context"
	"errors"

	"printfloor/internal/core/domain/model/kernel"
	"printfloor/internal/core/domain/model/printer"
	"printfloor/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormPrinterRepository implements ports.PrinterRepository using GORM.
type GormPrinterRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormPrinterRepository(db *gorm.DB, tracker aggregateTracker) *GormPrinterRepository {
	return &GormPrinterRepository{
		db:      db,
		tracker: tracker,
	}
}

func (r *GormPrinterRepository) Add(ctx context.Context, aggregate *printer.Printer) error {
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

func (r *GormPrinterRepository) Update(ctx context.Context, aggregate *printer.Printer) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto, err := fromDomain(aggregate)
	if err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Model(&PrinterDTO{}).Where("id = ?", dto.ID).Select("*").Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("printer", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormPrinterRepository) Get(ctx context.Context, id kernel.UUID) (*printer.Printer, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto PrinterDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("printer", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// List returns every registered printer ordered by name.
func (r *GormPrinterRepository) List(ctx context.Context) ([]*printer.Printer, error) {
	var dtos []PrinterDTO
	if err := r.db.WithContext(ctx).Order("name, id").Find(&dtos).Error; err != nil {
		return nil, err
	}

	printers := make([]*printer.Printer, 0, len(dtos))
	for _, dto := range dtos {
		p, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		printers = append(printers, p)
	}
	return printers, nil
}
