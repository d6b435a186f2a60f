// Package printerrepo persists the printer registry. Supported product types
// are a text[] column and ink readings a jsonb document.
package printerrepo

import (
	"encoding/json"

	"printfloor/internal/core/domain/model/job"
	"printfloor/internal/core/domain/model/kernel"
	"printfloor/internal/core/domain/model/printer"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"
)

type PrinterDTO struct {
	ID             uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Name           string         `gorm:"not null"`
	MaxWidth       float64        `gorm:"not null"`
	SupportedTypes pq.StringArray `gorm:"type:text[]"`
	Status         string         `gorm:"not null;index"`
	InkLevels      datatypes.JSON `gorm:"type:jsonb"`
}

func (PrinterDTO) TableName() string {
	return "printers"
}

func fromDomain(p *printer.Printer) (PrinterDTO, error) {
	types := make(pq.StringArray, 0, len(p.SupportedTypes()))
	for _, t := range p.SupportedTypes() {
		types = append(types, t.String())
	}

	ink, err := json.Marshal(p.InkLevels())
	if err != nil {
		return PrinterDTO{}, err
	}

	return PrinterDTO{
		ID:             p.ID().Bytes(),
		Name:           p.Name(),
		MaxWidth:       p.MaxWidth(),
		SupportedTypes: types,
		Status:         p.Status().String(),
		InkLevels:      datatypes.JSON(ink),
	}, nil
}

func toDomain(dto PrinterDTO) (*printer.Printer, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	types := make([]job.ProductType, 0, len(dto.SupportedTypes))
	for _, t := range dto.SupportedTypes {
		types = append(types, job.ProductType(t))
	}

	ink := printer.InkLevels{}
	if len(dto.InkLevels) > 0 {
		if err = json.Unmarshal(dto.InkLevels, &ink); err != nil {
			return nil, err
		}
	}

	return printer.RestorePrinter(id, dto.Name, dto.MaxWidth, types, printer.Status(dto.Status), ink)
}
