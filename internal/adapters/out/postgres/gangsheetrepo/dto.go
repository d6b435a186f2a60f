// Package gangsheetrepo persists gang sheet batches. Member job ids are kept
// in position order as a jsonb array next to the computed metrics.
package gangsheetrepo

import (
	"encoding/json"
	"time"

	"printfloor/internal/core/domain/model/gangsheet"
	"printfloor/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type GangSheetDTO struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey"`
	SheetWidth  float64        `gorm:"not null"`
	SheetHeight float64        `gorm:"not null"`
	TotalArea   float64        `gorm:"not null"`
	UsedArea    float64        `gorm:"not null"`
	FillRate    float64        `gorm:"not null"`
	MultiOrder  bool           `gorm:"not null"`
	OrderCount  int            `gorm:"not null"`
	JobIDs      datatypes.JSON `gorm:"column:job_ids;type:jsonb"`
	CreatedAt   time.Time      `gorm:"not null;index"`
	CompletedAt *time.Time
}

func (GangSheetDTO) TableName() string {
	return "gang_sheets"
}

func fromDomain(b *gangsheet.Batch) (GangSheetDTO, error) {
	ids := make([]string, 0, len(b.JobIDs()))
	for _, id := range b.JobIDs() {
		ids = append(ids, id.String())
	}
	raw, err := json.Marshal(ids)
	if err != nil {
		return GangSheetDTO{}, err
	}

	return GangSheetDTO{
		ID:          b.ID().Bytes(),
		SheetWidth:  b.Sheet().Width(),
		SheetHeight: b.Sheet().Height(),
		TotalArea:   b.TotalArea(),
		UsedArea:    b.UsedArea(),
		FillRate:    b.FillRate(),
		MultiOrder:  b.MultiOrder(),
		OrderCount:  b.OrderCount(),
		JobIDs:      datatypes.JSON(raw),
		CreatedAt:   b.CreatedAt(),
		CompletedAt: b.CompletedAt(),
	}, nil
}

func toDomain(dto GangSheetDTO) (*gangsheet.Batch, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	sheet, err := kernel.NewDimensions(dto.SheetWidth, dto.SheetHeight)
	if err != nil {
		return nil, err
	}
	jobIDs, err := DecodeJobIDs(dto.JobIDs)
	if err != nil {
		return nil, err
	}

	return gangsheet.RestoreBatch(gangsheet.Snapshot{
		ID:          id,
		Sheet:       sheet,
		UsedArea:    dto.UsedArea,
		FillRate:    dto.FillRate,
		MultiOrder:  dto.MultiOrder,
		OrderCount:  dto.OrderCount,
		JobIDs:      jobIDs,
		CreatedAt:   dto.CreatedAt,
		CompletedAt: dto.CompletedAt,
	})
}

// DecodeJobIDs reads the job_ids column.
func DecodeJobIDs(raw []byte) ([]kernel.UUID, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var ids []string
	if err := json.Unmarshal(raw, &ids); err != nil {
		return nil, err
	}

	out := make([]kernel.UUID, 0, len(ids))
	for _, s := range ids {
		id, err := kernel.UUIDFromString(s)
		if err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, nil
}
