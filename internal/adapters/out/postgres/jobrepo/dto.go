// Package jobrepo persists job aggregates with gorm. Each stage entry time is
// its own nullable column so raw-SQL statistics can aggregate over them.
package jobrepo

import (
	"time"

	"printfloor/internal/core/domain/model/job"
	"printfloor/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// JobDTO is the row layout of the jobs table.
type JobDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID     uuid.UUID `gorm:"type:uuid;index"`
	OwnerID     string    `gorm:"index"`
	Title       string
	Width       float64
	Height      float64
	ProductType string
	Quantity    int
	DPI         int `gorm:"column:dpi"`
	Priority    string
	Status      string     `gorm:"index"`
	PrinterID   *uuid.UUID `gorm:"type:uuid;index"`
	BatchID     *uuid.UUID `gorm:"type:uuid;index"`
	Position    int
	Operator    string
	QCResult    string    `gorm:"column:qc_result"`
	QCNotes     string    `gorm:"column:qc_notes"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime:false"`

	QueuedAt           time.Time
	PrepressStartedAt  *time.Time
	PrintStartedAt     *time.Time
	CureStartedAt      *time.Time
	CutStartedAt       *time.Time
	QCStartedAt        *time.Time `gorm:"column:qc_started_at"`
	PackagingStartedAt *time.Time
	ReadyAt            *time.Time
	CompletedAt        *time.Time
}

func (JobDTO) TableName() string {
	return "jobs"
}

func fromDomain(j *job.Job) JobDTO {
	stages := j.StageTimes()
	return JobDTO{
		ID:                 j.ID().Bytes(),
		OrderID:            j.OrderID().Bytes(),
		OwnerID:            j.OwnerID(),
		Title:              j.Title(),
		Width:              j.Size().Width(),
		Height:             j.Size().Height(),
		ProductType:        j.ProductType().String(),
		Quantity:           j.Quantity(),
		DPI:                j.DPI(),
		Priority:           j.Priority().String(),
		Status:             j.Status().String(),
		PrinterID:          rawID(j.PrinterID()),
		BatchID:            rawID(j.BatchID()),
		Position:           j.Position(),
		Operator:           j.Operator(),
		QCResult:           string(j.QCResult()),
		QCNotes:            j.QCNotes(),
		UpdatedAt:          j.UpdatedAt(),
		QueuedAt:           j.QueuedAt(),
		PrepressStartedAt:  stages.PrepressStartedAt,
		PrintStartedAt:     stages.PrintStartedAt,
		CureStartedAt:      stages.CureStartedAt,
		CutStartedAt:       stages.CutStartedAt,
		QCStartedAt:        stages.QCStartedAt,
		PackagingStartedAt: stages.PackagingStartedAt,
		ReadyAt:            stages.ReadyAt,
		CompletedAt:        stages.CompletedAt,
	}
}

func toDomain(dto JobDTO) (*job.Job, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}
	printerID, err := domainID(dto.PrinterID)
	if err != nil {
		return nil, err
	}
	batchID, err := domainID(dto.BatchID)
	if err != nil {
		return nil, err
	}
	size, err := kernel.NewDimensions(dto.Width, dto.Height)
	if err != nil {
		return nil, err
	}
	status, err := job.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}
	priority, err := job.ParsePriority(dto.Priority)
	if err != nil {
		return nil, err
	}

	queuedAt := dto.QueuedAt
	return job.RestoreJob(job.Snapshot{
		ID: id,
		Attrs: job.Attributes{
			OrderID:     orderID,
			OwnerID:     dto.OwnerID,
			Title:       dto.Title,
			Size:        size,
			ProductType: job.ProductType(dto.ProductType),
			Quantity:    dto.Quantity,
			DPI:         dto.DPI,
			Priority:    priority,
		},
		Status: status,
		Stages: job.StageTimes{
			QueuedAt:           &queuedAt,
			PrepressStartedAt:  dto.PrepressStartedAt,
			PrintStartedAt:     dto.PrintStartedAt,
			CureStartedAt:      dto.CureStartedAt,
			CutStartedAt:       dto.CutStartedAt,
			QCStartedAt:        dto.QCStartedAt,
			PackagingStartedAt: dto.PackagingStartedAt,
			ReadyAt:            dto.ReadyAt,
			CompletedAt:        dto.CompletedAt,
		},
		PrinterID: printerID,
		BatchID:   batchID,
		Position:  dto.Position,
		Operator:  dto.Operator,
		QCResult:  job.QCResult(dto.QCResult),
		QCNotes:   dto.QCNotes,
		UpdatedAt: dto.UpdatedAt,
	})
}

func rawID(id *kernel.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	raw := id.Bytes()
	return &raw
}

func domainID(raw *uuid.UUID) (*kernel.UUID, error) {
	if raw == nil {
		return nil, nil
	}
	id, err := kernel.UUIDFromBytes(raw[:])
	if err != nil {
		return nil, err
	}
	return &id, nil
}
