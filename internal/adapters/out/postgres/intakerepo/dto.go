// Package intakerepo persists intake records and the storage slots ready
// orders are parked in.
package intakerepo

import (
	"time"

	"printfloor/internal/core/domain/model/intake"
	"printfloor/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

type IntakeDTO struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	OrderID     uuid.UUID  `gorm:"type:uuid;uniqueIndex"`
	OwnerID     string     `gorm:"index"`
	Code        string     `gorm:"uniqueIndex;not null"`
	Status      string     `gorm:"index;not null"`
	SlotID      *uuid.UUID `gorm:"type:uuid;index"`
	CreatedAt   time.Time  `gorm:"not null"`
	ReadyAt     *time.Time
	CompletedAt *time.Time
}

func (IntakeDTO) TableName() string {
	return "intake_records"
}

type SlotDTO struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey"`
	Label  string    `gorm:"uniqueIndex;not null"`
	Active bool      `gorm:"not null"`
}

func (SlotDTO) TableName() string {
	return "storage_slots"
}

func fromDomain(r *intake.Record) IntakeDTO {
	var slotID *uuid.UUID
	if id := r.SlotID(); id != nil {
		raw := id.Bytes()
		slotID = &raw
	}

	return IntakeDTO{
		ID:          r.ID().Bytes(),
		OrderID:     r.OrderID().Bytes(),
		OwnerID:     r.OwnerID(),
		Code:        r.Code(),
		Status:      r.Status().String(),
		SlotID:      slotID,
		CreatedAt:   r.CreatedAt(),
		ReadyAt:     r.ReadyAt(),
		CompletedAt: r.CompletedAt(),
	}
}

func toDomain(dto IntakeDTO) (*intake.Record, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	var slotID *kernel.UUID
	if dto.SlotID != nil {
		sID, slotErr := kernel.UUIDFromBytes((*dto.SlotID)[:])
		if slotErr != nil {
			return nil, slotErr
		}
		slotID = &sID
	}

	return intake.RestoreRecord(intake.Snapshot{
		ID:          id,
		OrderID:     orderID,
		OwnerID:     dto.OwnerID,
		Code:        dto.Code,
		Status:      intake.Status(dto.Status),
		SlotID:      slotID,
		CreatedAt:   dto.CreatedAt,
		ReadyAt:     dto.ReadyAt,
		CompletedAt: dto.CompletedAt,
	})
}

func slotToDomain(dto SlotDTO) (*intake.Slot, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	return intake.NewSlot(id, dto.Label, dto.Active)
}
