// Package designrepo keeps the local record of design-tool artifacts.
package designrepo

import (
	"time"

	"printfloor/internal/core/domain/model/design"
	"printfloor/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

type ArtifactDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID    uuid.UUID `gorm:"type:uuid;uniqueIndex"`
	ExternalID string    `gorm:"not null"`
	Status     string    `gorm:"not null"`
	PageCount  int
	CreatedAt  time.Time `gorm:"not null"`
	ApprovedAt *time.Time
}

func (ArtifactDTO) TableName() string {
	return "design_artifacts"
}

func fromDomain(a *design.Artifact) ArtifactDTO {
	return ArtifactDTO{
		ID:         a.ID().Bytes(),
		OrderID:    a.OrderID().Bytes(),
		ExternalID: a.ExternalID(),
		Status:     string(a.Status()),
		PageCount:  a.PageCount(),
		CreatedAt:  a.CreatedAt(),
		ApprovedAt: a.ApprovedAt(),
	}
}

func toDomain(dto ArtifactDTO) (*design.Artifact, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}
	return design.RestoreArtifact(id, orderID, dto.ExternalID, design.Status(dto.Status), dto.PageCount, dto.CreatedAt, dto.ApprovedAt)
}
