package postgres

import (
	"context"
	"strings"

	"printfloor/internal/adapters/out/postgres/designrepo"
	"printfloor/internal/adapters/out/postgres/gangsheetrepo"
	"printfloor/internal/adapters/out/postgres/intakerepo"
	"printfloor/internal/adapters/out/postgres/jobrepo"
	"printfloor/internal/adapters/out/postgres/printerrepo"
	"printfloor/internal/core/domain/model/intake"
	"printfloor/internal/core/domain/model/kernel"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Models lists every table the service owns, in creation order.
func Models() []any {
	return []any{
		&jobrepo.JobDTO{},
		&printerrepo.PrinterDTO{},
		&gangsheetrepo.GangSheetDTO{},
		&intakerepo.SlotDTO{},
		&intakerepo.IntakeDTO{},
		&designrepo.ArtifactDTO{},
	}
}

// Migrate creates or updates the schema.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}

// EnsureSlots registers a storage slot for each label that has none yet.
// Existing slots are left as they are. It returns how many were created.
func EnsureSlots(ctx context.Context, db *gorm.DB, labels []string) (int, error) {
	created := 0
	for _, label := range labels {
		label = strings.TrimSpace(label)
		if label == "" {
			continue
		}

		slot, err := intake.NewSlot(kernel.NewUUID(), label, true)
		if err != nil {
			return created, err
		}

		dto := intakerepo.SlotDTO{ID: slot.ID().Bytes(), Label: slot.Label(), Active: slot.Active()}
		result := db.WithContext(ctx).
			Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "label"}}, DoNothing: true}).
			Create(&dto)
		if result.Error != nil {
			return created, result.Error
		}
		created += int(result.RowsAffected)
	}
	return created, nil
}
