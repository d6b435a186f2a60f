package queries

import (
	"context"

	"gorm.io/gorm"
)

type ListGangSheetsQueryHandler struct {
	db *gorm.DB
}

func NewListGangSheetsQueryHandler(db *gorm.DB) ListGangSheetsQueryHandler {
	return ListGangSheetsQueryHandler{db: db}
}

func (h ListGangSheetsQueryHandler) Handle(
	ctx context.Context,
	query ListGangSheetsQuery,
) ([]GangSheetSummary, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	sheets := make([]GangSheetSummary, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT `+gangSheetColumns+`
		FROM gang_sheets
		ORDER BY created_at DESC, id
		LIMIT ?
	`, query.Limit()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		summary, scanErr := scanGangSheetSummary(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		sheets = append(sheets, summary)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return sheets, nil
}
