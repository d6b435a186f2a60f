package queries

import (
	"context"
	"database/sql"
	"errors"

	"printfloor/internal/core/domain/model/kernel"
	"printfloor/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const gangSheetColumns = `
	id,
	sheet_width,
	sheet_height,
	total_area,
	used_area,
	GREATEST(total_area - used_area, 0),
	fill_rate,
	multi_order,
	order_count,
	COALESCE(jsonb_array_length(job_ids), 0),
	created_at
`

type GetGangSheetQueryHandler struct {
	db *gorm.DB
}

func NewGetGangSheetQueryHandler(db *gorm.DB) GetGangSheetQueryHandler {
	return GetGangSheetQueryHandler{db: db}
}

// Handle returns ObjectNotFound when no batch has the requested id.
func (h GetGangSheetQueryHandler) Handle(
	ctx context.Context,
	query GetGangSheetQuery,
) (GetGangSheetQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetGangSheetQueryResponse{}, err
	}

	db := h.db.WithContext(ctx)

	row := db.Raw(`SELECT `+gangSheetColumns+` FROM gang_sheets WHERE id = ?`, query.BatchID().String()).Row()
	summary, err := scanGangSheetSummary(row)
	if errors.Is(err, sql.ErrNoRows) {
		return GetGangSheetQueryResponse{}, errs.NewObjectNotFoundError("gang sheet", query.BatchID().String())
	}
	if err != nil {
		return GetGangSheetQueryResponse{}, err
	}

	resp := GetGangSheetQueryResponse{
		GangSheetSummary: summary,
		Members:          make([]GangSheetMemberResponse, 0, summary.JobCount),
	}

	rows, err := db.Raw(`
		SELECT
			position,
			id,
			order_id,
			title,
			width,
			height,
			status
		FROM jobs
		WHERE batch_id = ?
		ORDER BY position
	`, query.BatchID().String()).Rows()
	if err != nil {
		return GetGangSheetQueryResponse{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var member GangSheetMemberResponse
		var id, orderID uuid.UUID

		err = rows.Scan(
			&member.Position,
			&id,
			&orderID,
			&member.Title,
			&member.Width,
			&member.Height,
			&member.Status,
		)
		if err != nil {
			return GetGangSheetQueryResponse{}, err
		}

		if member.JobID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return GetGangSheetQueryResponse{}, err
		}
		if member.OrderID, err = kernel.UUIDFromBytes(orderID[:]); err != nil {
			return GetGangSheetQueryResponse{}, err
		}
		resp.Members = append(resp.Members, member)
	}

	if err = rows.Err(); err != nil {
		return GetGangSheetQueryResponse{}, err
	}

	return resp, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanGangSheetSummary(row rowScanner) (GangSheetSummary, error) {
	var s GangSheetSummary
	var id uuid.UUID

	err := row.Scan(
		&id,
		&s.SheetWidth,
		&s.SheetHeight,
		&s.TotalArea,
		&s.UsedArea,
		&s.WasteArea,
		&s.FillRate,
		&s.MultiOrder,
		&s.OrderCount,
		&s.JobCount,
		&s.CreatedAt,
	)
	if err != nil {
		return GangSheetSummary{}, err
	}

	s.ID, err = kernel.UUIDFromBytes(id[:])
	if err != nil {
		return GangSheetSummary{}, err
	}
	return s, nil
}
