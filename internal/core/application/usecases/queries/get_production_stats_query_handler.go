package queries

import (
	"context"

	"printfloor/internal/core/domain/model/job"

	"gorm.io/gorm"
)

// GetProductionStatsQueryHandler aggregates over the jobs and gang_sheets
// tables directly.
type GetProductionStatsQueryHandler struct {
	db *gorm.DB
}

func NewGetProductionStatsQueryHandler(db *gorm.DB) GetProductionStatsQueryHandler {
	return GetProductionStatsQueryHandler{db: db}
}

func (h GetProductionStatsQueryHandler) Handle(
	ctx context.Context,
	query GetProductionStatsQuery,
) (GetProductionStatsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetProductionStatsQueryResponse{}, err
	}

	stats := GetProductionStatsQueryResponse{
		ByStatus:   make(map[string]int),
		ByPriority: make(map[string]int),
	}
	for _, s := range job.AllStatuses() {
		stats.ByStatus[s.String()] = 0
	}
	for _, p := range []job.Priority{job.PriorityStandard, job.PriorityNextDay, job.PriorityRush, job.PrioritySameDay} {
		stats.ByPriority[p.String()] = 0
	}

	db := h.db.WithContext(ctx)

	if err := h.countGrouped(db, `
		SELECT status, COUNT(*)
		FROM jobs
		GROUP BY status
	`, stats.ByStatus); err != nil {
		return GetProductionStatsQueryResponse{}, err
	}
	for _, n := range stats.ByStatus {
		stats.TotalJobs += n
	}

	if err := h.countGrouped(db, `
		SELECT priority, COUNT(*)
		FROM jobs
		WHERE status NOT IN (?, ?)
		GROUP BY priority
	`, stats.ByPriority, job.Completed.String(), job.Cancelled.String()); err != nil {
		return GetProductionStatsQueryResponse{}, err
	}

	dayStart := query.DayStart()
	if err := db.Raw(`
		SELECT COUNT(*)
		FROM jobs
		WHERE completed_at >= ? AND completed_at < ?
	`, dayStart, dayStart.AddDate(0, 0, 1)).Row().Scan(&stats.CompletedToday); err != nil {
		return GetProductionStatsQueryResponse{}, err
	}

	if err := db.Raw(`
		SELECT COALESCE(AVG(EXTRACT(EPOCH FROM (ready_at - queued_at)) / 60), 0)
		FROM jobs
		WHERE ready_at IS NOT NULL
	`).Row().Scan(&stats.AvgQueueToReadyMinutes); err != nil {
		return GetProductionStatsQueryResponse{}, err
	}

	if err := db.Raw(`
		SELECT COUNT(*), COALESCE(AVG(fill_rate), 0)
		FROM gang_sheets
	`).Row().Scan(&stats.GangSheets, &stats.AvgGangSheetFillRate); err != nil {
		return GetProductionStatsQueryResponse{}, err
	}

	return stats, nil
}

func (h GetProductionStatsQueryHandler) countGrouped(
	db *gorm.DB,
	sql string,
	into map[string]int,
	args ...any,
) error {
	rows, err := db.Raw(sql, args...).Rows()
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var key string
		var n int
		if err = rows.Scan(&key, &n); err != nil {
			return err
		}
		into[key] = n
	}

	return rows.Err()
}
