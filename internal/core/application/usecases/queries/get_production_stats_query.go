package queries

import (
	"errors"
	"time"

	"printfloor/internal/pkg/errs"
	"printfloor/internal/pkg/guard"
)

var ErrGetProductionStatsQueryIsNotConstructed = errors.New(
	"GetProductionStatsQuery must be created via NewGetProductionStatsQuery constructor",
)

// GetProductionStatsQuery asks for floor statistics. "Today" is the calendar
// day of asOf in asOf's location.
type GetProductionStatsQuery struct {
	asOf time.Time

	guard guard.ConstructorGuard
}

func NewGetProductionStatsQuery(asOf time.Time) (GetProductionStatsQuery, error) {
	if asOf.IsZero() {
		return GetProductionStatsQuery{}, errs.NewValueIsRequiredError("asOf")
	}
	return GetProductionStatsQuery{asOf: asOf, guard: guard.NewConstructorGuard()}, nil
}

func (q GetProductionStatsQuery) Validate() error {
	return q.guard.Validate(ErrGetProductionStatsQueryIsNotConstructed)
}

func (q GetProductionStatsQuery) AsOf() time.Time { return q.asOf }

// DayStart is midnight of asOf's day.
func (q GetProductionStatsQuery) DayStart() time.Time {
	y, m, d := q.asOf.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, q.asOf.Location())
}

// GetProductionStatsQueryResponse summarises the floor.
//
// ByStatus covers every job ever created, one key per status.
// ByPriority counts only jobs that are not terminal.
// AvgQueueToReadyMinutes averages over jobs that have reached READY and is
// zero when none has.
type GetProductionStatsQueryResponse struct {
	TotalJobs              int
	ByStatus               map[string]int
	ByPriority             map[string]int
	CompletedToday         int
	AvgQueueToReadyMinutes float64
	GangSheets             int
	AvgGangSheetFillRate   float64
}
