package queries

import (
	"errors"

	"printfloor/internal/pkg/errs"
	"printfloor/internal/pkg/guard"
)

const (
	DefaultGangSheetListLimit = 20
	MaxGangSheetListLimit     = 200
)

var ErrListGangSheetsQueryIsNotConstructed = errors.New(
	"ListGangSheetsQuery must be created via NewListGangSheetsQuery constructor",
)

// ListGangSheetsQuery lists the most recent batches, newest first.
type ListGangSheetsQuery struct {
	limit int

	guard guard.ConstructorGuard
}

// NewListGangSheetsQuery builds the query. A limit of 0 selects DefaultGangSheetListLimit.
func NewListGangSheetsQuery(limit int) (ListGangSheetsQuery, error) {
	if limit == 0 {
		limit = DefaultGangSheetListLimit
	}
	if limit < 1 || limit > MaxGangSheetListLimit {
		return ListGangSheetsQuery{}, errs.NewValueIsOutOfRangeError("limit", limit, 1, MaxGangSheetListLimit)
	}
	return ListGangSheetsQuery{limit: limit, guard: guard.NewConstructorGuard()}, nil
}

func (q ListGangSheetsQuery) Validate() error {
	return q.guard.Validate(ErrListGangSheetsQueryIsNotConstructed)
}

func (q ListGangSheetsQuery) Limit() int { return q.limit }
