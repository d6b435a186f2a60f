package commands

import (
	"errors"

	"printfloor/internal/core/domain/model/kernel"
	"printfloor/internal/pkg/errs"
	"printfloor/internal/pkg/guard"
)

var ErrCreateGangSheetCommandIsNotConstructed = errors.New(
	"CreateGangSheetCommand must be created via NewCreateGangSheetCommand constructor",
)

// CreateGangSheetCommand composes a gang sheet of the given size from an
// explicit, ordered job list. The caller chooses the jobs.
type CreateGangSheetCommand struct { //nolint:recvcheck //using for validation
	sheet  kernel.Dimensions
	jobIDs []kernel.UUID

	guard guard.ConstructorGuard
}

func NewCreateGangSheetCommand(sheetWidth, sheetHeight float64, jobIDs []kernel.UUID) (CreateGangSheetCommand, error) {
	sheet, err := kernel.NewDimensions(sheetWidth, sheetHeight)
	if err != nil {
		return CreateGangSheetCommand{}, err
	}
	if len(jobIDs) == 0 {
		return CreateGangSheetCommand{}, errs.NewValueIsRequiredError("jobIds")
	}
	for _, id := range jobIDs {
		if err = id.Validate(); err != nil {
			return CreateGangSheetCommand{}, err
		}
	}

	return CreateGangSheetCommand{
		sheet:  sheet,
		jobIDs: append([]kernel.UUID(nil), jobIDs...),
		guard:  guard.NewConstructorGuard(),
	}, nil
}

func (c CreateGangSheetCommand) Validate() error {
	return c.guard.Validate(ErrCreateGangSheetCommandIsNotConstructed)
}

func (c CreateGangSheetCommand) Sheet() kernel.Dimensions { return c.sheet }
func (c CreateGangSheetCommand) JobIDs() []kernel.UUID {
	return append([]kernel.UUID(nil), c.jobIDs...)
}
