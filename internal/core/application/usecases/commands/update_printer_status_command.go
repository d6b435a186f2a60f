package commands

import (
	"errors"
	"maps"

	"printfloor/internal/core/domain/model/kernel"
	"printfloor/internal/core/domain/model/printer"
	"printfloor/internal/pkg/guard"
)

var ErrUpdatePrinterStatusCommandIsNotConstructed = errors.New(
	"UpdatePrinterStatusCommand must be created via NewUpdatePrinterStatusCommand constructor",
)

// UpdatePrinterStatusCommand carries a printer's status report. InkLevels may
// name only the channels that changed.
type UpdatePrinterStatusCommand struct { //nolint:recvcheck //using for validation
	printerID kernel.UUID
	status    printer.Status
	inkLevels printer.InkLevels

	guard guard.ConstructorGuard
}

func NewUpdatePrinterStatusCommand(
	printerID kernel.UUID,
	status printer.Status,
	inkLevels printer.InkLevels,
) (UpdatePrinterStatusCommand, error) {
	if err := errors.Join(printerID.Validate(), status.Validate()); err != nil {
		return UpdatePrinterStatusCommand{}, err
	}

	return UpdatePrinterStatusCommand{
		printerID: printerID,
		status:    status,
		inkLevels: maps.Clone(inkLevels),
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c UpdatePrinterStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdatePrinterStatusCommandIsNotConstructed)
}

func (c UpdatePrinterStatusCommand) PrinterID() kernel.UUID       { return c.printerID }
func (c UpdatePrinterStatusCommand) Status() printer.Status       { return c.status }
func (c UpdatePrinterStatusCommand) InkLevels() printer.InkLevels { return maps.Clone(c.inkLevels) }
