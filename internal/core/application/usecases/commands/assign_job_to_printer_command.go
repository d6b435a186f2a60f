package commands

import (
	"errors"

	"printfloor/internal/core/domain/model/kernel"
	"printfloor/internal/pkg/guard"
)

var ErrAssignJobToPrinterCommandIsNotConstructed = errors.New(
	"AssignJobToPrinterCommand must be created via NewAssignJobToPrinterCommand constructor",
)

type AssignJobToPrinterCommand struct { //nolint:recvcheck //using for validation
	jobID     kernel.UUID
	printerID kernel.UUID

	guard guard.ConstructorGuard
}

func NewAssignJobToPrinterCommand(jobID, printerID kernel.UUID) (AssignJobToPrinterCommand, error) {
	if err := errors.Join(jobID.Validate(), printerID.Validate()); err != nil {
		return AssignJobToPrinterCommand{}, err
	}

	return AssignJobToPrinterCommand{
		jobID:     jobID,
		printerID: printerID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c AssignJobToPrinterCommand) Validate() error {
	return c.guard.Validate(ErrAssignJobToPrinterCommandIsNotConstructed)
}

func (c AssignJobToPrinterCommand) JobID() kernel.UUID     { return c.jobID }
func (c AssignJobToPrinterCommand) PrinterID() kernel.UUID { return c.printerID }
