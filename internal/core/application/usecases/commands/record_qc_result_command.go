package commands

import (
	"errors"
	"strings"

	"printfloor/internal/core/domain/model/job"
	"printfloor/internal/core/domain/model/kernel"
	"printfloor/internal/pkg/guard"
)

var ErrRecordQCResultCommandIsNotConstructed = errors.New(
	"RecordQCResultCommand must be created via NewRecordQCResultCommand constructor",
)

// RecordQCResultCommand records an inspection outcome for a job in QC_CHECK.
type RecordQCResultCommand struct { //nolint:recvcheck //using for validation
	jobID    kernel.UUID
	result   job.QCResult
	notes    string
	operator string

	guard guard.ConstructorGuard
}

func NewRecordQCResultCommand(jobID kernel.UUID, result job.QCResult, notes, operator string) (RecordQCResultCommand, error) {
	cmd := RecordQCResultCommand{
		notes:    strings.TrimSpace(notes),
		operator: strings.TrimSpace(operator),
		guard:    guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setJobID(jobID),
		cmd.setResult(result),
	); err != nil {
		return RecordQCResultCommand{}, err
	}

	return cmd, nil
}

func (c RecordQCResultCommand) Validate() error {
	return c.guard.Validate(ErrRecordQCResultCommandIsNotConstructed)
}

func (c RecordQCResultCommand) JobID() kernel.UUID   { return c.jobID }
func (c RecordQCResultCommand) Result() job.QCResult { return c.result }
func (c RecordQCResultCommand) Notes() string        { return c.notes }
func (c RecordQCResultCommand) Operator() string     { return c.operator }

func (c *RecordQCResultCommand) setJobID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.jobID = id
	return nil
}

func (c *RecordQCResultCommand) setResult(r job.QCResult) error {
	if err := r.Validate(); err != nil {
		return err
	}
	c.result = r
	return nil
}
