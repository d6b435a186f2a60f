package commands

import (
	"errors"
	"strings"

	"printfloor/internal/core/domain/model/job"
	"printfloor/internal/core/domain/model/kernel"
	"printfloor/internal/pkg/errs"
	"printfloor/internal/pkg/guard"
)

var ErrBatchMoveJobStatusCommandIsNotConstructed = errors.New(
	"BatchMoveJobStatusCommand must be created via NewBatchMoveJobStatusCommand constructor",
)

// BatchMoveJobStatusCommand moves several jobs to the same target status.
// Each job is attempted on its own.
type BatchMoveJobStatusCommand struct { //nolint:recvcheck //using for validation
	jobIDs   []kernel.UUID
	target   job.Status
	operator string

	guard guard.ConstructorGuard
}

func NewBatchMoveJobStatusCommand(jobIDs []kernel.UUID, target job.Status, operator string) (BatchMoveJobStatusCommand, error) {
	cmd := BatchMoveJobStatusCommand{
		operator: strings.TrimSpace(operator),
		guard:    guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setJobIDs(jobIDs),
		cmd.setTarget(target),
	); err != nil {
		return BatchMoveJobStatusCommand{}, err
	}

	return cmd, nil
}

func (c BatchMoveJobStatusCommand) Validate() error {
	return c.guard.Validate(ErrBatchMoveJobStatusCommandIsNotConstructed)
}

func (c BatchMoveJobStatusCommand) JobIDs() []kernel.UUID {
	ids := make([]kernel.UUID, len(c.jobIDs))
	copy(ids, c.jobIDs)
	return ids
}

func (c BatchMoveJobStatusCommand) Target() job.Status { return c.target }
func (c BatchMoveJobStatusCommand) Operator() string   { return c.operator }

func (c *BatchMoveJobStatusCommand) setJobIDs(ids []kernel.UUID) error {
	if len(ids) == 0 {
		return errs.NewValueIsRequiredError("jobIds")
	}
	for _, id := range ids {
		if err := id.Validate(); err != nil {
			return err
		}
	}
	c.jobIDs = append([]kernel.UUID(nil), ids...)
	return nil
}

func (c *BatchMoveJobStatusCommand) setTarget(s job.Status) error {
	if err := s.Validate(); err != nil {
		return err
	}
	c.target = s
	return nil
}
