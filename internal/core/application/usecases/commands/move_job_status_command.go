package commands

import (
	"errors"
	"strings"

	"printfloor/internal/core/domain/model/job"
	"printfloor/internal/core/domain/model/kernel"
	"printfloor/internal/pkg/guard"
)

var ErrMoveJobStatusCommandIsNotConstructed = errors.New(
	"MoveJobStatusCommand must be created via NewMoveJobStatusCommand constructor",
)

// MoveJobStatusCommand asks for one job to be moved to a target status.
// Operator is optional and recorded on the job when given.
//
// Example:
//
//	cmd, err := NewMoveJobStatusCommand(jobID, job.Printing, "dana")
//	if err != nil {
//	    return fmt.Errorf("invalid move: %w", err)
//	}
//	result, err := handler.Handle(ctx, cmd)
type MoveJobStatusCommand struct { //nolint:recvcheck //using for validation
	jobID    kernel.UUID
	target   job.Status
	operator string

	guard guard.ConstructorGuard
}

func NewMoveJobStatusCommand(jobID kernel.UUID, target job.Status, operator string) (MoveJobStatusCommand, error) {
	cmd := MoveJobStatusCommand{
		operator: strings.TrimSpace(operator),
		guard:    guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setJobID(jobID),
		cmd.setTarget(target),
	); err != nil {
		return MoveJobStatusCommand{}, err
	}

	return cmd, nil
}

func (c MoveJobStatusCommand) Validate() error {
	return c.guard.Validate(ErrMoveJobStatusCommandIsNotConstructed)
}

func (c MoveJobStatusCommand) JobID() kernel.UUID { return c.jobID }
func (c MoveJobStatusCommand) Target() job.Status { return c.target }
func (c MoveJobStatusCommand) Operator() string   { return c.operator }

func (c *MoveJobStatusCommand) setJobID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.jobID = id
	return nil
}

func (c *MoveJobStatusCommand) setTarget(s job.Status) error {
	if err := s.Validate(); err != nil {
		return err
	}
	c.target = s
	return nil
}
