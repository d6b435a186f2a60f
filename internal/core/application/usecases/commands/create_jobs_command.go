package commands

import (
	"errors"

	"printfloor/internal/core/domain/model/kernel"
	"printfloor/internal/pkg/guard"
)

var ErrCreateJobsCommandIsNotConstructed = errors.New(
	"CreateJobsCommand must be created via NewCreateJobsCommand constructor",
)

// CreateJobsCommand derives production jobs from a storefront order.
type CreateJobsCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewCreateJobsCommand(orderID kernel.UUID) (CreateJobsCommand, error) {
	if err := orderID.Validate(); err != nil {
		return CreateJobsCommand{}, err
	}
	return CreateJobsCommand{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (c CreateJobsCommand) Validate() error {
	return c.guard.Validate(ErrCreateJobsCommandIsNotConstructed)
}

func (c CreateJobsCommand) OrderID() kernel.UUID { return c.orderID }
