package commands

import (
	"errors"

	"printfloor/internal/core/domain/model/kernel"
	"printfloor/internal/pkg/guard"
)

var ErrInitiatePipelineCommandIsNotConstructed = errors.New(
	"InitiatePipelineCommand must be created via NewInitiatePipelineCommand constructor",
)

type InitiatePipelineCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewInitiatePipelineCommand(orderID kernel.UUID) (InitiatePipelineCommand, error) {
	if err := orderID.Validate(); err != nil {
		return InitiatePipelineCommand{}, err
	}
	return InitiatePipelineCommand{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (c InitiatePipelineCommand) Validate() error {
	return c.guard.Validate(ErrInitiatePipelineCommandIsNotConstructed)
}

func (c InitiatePipelineCommand) OrderID() kernel.UUID { return c.orderID }
