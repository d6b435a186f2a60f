package commands

import (
	"errors"

	"printfloor/internal/core/domain/model/kernel"
	"printfloor/internal/pkg/guard"
)

var ErrApproveDesignCommandIsNotConstructed = errors.New(
	"ApproveDesignCommand must be created via NewApproveDesignCommand constructor",
)

type ApproveDesignCommand struct { //nolint:recvcheck //using for validation
	designID kernel.UUID

	guard guard.ConstructorGuard
}

func NewApproveDesignCommand(designID kernel.UUID) (ApproveDesignCommand, error) {
	if err := designID.Validate(); err != nil {
		return ApproveDesignCommand{}, err
	}
	return ApproveDesignCommand{designID: designID, guard: guard.NewConstructorGuard()}, nil
}

func (c ApproveDesignCommand) Validate() error {
	return c.guard.Validate(ErrApproveDesignCommandIsNotConstructed)
}

func (c ApproveDesignCommand) DesignID() kernel.UUID { return c.designID }
