package commands

import (
	"errors"
	"time"

	"printfloor/internal/pkg/errs"
	"printfloor/internal/pkg/guard"
)

var ErrDetectDelayedJobsCommandIsNotConstructed = errors.New(
	"DetectDelayedJobsCommand must be created via NewDetectDelayedJobsCommand constructor",
)

// DetectDelayedJobsCommand looks for jobs on the floor that have outlived
// their priority tier's turnaround target as of a point in time.
type DetectDelayedJobsCommand struct { //nolint:recvcheck //using for validation
	asOf time.Time

	guard guard.ConstructorGuard
}

func NewDetectDelayedJobsCommand(asOf time.Time) (DetectDelayedJobsCommand, error) {
	if asOf.IsZero() {
		return DetectDelayedJobsCommand{}, errs.NewValueIsRequiredError("asOf")
	}
	return DetectDelayedJobsCommand{asOf: asOf, guard: guard.NewConstructorGuard()}, nil
}

func (c DetectDelayedJobsCommand) Validate() error {
	return c.guard.Validate(ErrDetectDelayedJobsCommandIsNotConstructed)
}

func (c DetectDelayedJobsCommand) AsOf() time.Time { return c.asOf }
