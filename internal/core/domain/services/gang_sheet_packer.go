package services

import (
	"errors"
	"time"

	"printfloor/internal/core/domain/model/gangsheet"
	"printfloor/internal/core/domain/model/job"
	"printfloor/internal/core/domain/model/kernel"
	"printfloor/internal/pkg/errs"
)

// ErrDuplicateJobInBatch is returned when the same job id appears twice in one composition.
var ErrDuplicateJobInBatch = errors.New("job listed more than once in gang sheet")

// GangSheetPacker composes a gang sheet from a caller-chosen job set. It does
// not select candidates or optimise layout; positions follow input order.
type GangSheetPacker struct{}

func NewGangSheetPacker() GangSheetPacker {
	return GangSheetPacker{}
}

// Pack builds the batch and places every job on it at positions 1..n. All
// jobs are checked before any is touched, so a rejected composition leaves
// every job unchanged.
func (GangSheetPacker) Pack(batchID kernel.UUID, sheet kernel.Dimensions, jobs []*job.Job, at time.Time) (*gangsheet.Batch, error) {
	if len(jobs) == 0 {
		return nil, gangsheet.ErrJobsAreRequired
	}

	seen := make(map[kernel.UUID]struct{}, len(jobs))
	for _, j := range jobs {
		if err := j.Validate(); err != nil {
			return nil, err
		}
		if _, dup := seen[j.ID()]; dup {
			return nil, errs.NewValueIsInvalidErrorWithCause("jobIds", ErrDuplicateJobInBatch)
		}
		seen[j.ID()] = struct{}{}

		if j.BatchID() != nil {
			return nil, errs.NewValueIsInvalidErrorWithCause("jobIds", job.ErrJobAlreadyBatched)
		}
		if j.Status().IsTerminal() {
			return nil, errs.NewValueIsInvalidErrorWithCause("jobIds", job.ErrJobIsTerminal)
		}
	}

	batch, err := gangsheet.NewBatch(batchID, sheet, jobs, at)
	if err != nil {
		return nil, err
	}

	for i, j := range jobs {
		if err := j.PlaceInBatch(batch.ID(), i+1, at); err != nil {
			return nil, err
		}
	}

	return batch, nil
}
