package commands

import (
	"context"
	"sync"

	"printfloor/internal/core/domain/model/kernel"
	"printfloor/internal/core/ports"
)

// DetectDelayedJobsCommandHandler broadcasts job.delayed once per job when it
// becomes overdue. A job that stops being overdue (handed off, cancelled or
// gone) is forgotten, so it is announced again if it ever falls behind anew.
// The handler is stateful and must be shared between runs.
type DetectDelayedJobsCommandHandler struct {
	uowFactory JobUoWFactory
	publisher  ports.EventPublisher

	mu      sync.Mutex
	flagged map[kernel.UUID]struct{}
}

func NewDetectDelayedJobsCommandHandler(
	uowFactory JobUoWFactory,
	publisher ports.EventPublisher,
) *DetectDelayedJobsCommandHandler {
	return &DetectDelayedJobsCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		flagged:    make(map[kernel.UUID]struct{}),
	}
}

// Handle returns how many jobs were newly reported.
func (h *DetectDelayedJobsCommandHandler) Handle(ctx context.Context, cmd DetectDelayedJobsCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	jobs, err := uow.JobRepository().ListInProduction(ctx)
	if err != nil {
		return 0, err
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	asOf := cmd.AsOf()
	overdue := make(map[kernel.UUID]struct{})
	reported := 0
	for _, j := range jobs {
		if !j.IsOverdue(asOf) {
			continue
		}
		overdue[j.ID()] = struct{}{}
		if _, seen := h.flagged[j.ID()]; seen {
			continue
		}
		h.publisher.Publish(jobDelayedEvent(j, asOf), jobTopics(j)...)
		reported++
	}
	h.flagged = overdue
	return reported, nil
}
