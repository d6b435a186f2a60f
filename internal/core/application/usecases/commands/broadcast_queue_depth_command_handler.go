package commands

import (
	"context"
	"sync"

	"printfloor/internal/core/domain/model/job"
	"printfloor/internal/core/ports"
)

// BroadcastQueueDepthCommandHandler publishes queue.depth_changed when the
// QUEUED count differs from what it last published. The first run always
// publishes.
type BroadcastQueueDepthCommandHandler struct {
	uowFactory JobUoWFactory
	publisher  ports.EventPublisher

	mu   sync.Mutex
	last *int
}

func NewBroadcastQueueDepthCommandHandler(
	uowFactory JobUoWFactory,
	publisher ports.EventPublisher,
) *BroadcastQueueDepthCommandHandler {
	return &BroadcastQueueDepthCommandHandler{uowFactory: uowFactory, publisher: publisher}
}

// Handle returns the current depth and whether it was broadcast.
func (h *BroadcastQueueDepthCommandHandler) Handle(ctx context.Context, cmd BroadcastQueueDepthCommand) (int, bool, error) {
	if err := cmd.Validate(); err != nil {
		return 0, false, err
	}

	uow := h.uowFactory.Create()
	depth, err := uow.JobRepository().CountByStatus(ctx, job.Queued)
	if err != nil {
		return 0, false, err
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.last != nil && *h.last == depth {
		return depth, false, nil
	}
	h.publisher.Publish(queueDepthEvent(depth, cmd.At()), ports.FloorTopic)
	h.last = &depth
	return depth, true, nil
}
