package jobs

import (
	"context"
	"log/slog"
	"time"

	"printfloor/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// QueueDepthHandler is implemented by commands.BroadcastQueueDepthCommandHandler.
type QueueDepthHandler interface {
	Handle(ctx context.Context, cmd commands.BroadcastQueueDepthCommand) (int, bool, error)
}

// QueueDepthJob keeps displays in step with the QUEUED count even when no
// status move triggered a broadcast.
type QueueDepthJob struct {
	handler  QueueDepthHandler
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
	now      func() time.Time
}

func NewQueueDepthJob(handler QueueDepthHandler, schedule string, logger *slog.Logger) *QueueDepthJob {
	return &QueueDepthJob{
		handler:  handler,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "queue_depth_job"),
		now:      time.Now,
	}
}

func (j *QueueDepthJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, j.run); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Queue depth broadcast started", "schedule", j.schedule)
	return nil
}

func (j *QueueDepthJob) run() {
	ctx := context.Background()
	cmd, err := commands.NewBroadcastQueueDepthCommand(j.now())
	if err != nil {
		j.logger.ErrorContext(ctx, "Queue depth broadcast failed", "error", err)
		return
	}

	depth, sent, err := j.handler.Handle(ctx, cmd)
	if err != nil {
		j.logger.ErrorContext(ctx, "Queue depth broadcast failed", "error", err)
		return
	}
	if sent {
		j.logger.DebugContext(ctx, "Queue depth changed", "depth", depth)
	}
}

func (j *QueueDepthJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Queue depth broadcast stopped")
}
