package jobs

import (
	"context"
	"log/slog"
	"time"

	"printfloor/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// DelayedJobsHandler is implemented by commands.DetectDelayedJobsCommandHandler.
type DelayedJobsHandler interface {
	Handle(ctx context.Context, cmd commands.DetectDelayedJobsCommand) (int, error)
}

// DelayedJobsJob periodically announces jobs that have outlived their
// priority tier's turnaround target.
type DelayedJobsJob struct {
	handler  DelayedJobsHandler
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
	now      func() time.Time
}

func NewDelayedJobsJob(handler DelayedJobsHandler, schedule string, logger *slog.Logger) *DelayedJobsJob {
	return &DelayedJobsJob{
		handler:  handler,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "delayed_jobs_job"),
		now:      time.Now,
	}
}

// Start registers the scan on its schedule and starts the scheduler.
func (j *DelayedJobsJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, j.run); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Delayed jobs scan started", "schedule", j.schedule)
	return nil
}

func (j *DelayedJobsJob) run() {
	ctx := context.Background()
	cmd, err := commands.NewDetectDelayedJobsCommand(j.now())
	if err != nil {
		j.logger.ErrorContext(ctx, "Delayed jobs scan failed", "error", err)
		return
	}

	reported, err := j.handler.Handle(ctx, cmd)
	if err != nil {
		j.logger.ErrorContext(ctx, "Delayed jobs scan failed", "error", err)
		return
	}
	if reported > 0 {
		j.logger.InfoContext(ctx, "Jobs past turnaround target", "count", reported)
	}
}

// Stop stops the scheduler. A scan in progress finishes on its own.
func (j *DelayedJobsJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Delayed jobs scan stopped")
}
