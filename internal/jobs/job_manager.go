package jobs

import (
	"fmt"
	"log/slog"
)

// Schedules holds the cron expressions (with seconds) for each job.
type Schedules struct {
	DelayScan  string
	QueueDepth string
}

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	delayedJobsJob *DelayedJobsJob
	queueDepthJob  *QueueDepthJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(
	delayedJobs DelayedJobsHandler,
	queueDepth QueueDepthHandler,
	schedules Schedules,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		delayedJobsJob: NewDelayedJobsJob(delayedJobs, schedules.DelayScan, logger),
		queueDepthJob:  NewQueueDepthJob(queueDepth, schedules.QueueDepth, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.delayedJobsJob.Start(); err != nil {
		return fmt.Errorf("failed to start delayed jobs job: %w", err)
	}

	if err := jm.queueDepthJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.delayedJobsJob.Stop()
		return fmt.Errorf("failed to start queue depth job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.queueDepthJob.Stop()
	jm.delayedJobsJob.Stop()
}
