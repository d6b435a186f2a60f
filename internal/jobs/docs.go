// Package jobs provides scheduled background tasks for the production floor.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
// Schedules use the six-field form with seconds.
//
// # Available Jobs
//
// 1. DelayedJobsJob - announces jobs that have exceeded their priority tier's turnaround target (job.delayed)
// 2. QueueDepthJob - rebroadcasts the QUEUED count when it changed since the last broadcast (queue.depth_changed)
//
// # Usage
//
//	jobManager := jobs.NewJobManager(delayedHandler, depthHandler, jobs.Schedules{
//		DelayScan:  "0 * * * * *",
//		QueueDepth: "*/15 * * * * *",
//	}, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// Failed runs are logged and retried on the next tick. A failed start stops
// any job already running.
package jobs
