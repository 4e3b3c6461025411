// Package jobs provides scheduled background tasks for the fulfillment console.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
//
// # Available Jobs
//
// 1. TrackingRefreshJob - Pulls the carrier's latest status for every active
// tracked fulfillment and stores it as the fulfillment's live status.
//
// # Usage
//
// Jobs are managed through JobManager:
//
//	jobManager := jobs.NewJobManager(refreshHandler, "@every 30m", logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Scheduling
//
// The schedule accepts standard five-field cron expressions and descriptors
// such as "@hourly" or "@every 15m". A run that is still going when the next
// one is due causes the next one to be skipped.
//
// # Error Handling
//
// Failures are logged and never stop the scheduler. A carrier outage leaves
// the stored live statuses as they were.
package jobs
