package jobs

import (
	"fmt"
	"log/slog"
)

// JobManager owns the console's background jobs.
type JobManager struct {
	trackingRefreshJob *TrackingRefreshJob
}

func NewJobManager(
	refreshHandler RefreshTrackingStatusesHandler,
	trackingRefreshSchedule string,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		trackingRefreshJob: NewTrackingRefreshJob(refreshHandler, trackingRefreshSchedule, logger),
	}
}

// StartAll schedules every job. A bad schedule is reported before anything runs.
func (jm *JobManager) StartAll() error {
	if err := jm.trackingRefreshJob.Start(); err != nil {
		return fmt.Errorf("failed to start tracking refresh job: %w", err)
	}
	return nil
}

// StopAll waits for running jobs to finish.
func (jm *JobManager) StopAll() {
	jm.trackingRefreshJob.Stop()
}
