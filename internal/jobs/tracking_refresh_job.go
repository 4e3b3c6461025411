package jobs

import (
	"context"
	"log/slog"
	"time"

	"fulfillment/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// DefaultTrackingRefreshSchedule is used when no schedule is configured.
const DefaultTrackingRefreshSchedule = "@every 30m"

const trackingRefreshTimeout = 5 * time.Minute

// RefreshTrackingStatusesHandler is satisfied by
// *commands.RefreshTrackingStatusesCommandHandler.
type RefreshTrackingStatusesHandler interface {
	Handle(ctx context.Context, cmd commands.RefreshTrackingStatusesCommand) (int, error)
}

// TrackingRefreshJob periodically refreshes live tracking statuses.
type TrackingRefreshJob struct {
	handler  RefreshTrackingStatusesHandler
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

func NewTrackingRefreshJob(handler RefreshTrackingStatusesHandler, schedule string, logger *slog.Logger) *TrackingRefreshJob {
	if schedule == "" {
		schedule = DefaultTrackingRefreshSchedule
	}
	logger = logger.With("component", "tracking_refresh_job")
	cronLogger := cron.PrintfLogger(slog.NewLogLogger(logger.Handler(), slog.LevelInfo))

	return &TrackingRefreshJob{
		handler:  handler,
		schedule: schedule,
		cron:     cron.New(cron.WithChain(cron.Recover(cronLogger), cron.SkipIfStillRunning(cronLogger))),
		logger:   logger,
	}
}

// Start schedules the job. An invalid schedule is returned as an error.
func (j *TrackingRefreshJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, j.Run); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Tracking refresh job started", "schedule", j.schedule)
	return nil
}

// Run performs one refresh.
func (j *TrackingRefreshJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), trackingRefreshTimeout)
	defer cancel()

	updated, err := j.handler.Handle(ctx, commands.NewRefreshTrackingStatusesCommand())
	if err != nil {
		j.logger.ErrorContext(ctx, "Tracking refresh job failed", "updated", updated, "error", err)
		return
	}
	j.logger.DebugContext(ctx, "Tracking refresh job finished", "updated", updated)
}

// Stop stops scheduling and waits for a running refresh to finish.
func (j *TrackingRefreshJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Tracking refresh job stopped")
}
