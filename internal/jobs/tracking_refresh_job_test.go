package jobs_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/jobs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRefreshHandler struct{ mock.Mock }

func (m *MockRefreshHandler) Handle(ctx context.Context, cmd commands.RefreshTrackingStatusesCommand) (int, error) {
	args := m.Called(ctx, cmd)
	return args.Int(0), args.Error(1)
}

func TestTrackingRefreshJob_Run(t *testing.T) {
	handler := new(MockRefreshHandler)
	handler.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.RefreshTrackingStatusesCommand) bool {
		return cmd.Validate() == nil
	})).Return(3, nil).Once()

	job := jobs.NewTrackingRefreshJob(handler, "", slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)))
	job.Run()

	handler.AssertExpectations(t)
}

func TestTrackingRefreshJob_RunLogsFailure(t *testing.T) {
	var logs bytes.Buffer
	handler := new(MockRefreshHandler)
	handler.On("Handle", mock.Anything, mock.Anything).Return(1, errors.New("db down")).Once()

	job := jobs.NewTrackingRefreshJob(handler, "", slog.New(slog.NewTextHandler(&logs, nil)))
	job.Run()

	assert.Contains(t, logs.String(), "Tracking refresh job failed")
	assert.Contains(t, logs.String(), "db down")
	assert.Contains(t, logs.String(), "component=tracking_refresh_job")
	handler.AssertExpectations(t)
}

func TestTrackingRefreshJob_StartStop(t *testing.T) {
	var logs bytes.Buffer
	job := jobs.NewTrackingRefreshJob(new(MockRefreshHandler), "@every 1h", slog.New(slog.NewTextHandler(&logs, nil)))

	require.NoError(t, job.Start())
	job.Stop()

	assert.Contains(t, logs.String(), "schedule=\"@every 1h\"")
	assert.Contains(t, logs.String(), "Tracking refresh job stopped")
}

func TestJobManager_InvalidSchedule(t *testing.T) {
	manager := jobs.NewJobManager(new(MockRefreshHandler), "every now and then", slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)))

	err := manager.StartAll()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to start tracking refresh job")
}
