package commands_test

import (
	"log/slog"
	"testing"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestRefreshTrackingStatusesCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()
	moving := trackedFulfillment(t, "794600000041")
	unchanged := trackedFulfillment(t, "794600000042")
	unknown := trackedFulfillment(t, "794600000043")

	active := []ports.TrackedFulfillment{
		{FulfillmentID: moving.ID(), Tracking: *moving.Tracking()},
		{FulfillmentID: unchanged.ID(), Tracking: unchanged.Tracking().WithLiveStatus("Delivered")},
		{FulfillmentID: unknown.ID(), Tracking: *unknown.Tracking()},
	}

	ledger := new(MockTrackingLedger)
	carrier := new(MockCarrierClient)

	mock.InOrder(
		ledger.On("ListActive", ctx).Return(active, nil).Once(),
		carrier.On("FetchTrackingStatus", ctx, []string{"794600000041", "794600000042", "794600000043"}).
			Return(map[string]string{
				"794600000041": "In transit",
				"794600000042": "Delivered",
			}).Once(),
		ledger.On("UpdateLiveStatus", ctx, moving.ID(), "In transit").Return(nil).Once(),
	)

	handler := commands.NewRefreshTrackingStatusesCommandHandler(ledger, carrier, slog.Default())
	updated, err := handler.Handle(ctx, commands.NewRefreshTrackingStatusesCommand())

	require.NoError(t, err)
	assert.Equal(t, 1, updated)
	ledger.AssertExpectations(t)
	carrier.AssertExpectations(t)
}

func TestRefreshTrackingStatusesCommandHandler_Handle_CarrierUnavailable(t *testing.T) {
	ctx := t.Context()
	f := trackedFulfillment(t, "794600000044")

	ledger := new(MockTrackingLedger)
	ledger.On("ListActive", ctx).Return([]ports.TrackedFulfillment{{FulfillmentID: f.ID(), Tracking: *f.Tracking()}}, nil).Once()
	carrier := new(MockCarrierClient)
	carrier.On("FetchTrackingStatus", ctx, mock.Anything).Return(nil).Once()

	handler := commands.NewRefreshTrackingStatusesCommandHandler(ledger, carrier, slog.Default())
	updated, err := handler.Handle(ctx, commands.NewRefreshTrackingStatusesCommand())

	require.NoError(t, err)
	assert.Zero(t, updated)
	ledger.AssertNotCalled(t, "UpdateLiveStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestRefreshTrackingStatusesCommandHandler_Handle_NothingActive(t *testing.T) {
	ctx := t.Context()
	ledger := new(MockTrackingLedger)
	ledger.On("ListActive", ctx).Return([]ports.TrackedFulfillment{}, nil).Once()
	carrier := new(MockCarrierClient)

	handler := commands.NewRefreshTrackingStatusesCommandHandler(ledger, carrier, slog.Default())
	updated, err := handler.Handle(ctx, commands.NewRefreshTrackingStatusesCommand())

	require.NoError(t, err)
	assert.Zero(t, updated)
	carrier.AssertNotCalled(t, "FetchTrackingStatus", mock.Anything, mock.Anything)
}
