package commands_test

import (
	"errors"
	"log/slog"
	"testing"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/fulfillment"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewRecordTrackingCommand(t *testing.T) {
	_, err := commands.NewRecordTrackingCommand(kernel.UUID{}, "", "   ", "")

	require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
	require.ErrorIs(t, err, commands.ErrTrackingNumberIsRequired)
}

func TestRecordTrackingCommandHandler_Handle_DetectsCarrierAndSyncs(t *testing.T) {
	ctx := t.Context()
	_, f := orderFixture(t, testAddress("TX"))
	require.NoError(t, f.LinkPlatformFulfillmentOrder("gid://shop/FulfillmentOrder/9"))

	repo := new(MockFulfillmentRepository)
	uow := new(MockUoW)
	uow.On("FulfillmentRepository").Return(repo).Once()
	repo.On("Get", ctx, f.ID()).Return(f, nil).Once()

	factory := new(MockFulfillmentUoWFactory)
	factory.On("Create").Return(uow).Once()

	ledger := new(MockTrackingLedger)
	ledger.On("Record", ctx, f.ID(), mock.MatchedBy(func(info fulfillment.TrackingInfo) bool {
		return info.Carrier() == services.CarrierUPS && info.Number() == "1Z999AA10123456784"
	})).Return(nil).Once()

	platform := new(MockPlatformClient)
	platform.On("UpdateTracking", ctx, ports.TrackingUpdate{
		FulfillmentOrderID: "gid://shop/FulfillmentOrder/9",
		Company:            services.CarrierUPS,
		Number:             "1Z999AA10123456784",
		URL:                "https://www.ups.com/track?tracknum=1Z999AA10123456784",
	}).Return(errors.New("throttled")).Once()

	cmd, err := commands.NewRecordTrackingCommand(f.ID(), "", " 1z999 aa1 0123456784 ", "")
	require.NoError(t, err)

	handler := commands.NewRecordTrackingCommandHandler(factory, ledger, services.NewCarrierDetector(), platform, false, slog.Default())
	got, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, services.CarrierUPS, got.Tracking().Carrier())
	ledger.AssertExpectations(t)
	platform.AssertExpectations(t)
	uow.AssertNotCalled(t, "Begin", mock.Anything)
}

func TestRecordTrackingCommandHandler_Handle_OverwritesExisting(t *testing.T) {
	ctx := t.Context()
	f := trackedFulfillment(t, "794600000031")

	repo := new(MockFulfillmentRepository)
	uow := new(MockUoW)
	uow.On("FulfillmentRepository").Return(repo).Once()
	repo.On("Get", ctx, f.ID()).Return(f, nil).Once()
	factory := new(MockFulfillmentUoWFactory)
	factory.On("Create").Return(uow).Once()

	ledger := new(MockTrackingLedger)
	ledger.On("Record", ctx, f.ID(), mock.Anything).Return(nil).Once()

	cmd, err := commands.NewRecordTrackingCommand(f.ID(), "usps", "9400100000000000000000", "")
	require.NoError(t, err)

	handler := commands.NewRecordTrackingCommandHandler(factory, ledger, services.NewCarrierDetector(), nil, false, slog.Default())
	got, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, "usps", got.Tracking().Carrier())
	assert.Equal(t, "9400100000000000000000", got.Tracking().Number())
}

func TestRecordTrackingCommandHandler_Handle_LedgerFailure(t *testing.T) {
	ctx := t.Context()
	_, f := orderFixture(t, testAddress("TX"))

	repo := new(MockFulfillmentRepository)
	uow := new(MockUoW)
	uow.On("FulfillmentRepository").Return(repo).Once()
	repo.On("Get", ctx, f.ID()).Return(f, nil).Once()
	factory := new(MockFulfillmentUoWFactory)
	factory.On("Create").Return(uow).Once()

	ledger := new(MockTrackingLedger)
	ledger.On("Record", ctx, f.ID(), mock.Anything).Return(errors.New("db down")).Once()
	platform := new(MockPlatformClient)

	cmd, err := commands.NewRecordTrackingCommand(f.ID(), "fedex", "794600000032", "")
	require.NoError(t, err)

	handler := commands.NewRecordTrackingCommandHandler(factory, ledger, services.NewCarrierDetector(), platform, false, slog.Default())
	_, err = handler.Handle(ctx, cmd)

	require.EqualError(t, err, "db down")
	assert.False(t, f.IsTracked())
	platform.AssertNotCalled(t, "UpdateTracking", mock.Anything, mock.Anything)
}
