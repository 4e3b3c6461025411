package commands_test

import (
	"errors"
	"log/slog"
	"testing"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newCreateOrderCommand(t *testing.T, platformID string) commands.CreateOrderCommand {
	t.Helper()
	vendorA := kernel.NewUUID()
	vendorB := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(kernel.NewUUID(), "#1001", testAddress("TX"), []commands.LineItemInput{
		{SampleID: kernel.NewUUID(), SampleName: "Oak", VendorID: &vendorA, Quantity: 1},
		{SampleID: kernel.NewUUID(), SampleName: "Walnut", VendorID: &vendorB, Quantity: 2},
		{SampleID: kernel.NewUUID(), SampleName: "Ash", VendorID: &vendorA, Quantity: 1},
		{SampleID: kernel.NewUUID(), SampleName: "Unsourced", Quantity: 1},
	}, platformID)
	require.NoError(t, err)
	return cmd
}

func TestCreateOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	cmd := newCreateOrderCommand(t, "gid://shop/FulfillmentOrder/7")

	orderRepo := new(MockOrderRepository)
	fulfillmentRepo := new(MockFulfillmentRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Add", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("FulfillmentRepository").Return(fulfillmentRepo).Once(),
		fulfillmentRepo.On("Add", ctx, mock.AnythingOfType("*fulfillment.Fulfillment")).Return(nil).Twice(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCreateOrderCommandHandler(factory, services.NewOrderPartitioner(), slog.Default())
	fulfillments, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	require.Len(t, fulfillments, 2)
	assert.Equal(t, "#1001-F1", fulfillments[0].Name())
	assert.Len(t, fulfillments[0].LineItems(), 2)
	assert.Equal(t, "#1001-F2", fulfillments[1].Name())
	assert.Len(t, fulfillments[1].LineItems(), 1)
	for _, f := range fulfillments {
		assert.Equal(t, cmd.OrderID(), f.OrderID())
		assert.Equal(t, "gid://shop/FulfillmentOrder/7", f.PlatformFulfillmentOrderID())
		assert.False(t, f.IsTracked())
	}
	orderRepo.AssertExpectations(t)
	fulfillmentRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_ValidationError(t *testing.T) {
	factory := new(MockUoWFactory)
	handler := commands.NewCreateOrderCommandHandler(factory, services.NewOrderPartitioner(), slog.Default())

	_, err := handler.Handle(t.Context(), commands.CreateOrderCommand{})

	require.ErrorIs(t, err, commands.ErrCreateOrderCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}

func TestCreateOrderCommandHandler_Handle_FulfillmentAddFails(t *testing.T) {
	ctx := t.Context()
	cmd := newCreateOrderCommand(t, "")

	orderRepo := new(MockOrderRepository)
	fulfillmentRepo := new(MockFulfillmentRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Add", ctx, mock.Anything).Return(nil).Once(),
		uow.On("FulfillmentRepository").Return(fulfillmentRepo).Once(),
		fulfillmentRepo.On("Add", ctx, mock.Anything).Return(errors.New("duplicate key")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCreateOrderCommandHandler(factory, services.NewOrderPartitioner(), slog.Default())
	_, err := handler.Handle(ctx, cmd)

	require.EqualError(t, err, "duplicate key")
	uow.AssertNotCalled(t, "Commit", mock.Anything)
	uow.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_BeginError(t *testing.T) {
	ctx := t.Context()
	cmd := newCreateOrderCommand(t, "")

	uow := new(MockUoW)
	factory := new(MockUoWFactory)
	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(errors.New("begin error")).Once(),
	)

	handler := commands.NewCreateOrderCommandHandler(factory, services.NewOrderPartitioner(), slog.Default())
	_, err := handler.Handle(ctx, cmd)

	require.EqualError(t, err, "begin error")
}
