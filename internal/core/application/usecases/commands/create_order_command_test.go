package commands_test

import (
	"testing"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCreateOrderCommand_ValidInput(t *testing.T) {
	id := kernel.NewUUID()
	vendorID := kernel.NewUUID()
	items := []commands.LineItemInput{{SampleID: kernel.NewUUID(), SampleName: "Oak", VendorID: &vendorID, Quantity: 1}}

	cmd, err := commands.NewCreateOrderCommand(id, " #1001 ", testAddress("TX"), items, " gid://shop/FulfillmentOrder/7 ")

	require.NoError(t, err)
	assert.Equal(t, id, cmd.OrderID())
	assert.Equal(t, "#1001", cmd.Name())
	assert.Equal(t, items, cmd.LineItems())
	assert.Equal(t, "gid://shop/FulfillmentOrder/7", cmd.PlatformFulfillmentOrderID())
	require.NoError(t, cmd.Validate())
}

func TestNewCreateOrderCommand_InvalidInput(t *testing.T) {
	_, err := commands.NewCreateOrderCommand(kernel.UUID{}, "", kernel.Address{}, nil, "")

	require.Error(t, err)
	require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
	require.ErrorIs(t, err, commands.ErrOrderNameIsRequired)
	require.ErrorIs(t, err, kernel.ErrAddressIsNotConstructed)
	require.ErrorIs(t, err, commands.ErrLineItemsAreEmpty)
}

func TestNewCreateOrderCommand_InvalidQuantity(t *testing.T) {
	items := []commands.LineItemInput{{SampleID: kernel.NewUUID(), SampleName: "Oak", Quantity: 0}}

	_, err := commands.NewCreateOrderCommand(kernel.NewUUID(), "#1001", testAddress("TX"), items, "")

	require.ErrorIs(t, err, commands.ErrQuantityIsInvalid)
}

func TestCreateOrderCommand_NotConstructed(t *testing.T) {
	var cmd commands.CreateOrderCommand
	require.ErrorIs(t, cmd.Validate(), commands.ErrCreateOrderCommandIsNotConstructed)
}
