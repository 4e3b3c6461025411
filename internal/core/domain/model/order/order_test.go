package order_test

import (
	"testing"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validAddress() kernel.Address {
	return kernel.NewAddress(kernel.AddressFields{
		Line1:      "Jane Doe",
		Line2:      "12 Main St",
		City:       "Austin",
		State:      "Texas",
		PostalCode: "73301",
		Phone:      "512-555-0100",
	})
}

func newItem(t *testing.T, vendorID *kernel.UUID) *order.LineItem {
	t.Helper()
	sample, err := order.NewSample(kernel.NewUUID(), "Swatch", vendorID)
	require.NoError(t, err)
	item, err := order.NewLineItem(kernel.NewUUID(), sample, 1)
	require.NoError(t, err)
	return item
}

func TestNewOrder(t *testing.T) {
	vendorID := kernel.NewUUID()

	t.Run("should create valid order", func(t *testing.T) {
		id := kernel.NewUUID()
		items := []*order.LineItem{newItem(t, &vendorID), newItem(t, nil)}

		o, err := order.NewOrder(id, " #1001 ", validAddress(), items)

		require.NoError(t, err)
		require.NoError(t, o.Validate())
		assert.True(t, o.ID().IsEqual(id))
		assert.Equal(t, "#1001", o.Name())
		assert.Len(t, o.LineItems(), 2)
		assert.Equal(t, "Austin", o.Address().City())
	})

	t.Run("should fail with blank name", func(t *testing.T) {
		o, err := order.NewOrder(kernel.NewUUID(), "  ", validAddress(), nil)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Nil(t, o)
	})

	t.Run("should fail with unconstructed address", func(t *testing.T) {
		o, err := order.NewOrder(kernel.NewUUID(), "#1", kernel.Address{}, nil)

		require.Error(t, err)
		assert.Nil(t, o)
		assert.Contains(t, err.Error(), "address must be created")
	})

	t.Run("should fail with duplicated line item", func(t *testing.T) {
		item := newItem(t, &vendorID)

		_, err := order.NewOrder(kernel.NewUUID(), "#1", validAddress(), []*order.LineItem{item, item})

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should join multiple validation errors", func(t *testing.T) {
		var invalidID kernel.UUID

		_, err := order.NewOrder(invalidID, "", kernel.Address{}, nil)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "UUID must be created")
		assert.Contains(t, err.Error(), "order name")
		assert.Contains(t, err.Error(), "address must be created")
	})
}

func TestOrder_Validate(t *testing.T) {
	t.Run("should fail validation for nil order", func(t *testing.T) {
		var o *order.Order
		assert.Equal(t, order.ErrOrderIsNotConstructed, o.Validate())
	})

	t.Run("should fail validation for zero value order", func(t *testing.T) {
		o := &order.Order{}
		assert.Equal(t, order.ErrOrderIsNotConstructed, o.Validate())
	})
}

func TestOrder_LineItems(t *testing.T) {
	vendorID := kernel.NewUUID()
	first := newItem(t, &vendorID)
	second := newItem(t, nil)
	o, err := order.NewOrder(kernel.NewUUID(), "#1002", validAddress(), []*order.LineItem{first, second})
	require.NoError(t, err)

	t.Run("keeps insertion order", func(t *testing.T) {
		items := o.LineItems()
		assert.True(t, items[0].ID().IsEqual(first.ID()))
		assert.True(t, items[1].ID().IsEqual(second.ID()))
	})

	t.Run("returned slice is a copy", func(t *testing.T) {
		items := o.LineItems()
		items[0] = second
		assert.True(t, o.LineItems()[0].ID().IsEqual(first.ID()))
	})

	t.Run("lookup by id", func(t *testing.T) {
		found, ok := o.LineItem(second.ID())
		require.True(t, ok)
		assert.Nil(t, found.VendorID())

		_, ok = o.LineItem(kernel.NewUUID())
		assert.False(t, ok)
	})
}

func TestNewLineItem(t *testing.T) {
	sample, err := order.NewSample(kernel.NewUUID(), "Swatch", nil)
	require.NoError(t, err)

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		_, err := order.NewLineItem(kernel.NewUUID(), sample, 0)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Contains(t, err.Error(), "0 is not greater than 0")
	})

	t.Run("rejects unconstructed sample", func(t *testing.T) {
		_, err := order.NewLineItem(kernel.NewUUID(), order.Sample{}, 1)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}

func TestNewSample(t *testing.T) {
	t.Run("vendor id is copied", func(t *testing.T) {
		vendorID := kernel.NewUUID()
		sample, err := order.NewSample(kernel.NewUUID(), "Swatch", &vendorID)
		require.NoError(t, err)

		vendorID = kernel.NewUUID()
		assert.False(t, sample.VendorID().IsEqual(vendorID))
		assert.True(t, sample.HasVendor())
	})

	t.Run("requires name", func(t *testing.T) {
		_, err := order.NewSample(kernel.NewUUID(), "", nil)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}
