package shipment_test

import (
	"testing"

	"fulfillment/internal/core/domain/model/shipment"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServiceTypeFor(t *testing.T) {
	assert.Equal(t, shipment.ServiceTwoDay, shipment.ServiceTypeFor(shipment.PackagingCarrierPak))
	assert.Equal(t, shipment.ServiceGroundHome, shipment.ServiceTypeFor(shipment.PackagingYours))
	assert.Equal(t, shipment.ServiceGroundHome, shipment.ServiceTypeFor("FEDEX_BOX"))
}

func TestNewShipper(t *testing.T) {
	t.Run("normalizes state and phone", func(t *testing.T) {
		p, err := shipment.NewShipper(shipment.ShipperFields{
			PersonName:  "Shipping Desk",
			CompanyName: "Sample Co",
			Phone:       "+1 (646) 555-0100",
			Street:      "1 Warehouse Way",
			City:        "Brooklyn",
			State:       "new york",
			PostalCode:  "11201",
		})

		require.NoError(t, err)
		assert.Equal(t, "6465550100", p.Contact.PhoneNumber)
		assert.Equal(t, "NY", p.Address.StateOrProvinceCode)
		assert.Equal(t, "US", p.Address.CountryCode)
		assert.Equal(t, []string{"1 Warehouse Way"}, p.Address.StreetLines)
	})

	t.Run("reports every missing field", func(t *testing.T) {
		_, err := shipment.NewShipper(shipment.ShipperFields{State: "Atlantis"})

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Contains(t, err.Error(), "shipper city")
		assert.Contains(t, err.Error(), "phone")
	})
}
