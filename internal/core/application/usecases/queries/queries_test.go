package queries_test

import (
	"context"
	"strings"
	"testing"

	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueries_NotConstructedViaConstructor(t *testing.T) {
	require.ErrorIs(t, queries.GetFulfillmentsQuery{}.Validate(), queries.ErrGetFulfillmentsQueryIsNotConstructed)
	require.ErrorIs(t, queries.GetPickTicketsQuery{}.Validate(), queries.ErrGetPickTicketsQueryIsNotConstructed)
	require.ErrorIs(t, queries.GetLabelDocumentsQuery{}.Validate(), queries.ErrGetLabelDocumentsQueryIsNotConstructed)
	require.ErrorIs(t, queries.DetectCarrierQuery{}.Validate(), queries.ErrDetectCarrierQueryIsNotConstructed)
}

func TestNewGetPickTicketsQuery(t *testing.T) {
	t.Run("dedupes keeping first occurrence", func(t *testing.T) {
		a, b := kernel.NewUUID(), kernel.NewUUID()

		query, err := queries.NewGetPickTicketsQuery([]kernel.UUID{b, a, b})

		require.NoError(t, err)
		assert.Equal(t, []kernel.UUID{b, a}, query.FulfillmentIDs())
	})

	t.Run("empty", func(t *testing.T) {
		_, err := queries.NewGetPickTicketsQuery(nil)
		require.ErrorIs(t, err, queries.ErrPickTicketIDsAreEmpty)

		_, err = queries.NewGetLabelDocumentsQuery(nil)
		require.ErrorIs(t, err, queries.ErrPickTicketIDsAreEmpty)
	})
}

func TestRenderPickTickets(t *testing.T) {
	address := kernel.NewAddress(kernel.AddressFields{
		Line1: "Jane Doe", Line2: "12 Main St", Line4: "Suite 5",
		City: "Austin", State: "TX", PostalCode: "73301", Phone: "5125550100",
	})
	tickets := []queries.PickTicket{
		{
			FulfillmentName: "#1001-F1",
			OrderName:       "#1001",
			ShipTo:          address,
			Items: []queries.PickTicketItem{
				{SampleName: "Oak swatch", Quantity: 2},
				{SampleName: "Walnut swatch", Quantity: 1},
			},
		},
		{
			FulfillmentName: "#1001-F2",
			OrderName:       "#1001",
			ShipTo:          address,
			Items:           []queries.PickTicketItem{{SampleName: "Linen", Quantity: 1}},
		},
	}

	doc := queries.RenderPickTickets(tickets)
	pages := strings.Split(doc, queries.PageBreak)

	require.Len(t, pages, 2)
	assert.Equal(t, "PICK TICKET #1001-F1\n"+
		"Order: #1001\n\n"+
		"Ship to:\n"+
		"  Jane Doe\n"+
		"  12 Main St\n"+
		"  Suite 5\n"+
		"  Austin, TX 73301\n"+
		"  5125550100\n\n"+
		"Items:\n"+
		"  [ ] 2 x Oak swatch\n"+
		"  [ ] 1 x Walnut swatch\n", pages[0])
	assert.Contains(t, pages[1], "PICK TICKET #1001-F2")
	assert.Contains(t, pages[1], "[ ] 1 x Linen")
}

func TestRenderPickTickets_Empty(t *testing.T) {
	assert.Empty(t, queries.RenderPickTickets(nil))
}

func TestDetectCarrierQueryHandler(t *testing.T) {
	handler := queries.NewDetectCarrierQueryHandler(services.NewCarrierDetector())

	t.Run("ups", func(t *testing.T) {
		query, err := queries.NewDetectCarrierQuery(" 1z999 aa1-0123456784 ")
		require.NoError(t, err)

		result, err := handler.Handle(context.Background(), query)

		require.NoError(t, err)
		assert.Equal(t, "1Z999AA10123456784", result.TrackingNumber)
		assert.Equal(t, services.CarrierUPS, result.Carrier)
		assert.Equal(t, "https://www.ups.com/track?tracknum=1Z999AA10123456784", result.TrackingURL)
	})

	t.Run("unknown", func(t *testing.T) {
		query, err := queries.NewDetectCarrierQuery("ABC")
		require.NoError(t, err)

		result, err := handler.Handle(context.Background(), query)

		require.NoError(t, err)
		assert.Empty(t, result.Carrier)
		assert.Empty(t, result.TrackingURL)
	})

	t.Run("blank", func(t *testing.T) {
		_, err := queries.NewDetectCarrierQuery("  ")
		require.ErrorIs(t, err, queries.ErrTrackingNumberIsEmpty)
	})
}
