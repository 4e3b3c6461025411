package commands_test

import (
	"context"
	"testing"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/fulfillment"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/shipment"
	"fulfillment/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

type MockFulfillmentRepository struct{ mock.Mock }

func (m *MockFulfillmentRepository) Add(ctx context.Context, f *fulfillment.Fulfillment) error {
	args := m.Called(ctx, f)
	return args.Error(0)
}

func (m *MockFulfillmentRepository) Update(ctx context.Context, f *fulfillment.Fulfillment) error {
	args := m.Called(ctx, f)
	return args.Error(0)
}

func (m *MockFulfillmentRepository) Get(ctx context.Context, id kernel.UUID) (*fulfillment.Fulfillment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*fulfillment.Fulfillment), args.Error(1)
}

func (m *MockFulfillmentRepository) ListByOrder(ctx context.Context, orderID kernel.UUID) ([]*fulfillment.Fulfillment, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*fulfillment.Fulfillment), args.Error(1)
}

type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) FulfillmentRepository() ports.FulfillmentRepository {
	args := m.Called()
	return args.Get(0).(ports.FulfillmentRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockFulfillmentUoWFactory struct{ mock.Mock }

func (m *MockFulfillmentUoWFactory) Create() commands.FulfillmentUoW {
	args := m.Called()
	return args.Get(0).(commands.FulfillmentUoW)
}

type MockCarrierClient struct{ mock.Mock }

func (m *MockCarrierClient) CreateShipment(ctx context.Context, request shipment.Request) (ports.ShipmentResult, error) {
	args := m.Called(ctx, request)
	return args.Get(0).(ports.ShipmentResult), args.Error(1)
}

func (m *MockCarrierClient) FetchTrackingStatus(ctx context.Context, trackingNumbers []string) map[string]string {
	args := m.Called(ctx, trackingNumbers)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(map[string]string)
}

type MockLabelStore struct{ mock.Mock }

func (m *MockLabelStore) Store(ctx context.Context, data []byte, filename string) (string, error) {
	args := m.Called(ctx, data, filename)
	return args.String(0), args.Error(1)
}

func (m *MockLabelStore) Load(ctx context.Context, filename string) (ports.LabelDocument, error) {
	args := m.Called(ctx, filename)
	return args.Get(0).(ports.LabelDocument), args.Error(1)
}

type MockTrackingLedger struct{ mock.Mock }

func (m *MockTrackingLedger) Get(ctx context.Context, fulfillmentID kernel.UUID) (*fulfillment.TrackingInfo, error) {
	args := m.Called(ctx, fulfillmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*fulfillment.TrackingInfo), args.Error(1)
}

func (m *MockTrackingLedger) Record(ctx context.Context, fulfillmentID kernel.UUID, info fulfillment.TrackingInfo) error {
	args := m.Called(ctx, fulfillmentID, info)
	return args.Error(0)
}

func (m *MockTrackingLedger) RecordIfAbsent(
	ctx context.Context,
	fulfillmentID kernel.UUID,
	info fulfillment.TrackingInfo,
) (fulfillment.TrackingInfo, bool, error) {
	args := m.Called(ctx, fulfillmentID, info)
	return args.Get(0).(fulfillment.TrackingInfo), args.Bool(1), args.Error(2)
}

func (m *MockTrackingLedger) UpdateLiveStatus(ctx context.Context, fulfillmentID kernel.UUID, status string) error {
	args := m.Called(ctx, fulfillmentID, status)
	return args.Error(0)
}

func (m *MockTrackingLedger) ListActive(ctx context.Context) ([]ports.TrackedFulfillment, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ports.TrackedFulfillment), args.Error(1)
}

type MockPlatformClient struct{ mock.Mock }

func (m *MockPlatformClient) UpdateTracking(ctx context.Context, update ports.TrackingUpdate) error {
	args := m.Called(ctx, update)
	return args.Error(0)
}

type MockLabelRunner struct{ mock.Mock }

func (m *MockLabelRunner) Run(ctx context.Context, in commands.LabelRunInput) (*fulfillment.Fulfillment, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*fulfillment.Fulfillment), args.Error(1)
}

var testShipDate = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

func testAddress(state string) kernel.Address {
	return kernel.NewAddress(kernel.AddressFields{
		Line1:      "Jane Doe",
		Line2:      "12 Main St",
		City:       "Austin",
		State:      state,
		PostalCode: "73301",
		Phone:      "512-555-0100",
	})
}

func testShipper() shipment.Party {
	return shipment.Party{
		Contact: shipment.Contact{PersonName: "Desk", PhoneNumber: "6465550100", CompanyName: "Sample Co"},
		Address: shipment.Address{
			StreetLines:         []string{"1 Warehouse Way"},
			City:                "Brooklyn",
			StateOrProvinceCode: "NY",
			PostalCode:          "11201",
			CountryCode:         "US",
		},
	}
}

// orderFixture builds an order whose line items all belong to one vendor and
// its single fulfillment.
func orderFixture(t *testing.T, address kernel.Address) (*order.Order, *fulfillment.Fulfillment) {
	t.Helper()
	vendorID := kernel.NewUUID()
	sample, err := order.NewSample(kernel.NewUUID(), "Oak swatch", &vendorID)
	require.NoError(t, err)
	li, err := order.NewLineItem(kernel.NewUUID(), sample, 1)
	require.NoError(t, err)
	o, err := order.NewOrder(kernel.NewUUID(), "#1001", address, []*order.LineItem{li})
	require.NoError(t, err)

	fli, err := fulfillment.NewLineItem(kernel.NewUUID(), li.ID())
	require.NoError(t, err)
	f, err := fulfillment.NewFulfillment(kernel.NewUUID(), o.ID(), vendorID, "#1001-F1", []fulfillment.LineItem{fli})
	require.NoError(t, err)
	return o, f
}

func trackedFulfillment(t *testing.T, number string) *fulfillment.Fulfillment {
	t.Helper()
	_, f := orderFixture(t, testAddress("TX"))
	info, err := fulfillment.NewTrackingInfo("fedex", number, "http://labels/"+number+".pdf")
	require.NoError(t, err)
	require.NoError(t, f.AttachTracking(info))
	return f
}
