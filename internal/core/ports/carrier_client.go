package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/shipment"
)

// ShipmentResult is a purchased label.
type ShipmentResult struct {
	Carrier        string
	TrackingNumber string
	Label          []byte
}

// CarrierClient buys labels from, and reads status out of, a shipping carrier.
// Implementations do not retry.
type CarrierClient interface {
	// CreateShipment authenticates and creates one shipment. Failures are
	// *errs.CarrierAuthError or *errs.CarrierAPIError.
	CreateShipment(ctx context.Context, request shipment.Request) (ShipmentResult, error)

	// FetchTrackingStatus maps tracking numbers to a status description.
	// It returns nil on any failure; callers show nothing rather than erroring.
	FetchTrackingStatus(ctx context.Context, trackingNumbers []string) map[string]string
}
