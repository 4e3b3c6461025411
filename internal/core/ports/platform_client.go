package ports

import "context"

// TrackingUpdate mirrors a tracking number onto a platform fulfillment order.
type TrackingUpdate struct {
	FulfillmentOrderID string
	NotifyCustomer     bool
	Company            string
	Number             string
	URL                string
}

// PlatformClient pushes tracking to the external commerce platform. Callers
// log and swallow its errors.
type PlatformClient interface {
	UpdateTracking(ctx context.Context, update TrackingUpdate) error
}
