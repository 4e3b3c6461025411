package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/fulfillment"
	"fulfillment/internal/core/domain/model/kernel"
)

// TrackedFulfillment pairs a fulfillment id with its tracking record.
type TrackedFulfillment struct {
	FulfillmentID kernel.UUID
	Tracking      fulfillment.TrackingInfo
}

// TrackingLedger stores at most one tracking record per fulfillment.
// Each call touches a single row, so calls for different fulfillments never
// contend with each other.
type TrackingLedger interface {
	// Get returns nil without error when the fulfillment has no tracking.
	Get(ctx context.Context, fulfillmentID kernel.UUID) (*fulfillment.TrackingInfo, error)

	// Record creates the record or overwrites it in place. Used for manual entry.
	Record(ctx context.Context, fulfillmentID kernel.UUID, info fulfillment.TrackingInfo) error

	// RecordIfAbsent inserts the record only when none exists. When another
	// writer got there first the stored record is returned with created=false.
	RecordIfAbsent(
		ctx context.Context,
		fulfillmentID kernel.UUID,
		info fulfillment.TrackingInfo,
	) (stored fulfillment.TrackingInfo, created bool, err error)

	// UpdateLiveStatus stores the latest carrier status description.
	UpdateLiveStatus(ctx context.Context, fulfillmentID kernel.UUID, status string) error

	// ListActive returns tracking for fulfillments that are neither archived,
	// complete nor cancelled.
	ListActive(ctx context.Context) ([]TrackedFulfillment, error)
}
