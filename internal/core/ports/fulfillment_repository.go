package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/fulfillment"
	"fulfillment/internal/core/domain/model/kernel"
)

// FulfillmentRepository defines the persistence contract for fulfillment aggregates.
// Loaded aggregates carry their line items and tracking record.
type FulfillmentRepository interface {
	// Add persists a new fulfillment and its line items. A second fulfillment
	// for the same (order, vendor) pair is rejected by the store.
	Add(ctx context.Context, aggregate *fulfillment.Fulfillment) error

	// Update persists status, archive flag and platform id. When the aggregate
	// no longer has tracking, the stored tracking record is removed; otherwise
	// tracking is left to the TrackingLedger.
	Update(ctx context.Context, aggregate *fulfillment.Fulfillment) error

	// Get returns *errs.ObjectNotFoundError when no fulfillment has the id.
	Get(ctx context.Context, id kernel.UUID) (*fulfillment.Fulfillment, error)

	// ListByOrder returns the fulfillments of an order in creation order.
	ListByOrder(ctx context.Context, orderID kernel.UUID) ([]*fulfillment.Fulfillment, error)
}
