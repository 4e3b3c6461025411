// Package ports defines the contracts between the fulfillment core and its
// infrastructure: repositories, the unit of work, the tracking ledger, the
// carrier, the label store and the commerce platform.
package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Orders are written once, together with their line items.
type OrderRepository interface {
	// Add persists a new order and its line items.
	Add(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order with its line items and address.
	// Returns *errs.ObjectNotFoundError when no order has the id.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)
}
