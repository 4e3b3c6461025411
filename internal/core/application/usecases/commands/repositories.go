// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"fulfillment/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// FulfillmentRepoFactory provides access to fulfillment repository within a transaction.
	FulfillmentRepoFactory interface {
		FulfillmentRepository() ports.FulfillmentRepository
	}

	// FulfillmentUoW manages transactions for fulfillment-only operations.
	FulfillmentUoW interface {
		TxManager
		FulfillmentRepoFactory
	}

	// FulfillmentUoWFactory creates new fulfillment unit of work instances.
	FulfillmentUoWFactory interface {
		Create() FulfillmentUoW
	}

	// UoW spans orders and fulfillments. Order creation writes both in one
	// transaction; the label pipeline reads both without beginning one.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   _ = uow.OrderRepository().Add(ctx, o)
	//   _ = uow.FulfillmentRepository().Add(ctx, f)
	//
	//   err = uow.Commit(ctx)
	UoW interface {
		TxManager
		OrderRepoFactory
		FulfillmentRepoFactory
	}

	// UoWFactory creates new unit of work instances for cross-aggregate operations.
	UoWFactory interface {
		Create() UoW
	}
)
