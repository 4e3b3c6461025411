package commands

import (
	"context"
	"log/slog"

	"fulfillment/internal/core/domain/model/fulfillment"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"
)

// CreateOrderCommandHandler persists an order and partitions it into one
// fulfillment per vendor. Line items without a vendor are logged and skipped.
//
// Example:
//
//	handler := NewCreateOrderCommandHandler(uowFactory, services.NewOrderPartitioner(), logger)
//	fulfillments, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("order creation failed: %w", err)
//	}
type CreateOrderCommandHandler struct {
	uowFactory  UoWFactory
	partitioner services.OrderPartitioner
	logger      *slog.Logger
}

// NewCreateOrderCommandHandler creates a handler for order creation operations.
func NewCreateOrderCommandHandler(
	uowFactory UoWFactory,
	partitioner services.OrderPartitioner,
	logger *slog.Logger,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory:  uowFactory,
		partitioner: partitioner,
		logger:      logger.With("component", "CreateOrderCommandHandler"),
	}
}

// Handle builds the order, partitions it and writes everything atomically.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) ([]*fulfillment.Fulfillment, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	o, err := buildOrder(cmd)
	if err != nil {
		return nil, err
	}

	fulfillments, dropped, err := h.partitioner.NewFulfillments(o)
	if err != nil {
		return nil, err
	}
	for _, li := range dropped {
		h.logger.WarnContext(ctx, "line item has no vendor, not fulfilled",
			"order", o.Name(),
			"line_item_id", li.ID().String(),
			"sample", li.Sample().Name())
	}

	if platformID := cmd.PlatformFulfillmentOrderID(); platformID != "" {
		for _, f := range fulfillments {
			if err = f.LinkPlatformFulfillmentOrder(platformID); err != nil {
				return nil, err
			}
		}
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, o); err != nil {
		return nil, err
	}

	fulfillmentRepo := uow.FulfillmentRepository()
	for _, f := range fulfillments {
		if err = fulfillmentRepo.Add(ctx, f); err != nil {
			return nil, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return fulfillments, nil
}

func buildOrder(cmd CreateOrderCommand) (*order.Order, error) {
	inputs := cmd.LineItems()
	items := make([]*order.LineItem, 0, len(inputs))
	for _, in := range inputs {
		sample, err := order.NewSample(in.SampleID, in.SampleName, in.VendorID)
		if err != nil {
			return nil, err
		}
		li, err := order.NewLineItem(kernel.NewUUID(), sample, in.Quantity)
		if err != nil {
			return nil, err
		}
		items = append(items, li)
	}

	return order.NewOrder(cmd.OrderID(), cmd.Name(), cmd.Address(), items)
}
