package commands

import (
	"errors"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrOrderNameIsRequired = errors.New("order name is required")
	ErrLineItemsAreEmpty   = errors.New("order must have at least one line item")
	ErrQuantityIsInvalid   = errors.New("quantity must be greater than 0")
)

// LineItemInput is one cart entry: a catalog sample and a quantity.
type LineItemInput struct {
	SampleID   kernel.UUID
	SampleName string
	VendorID   *kernel.UUID
	Quantity   int
}

// CreateOrderCommand commits a cart as an order. The order and its per-vendor
// fulfillments are written in one transaction.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(kernel.NewUUID(), "#1001", address, items, "")
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//	fulfillments, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID                    kernel.UUID
	name                       string
	address                    kernel.Address
	lineItems                  []LineItemInput
	platformFulfillmentOrderID string

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand validates the cart. platformFulfillmentOrderID is
// optional and is linked to every fulfillment created for the order.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	name string,
	address kernel.Address,
	lineItems []LineItemInput,
	platformFulfillmentOrderID string,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		platformFulfillmentOrderID: strings.TrimSpace(platformFulfillmentOrderID),
		guard:                      guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setName(name),
		cmd.setAddress(address),
		cmd.setLineItems(lineItems),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) OrderID() kernel.UUID { return c.orderID }

func (c CreateOrderCommand) Name() string { return c.name }

func (c CreateOrderCommand) Address() kernel.Address { return c.address }

func (c CreateOrderCommand) LineItems() []LineItemInput {
	items := make([]LineItemInput, len(c.lineItems))
	copy(items, c.lineItems)
	return items
}

func (c CreateOrderCommand) PlatformFulfillmentOrderID() string { return c.platformFulfillmentOrderID }

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrOrderNameIsRequired
	}

	c.name = name
	return nil
}

func (c *CreateOrderCommand) setAddress(address kernel.Address) error {
	if err := address.Validate(); err != nil {
		return err
	}

	c.address = address
	return nil
}

func (c *CreateOrderCommand) setLineItems(lineItems []LineItemInput) error {
	if len(lineItems) == 0 {
		return ErrLineItemsAreEmpty
	}
	for _, li := range lineItems {
		if err := li.SampleID.Validate(); err != nil {
			return err
		}
		if li.Quantity <= 0 {
			return ErrQuantityIsInvalid
		}
	}

	c.lineItems = append([]LineItemInput(nil), lineItems...)
	return nil
}
