package order

import (
	"errors"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
)

// Order is the aggregate root for a committed cart.
//
// Order follows these invariants:
//   - Must have a valid unique identifier
//   - Must have a non-blank display name, used as the customer reference on labels
//   - Must have a constructed Address
//   - Line items are unique by id and are not modified once fulfillments reference them
type Order struct {
	id            kernel.UUID
	name          string
	address       kernel.Address
	lineItems     []*LineItem
	isConstructed bool
}

// NewOrder creates an order from a committed cart.
//
// Example:
//
//	sample, _ := order.NewSample(kernel.NewUUID(), "Swatch 12", &vendorID)
//	item, _ := order.NewLineItem(kernel.NewUUID(), sample, 1)
//	o, err := order.NewOrder(kernel.NewUUID(), "#1001", address, []*order.LineItem{item})
func NewOrder(id kernel.UUID, name string, address kernel.Address, lineItems []*LineItem) (*Order, error) {
	o := &Order{isConstructed: true}

	if err := errors.Join(
		o.setID(id),
		o.setName(name),
		o.setAddress(address),
		o.setLineItems(lineItems),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder rebuilds an order loaded from persistence, applying the same
// validation as NewOrder.
func RestoreOrder(id kernel.UUID, name string, address kernel.Address, lineItems []*LineItem) (*Order, error) {
	return NewOrder(id, name, address, lineItems)
}

func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}

	return nil
}

func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID { return o.id }

// Name returns the display name, e.g. "#1001".
func (o *Order) Name() string { return o.name }

func (o *Order) Address() kernel.Address { return o.address }

// LineItems returns the line items in the order they were added.
func (o *Order) LineItems() []*LineItem {
	items := make([]*LineItem, len(o.lineItems))
	copy(items, o.lineItems)
	return items
}

// LineItem finds a line item by id.
func (o *Order) LineItem(id kernel.UUID) (*LineItem, bool) {
	for _, li := range o.lineItems {
		if li.ID().IsEqual(id) {
			return li, true
		}
	}
	return nil, false
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("order name")
	}
	o.name = name
	return nil
}

func (o *Order) setAddress(address kernel.Address) error {
	if err := address.Validate(); err != nil {
		return err
	}
	o.address = address
	return nil
}

func (o *Order) setLineItems(lineItems []*LineItem) error {
	seen := make(map[kernel.UUID]struct{}, len(lineItems))
	items := make([]*LineItem, 0, len(lineItems))
	for _, li := range lineItems {
		if err := li.Validate(); err != nil {
			return err
		}
		if _, dup := seen[li.ID()]; dup {
			return errs.NewValueIsInvalidError("line item " + li.ID().String() + " appears twice")
		}
		seen[li.ID()] = struct{}{}
		items = append(items, li)
	}
	o.lineItems = items
	return nil
}
