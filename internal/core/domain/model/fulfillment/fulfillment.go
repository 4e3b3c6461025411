package fulfillment

import (
	"errors"
	"fmt"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

var (
	// ErrFulfillmentIsNotConstructed is returned when a Fulfillment was not created
	// through NewFulfillment or RestoreFulfillment.
	ErrFulfillmentIsNotConstructed = errors.New("Fulfillment must be created via NewFulfillment constructor")
)

// LineItem links a fulfillment to one order line item.
type LineItem struct {
	id              kernel.UUID
	orderLineItemID kernel.UUID
}

func NewLineItem(id kernel.UUID, orderLineItemID kernel.UUID) (LineItem, error) {
	if err := errors.Join(id.Validate(), orderLineItemID.Validate()); err != nil {
		return LineItem{}, err
	}
	return LineItem{id: id, orderLineItemID: orderLineItemID}, nil
}

func (li LineItem) ID() kernel.UUID              { return li.id }
func (li LineItem) OrderLineItemID() kernel.UUID { return li.orderLineItemID }

// Fulfillment is the aggregate root for one vendor's share of an order.
//
// Fulfillment follows these invariants:
//   - Must have valid identifiers for itself, its order and its vendor
//   - Must have a non-blank name, "{orderName}-F{n}" when created by partitioning
//   - Must reference at least one order line item, each at most once
//   - Status is always a valid Status
type Fulfillment struct {
	id                         kernel.UUID
	orderID                    kernel.UUID
	vendorID                   kernel.UUID
	name                       string
	status                     Status
	archived                   bool
	platformFulfillmentOrderID string
	tracking                   *TrackingInfo
	trackingCleared            bool
	lineItems                  []LineItem
	isConstructed              bool
}

// NewFulfillment creates a fulfillment in NEW status with no tracking.
func NewFulfillment(
	id kernel.UUID,
	orderID kernel.UUID,
	vendorID kernel.UUID,
	name string,
	lineItems []LineItem,
) (*Fulfillment, error) {
	f := &Fulfillment{
		status:        New,
		isConstructed: true,
	}

	if err := errors.Join(
		f.setID(id),
		f.setOrderID(orderID),
		f.setVendorID(vendorID),
		f.setName(name),
		f.setLineItems(lineItems),
	); err != nil {
		return nil, err
	}

	return f, nil
}

// RestoreParams carries persisted state into RestoreFulfillment.
type RestoreParams struct {
	ID                         kernel.UUID
	OrderID                    kernel.UUID
	VendorID                   kernel.UUID
	Name                       string
	Status                     Status
	Archived                   bool
	PlatformFulfillmentOrderID string
	Tracking                   *TrackingInfo
	LineItems                  []LineItem
}

// RestoreFulfillment rebuilds a fulfillment loaded from persistence.
func RestoreFulfillment(p RestoreParams) (*Fulfillment, error) {
	f, err := NewFulfillment(p.ID, p.OrderID, p.VendorID, p.Name, p.LineItems)
	if err != nil {
		return nil, err
	}

	if err = p.Status.Validate(); err != nil {
		return nil, err
	}
	f.status = p.Status
	f.archived = p.Archived
	f.platformFulfillmentOrderID = strings.TrimSpace(p.PlatformFulfillmentOrderID)

	if p.Tracking != nil {
		if err = f.AttachTracking(*p.Tracking); err != nil {
			return nil, err
		}
	}

	return f, nil
}

func (f *Fulfillment) Validate() error {
	if f == nil || !f.isConstructed {
		return ErrFulfillmentIsNotConstructed
	}
	return nil
}

func (f *Fulfillment) IsEqual(other *Fulfillment) bool {
	return other != nil && f.id.IsEqual(other.id)
}

func (f *Fulfillment) ID() kernel.UUID       { return f.id }
func (f *Fulfillment) OrderID() kernel.UUID  { return f.orderID }
func (f *Fulfillment) VendorID() kernel.UUID { return f.vendorID }
func (f *Fulfillment) Name() string          { return f.name }
func (f *Fulfillment) Status() Status        { return f.status }
func (f *Fulfillment) IsArchived() bool      { return f.archived }

// PlatformFulfillmentOrderID returns the id of the matching fulfillment order on
// the commerce platform, or "" when the order did not come from the platform.
func (f *Fulfillment) PlatformFulfillmentOrderID() string {
	return f.platformFulfillmentOrderID
}

// LineItems returns a copy of the fulfillment line items.
func (f *Fulfillment) LineItems() []LineItem {
	items := make([]LineItem, len(f.lineItems))
	copy(items, f.lineItems)
	return items
}

// Tracking returns a copy of the tracking record, or nil.
func (f *Fulfillment) Tracking() *TrackingInfo {
	if f.tracking == nil {
		return nil
	}
	t := *f.tracking
	return &t
}

// IsTracked reports whether a tracking number is already set. A tracked
// fulfillment must not be sent to the carrier again.
func (f *Fulfillment) IsTracked() bool {
	return f.tracking != nil && f.tracking.Number() != ""
}

// LinkPlatformFulfillmentOrder records the platform-side fulfillment order id.
func (f *Fulfillment) LinkPlatformFulfillmentOrder(id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return errs.NewValueIsRequiredError("platform fulfillment order id")
	}
	f.platformFulfillmentOrderID = id
	return nil
}

// TrackingCleared reports whether ClearTracking was applied since the
// fulfillment was loaded. Only then may a repository drop the stored record.
func (f *Fulfillment) TrackingCleared() bool {
	return f.trackingCleared
}

// AttachTracking sets or replaces the tracking record.
func (f *Fulfillment) AttachTracking(info TrackingInfo) error {
	if err := info.Validate(); err != nil {
		return err
	}
	f.tracking = &info
	f.trackingCleared = false
	return nil
}

// Apply executes an operator action.
func (f *Fulfillment) Apply(action Action) error {
	switch a := action.(type) {
	case SetStatus:
		if err := a.Status.Validate(); err != nil {
			return err
		}
		f.status = a.Status
	case Archive:
		f.archived = true
	case Unarchive:
		f.archived = false
	case ClearTracking:
		f.tracking = nil
		f.trackingCleared = true
	default:
		return errs.NewValueIsInvalidErrorWithCause("action is invalid", fmt.Errorf("%T is not supported", action))
	}
	return nil
}

func (f *Fulfillment) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	f.id = id
	return nil
}

func (f *Fulfillment) setOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	f.orderID = id
	return nil
}

func (f *Fulfillment) setVendorID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	f.vendorID = id
	return nil
}

func (f *Fulfillment) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("fulfillment name")
	}
	f.name = name
	return nil
}

func (f *Fulfillment) setLineItems(lineItems []LineItem) error {
	if len(lineItems) == 0 {
		return errs.NewValueIsRequiredError("fulfillment line items")
	}
	seen := make(map[kernel.UUID]struct{}, len(lineItems))
	for _, li := range lineItems {
		if err := li.OrderLineItemID().Validate(); err != nil {
			return err
		}
		if _, dup := seen[li.OrderLineItemID()]; dup {
			return errs.NewValueIsInvalidError("order line item " + li.OrderLineItemID().String() + " appears twice")
		}
		seen[li.OrderLineItemID()] = struct{}{}
	}
	f.lineItems = append([]LineItem(nil), lineItems...)
	return nil
}
