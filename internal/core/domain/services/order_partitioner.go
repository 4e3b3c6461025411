package services

import (
	"fmt"

	"fulfillment/internal/core/domain/model/fulfillment"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// VendorGroup is the ordered list of line items supplied by one vendor.
type VendorGroup struct {
	VendorID  kernel.UUID
	LineItems []*order.LineItem
}

// Partition is the result of grouping an order's line items by vendor.
// Groups are listed in the order their vendor was first seen.
type Partition struct {
	Groups  []VendorGroup
	Dropped []*order.LineItem
}

// OrderPartitioner groups line items into vendor-scoped fulfillments.
//
// Business rules:
//   - One group per distinct vendor, in first-seen order
//   - Line items keep their relative order inside a group
//   - Line items whose sample has no vendor are dropped, not rejected
//   - Every vendor-bearing line item lands in exactly one group
type OrderPartitioner struct{}

func NewOrderPartitioner() OrderPartitioner {
	return OrderPartitioner{}
}

// Partition makes a single pass over lineItems.
func (OrderPartitioner) Partition(lineItems []*order.LineItem) Partition {
	var p Partition
	index := make(map[kernel.UUID]int)

	for _, li := range lineItems {
		vendorID := li.VendorID()
		if vendorID == nil {
			p.Dropped = append(p.Dropped, li)
			continue
		}
		i, ok := index[*vendorID]
		if !ok {
			i = len(p.Groups)
			index[*vendorID] = i
			p.Groups = append(p.Groups, VendorGroup{VendorID: *vendorID})
		}
		p.Groups[i].LineItems = append(p.Groups[i].LineItems, li)
	}

	return p
}

// NewFulfillments partitions o and builds one NEW fulfillment per vendor group,
// named "{orderName}-F{n}" with n counted from 1. The dropped line items are
// returned so the caller can report them.
func (op OrderPartitioner) NewFulfillments(o *order.Order) ([]*fulfillment.Fulfillment, []*order.LineItem, error) {
	if err := o.Validate(); err != nil {
		return nil, nil, err
	}

	p := op.Partition(o.LineItems())
	result := make([]*fulfillment.Fulfillment, 0, len(p.Groups))

	for n, group := range p.Groups {
		items := make([]fulfillment.LineItem, 0, len(group.LineItems))
		for _, li := range group.LineItems {
			item, err := fulfillment.NewLineItem(kernel.NewUUID(), li.ID())
			if err != nil {
				return nil, nil, err
			}
			items = append(items, item)
		}

		f, err := fulfillment.NewFulfillment(
			kernel.NewUUID(),
			o.ID(),
			group.VendorID,
			FulfillmentName(o.Name(), n+1),
			items,
		)
		if err != nil {
			return nil, nil, err
		}
		result = append(result, f)
	}

	return result, p.Dropped, nil
}

// FulfillmentName is the display name of the n-th fulfillment of an order.
func FulfillmentName(orderName string, n int) string {
	return fmt.Sprintf("%s-F%d", orderName, n)
}
