// Package fulfillment provides the Fulfillment aggregate: the vendor-scoped
// shipment unit an order's line items are partitioned into.
//
// The package includes:
//   - Fulfillment: aggregate root with status, archive flag, line items and tracking
//   - Status: operator-controlled lifecycle value (NEW, PROCESSING, COMPLETE, CANCELLED, ERROR)
//   - TrackingInfo: carrier, tracking number, label URL and live carrier status
//   - Action: closed set of operator actions applied through Fulfillment.Apply
//
// Key business rules:
//   - At most one fulfillment exists per (order, vendor) pair
//   - A tracking number, once set, is evidence that a label was purchased
//   - Status is never changed by label generation
package fulfillment
