// Package order provides the Order aggregate: a customer request made of line
// items that reference catalog samples, plus the shipping address.
//
// The package includes:
//   - Order: aggregate root holding the display name, address and line items
//   - LineItem: one ordered sample with its quantity
//   - Sample: the catalog entry a line item points at, with an optional vendor
//
// Key business rules:
//   - An order has a unique identifier, a non-blank display name and an address
//   - Line items have a positive quantity and belong to exactly one order
//   - A sample without a vendor is valid; such items are never fulfilled
//
// Orders are created once, when a cart is committed, and are read-only to the
// label pipeline afterwards.
package order
