// Package kernel provides the shared value objects of the fulfillment domain.
//
// The package includes:
//   - UUID: identifier value object wrapping github.com/google/uuid
//   - Address: the shipping address owned by an order, kept as entered
//   - NormalizeStateCode: maps a US state name or abbreviation to its 2-letter code
//   - NormalizePhone: reduces a free-typed North American phone number to 10 digits
//
// Value objects are immutable and safe for concurrent use. Zero values are
// invalid and fail Validate.
package kernel
