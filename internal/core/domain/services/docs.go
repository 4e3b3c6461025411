// Package services provides the pure domain services of the fulfillment
// console. None of them perform I/O.
//
// The package includes:
//   - OrderPartitioner: splits an order's line items into one fulfillment per vendor
//   - LabelRequestBuilder: turns a fulfillment and its order into a shipment request
//   - CarrierDetector: classifies a free-typed tracking number by carrier
package services
