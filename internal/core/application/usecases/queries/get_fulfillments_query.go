// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries return read models shaped for the console and bypass the aggregates.
package queries

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrGetFulfillmentsQueryIsNotConstructed = errors.New(
		"GetFulfillmentsQuery must be created via NewGetFulfillmentsQuery constructor",
	)
)

// GetFulfillmentsQuery lists fulfillments with their tracking and stored live
// status. With no ids it lists every unarchived fulfillment.
//
// Example:
//
//	query := NewGetFulfillmentsQuery(nil)
//	handler := NewGetFulfillmentsQueryHandler(db)
//
//	rows, err := handler.Handle(ctx, query)
type GetFulfillmentsQuery struct {
	ids   []kernel.UUID
	guard guard.ConstructorGuard
}

func NewGetFulfillmentsQuery(ids []kernel.UUID) GetFulfillmentsQuery {
	return GetFulfillmentsQuery{
		ids:   append([]kernel.UUID(nil), ids...),
		guard: guard.NewConstructorGuard(),
	}
}

func (q GetFulfillmentsQuery) Validate() error {
	return q.guard.Validate(ErrGetFulfillmentsQueryIsNotConstructed)
}

func (q GetFulfillmentsQuery) FulfillmentIDs() []kernel.UUID {
	return append([]kernel.UUID(nil), q.ids...)
}

// GetFulfillmentsQueryResponse is one fulfillment row of the console.
// Tracking fields are empty for an untracked fulfillment.
type GetFulfillmentsQueryResponse struct {
	ID                         kernel.UUID
	OrderID                    kernel.UUID
	OrderName                  string
	VendorID                   kernel.UUID
	Name                       string
	Status                     string
	Archived                   bool
	PlatformFulfillmentOrderID string
	LineItemCount              int
	Carrier                    string
	TrackingNumber             string
	TrackingURL                string
	LabelURL                   string
	LiveStatus                 string
}
