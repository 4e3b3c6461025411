// Package fulfillmentrepo provides data transfer objects and mapping functions for fulfillment persistence.
// Tracking records are loaded with the aggregate but written through the
// tracking ledger.
package fulfillmentrepo

import (
	"time"

	"fulfillment/internal/adapters/out/postgres/trackingrepo"
	"fulfillment/internal/core/domain/model/fulfillment"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// FulfillmentDTO represents the database structure for persisting fulfillment aggregates.
// The (order_id, vendor_id) unique index enforces one fulfillment per vendor per order.
type FulfillmentDTO struct {
	ID                         uuid.UUID                     `gorm:"type:uuid;primaryKey"`
	OrderID                    uuid.UUID                     `gorm:"type:uuid;not null;uniqueIndex:idx_fulfillments_order_vendor"`
	VendorID                   uuid.UUID                     `gorm:"type:uuid;not null;uniqueIndex:idx_fulfillments_order_vendor"`
	Name                       string                        `gorm:"type:varchar(255);not null"`
	Status                     int                           `gorm:"type:int;not null;index"`
	Archived                   bool                          `gorm:"not null"`
	PlatformFulfillmentOrderID string                        `gorm:"type:varchar(255)"`
	LineItems                  []LineItemDTO                 `gorm:"foreignKey:FulfillmentID;constraint:OnDelete:CASCADE"`
	Tracking                   *trackingrepo.TrackingInfoDTO `gorm:"foreignKey:FulfillmentID;constraint:OnDelete:CASCADE"`
	CreatedAt                  time.Time
	UpdatedAt                  time.Time
}

// TableName specifies the database table name for fulfillment entities.
func (FulfillmentDTO) TableName() string {
	return "fulfillments"
}

// LineItemDTO links a fulfillment to one order line item. An order line item
// belongs to at most one fulfillment.
type LineItemDTO struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	FulfillmentID   uuid.UUID `gorm:"type:uuid;not null;index"`
	OrderLineItemID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	Position        int       `gorm:"type:int;not null"`
}

// TableName specifies the database table name for fulfillment line items.
func (LineItemDTO) TableName() string {
	return "fulfillment_line_items"
}

// fromDomain converts a fulfillment aggregate to its database representation.
// Tracking is left out; it is owned by the ledger.
func fromDomain(f *fulfillment.Fulfillment) FulfillmentDTO {
	fulfillmentID := f.ID().Bytes()
	items := f.LineItems()
	lineItems := make([]LineItemDTO, 0, len(items))

	for i, li := range items {
		lineItems = append(lineItems, LineItemDTO{
			ID:              li.ID().Bytes(),
			FulfillmentID:   fulfillmentID,
			OrderLineItemID: li.OrderLineItemID().Bytes(),
			Position:        i,
		})
	}

	return FulfillmentDTO{
		ID:                         fulfillmentID,
		OrderID:                    f.OrderID().Bytes(),
		VendorID:                   f.VendorID().Bytes(),
		Name:                       f.Name(),
		Status:                     int(f.Status()),
		Archived:                   f.IsArchived(),
		PlatformFulfillmentOrderID: f.PlatformFulfillmentOrderID(),
		LineItems:                  lineItems,
	}
}

// toDomain converts a database DTO to a fulfillment aggregate using RestoreFulfillment.
func toDomain(dto FulfillmentDTO) (*fulfillment.Fulfillment, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}
	vendorID, err := kernel.UUIDFromBytes(dto.VendorID[:])
	if err != nil {
		return nil, err
	}

	lineItems := make([]fulfillment.LineItem, 0, len(dto.LineItems))
	for _, liDTO := range dto.LineItems {
		li, liErr := lineItemToDomain(liDTO)
		if liErr != nil {
			return nil, liErr
		}
		lineItems = append(lineItems, li)
	}

	var tracking *fulfillment.TrackingInfo
	if dto.Tracking != nil {
		info, trackingErr := trackingrepo.ToDomain(*dto.Tracking)
		if trackingErr != nil {
			return nil, trackingErr
		}
		tracking = &info
	}

	return fulfillment.RestoreFulfillment(fulfillment.RestoreParams{
		ID:                         id,
		OrderID:                    orderID,
		VendorID:                   vendorID,
		Name:                       dto.Name,
		Status:                     fulfillment.Status(dto.Status),
		Archived:                   dto.Archived,
		PlatformFulfillmentOrderID: dto.PlatformFulfillmentOrderID,
		Tracking:                   tracking,
		LineItems:                  lineItems,
	})
}

func lineItemToDomain(dto LineItemDTO) (fulfillment.LineItem, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return fulfillment.LineItem{}, err
	}

	orderLineItemID, err := kernel.UUIDFromBytes(dto.OrderLineItemID[:])
	if err != nil {
		return fulfillment.LineItem{}, err
	}

	return fulfillment.NewLineItem(id, orderLineItemID)
}
