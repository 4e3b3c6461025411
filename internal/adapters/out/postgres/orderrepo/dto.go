// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// The shipping address is embedded in the orders table; line items live in
// their own table.
type OrderDTO struct {
	ID        uuid.UUID     `gorm:"type:uuid;primaryKey"`
	Name      string        `gorm:"type:varchar(255);not null;index"`
	Address   AddressDTO    `gorm:"embedded;embeddedPrefix:address_"`
	LineItems []LineItemDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// AddressDTO stores the address as entered. Normalization happens when a label
// request is built, not on write.
type AddressDTO struct {
	Line1      string `gorm:"type:varchar(255)"`
	Line2      string `gorm:"type:varchar(255)"`
	Line3      string `gorm:"type:varchar(255)"`
	Line4      string `gorm:"type:varchar(255)"`
	City       string `gorm:"type:varchar(255)"`
	State      string `gorm:"type:varchar(64)"`
	PostalCode string `gorm:"type:varchar(32)"`
	Phone      string `gorm:"type:varchar(64)"`
}

// LineItemDTO is one cart entry. Position keeps the order the items were
// entered in, which drives fulfillment numbering.
type LineItemDTO struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey"`
	OrderID    uuid.UUID  `gorm:"type:uuid;not null;index"`
	Position   int        `gorm:"type:int;not null"`
	SampleID   uuid.UUID  `gorm:"type:uuid;not null"`
	SampleName string     `gorm:"type:varchar(255);not null"`
	VendorID   *uuid.UUID `gorm:"type:uuid;index"`
	Quantity   int        `gorm:"type:int;not null"`
}

// TableName specifies the database table name for order line items.
func (LineItemDTO) TableName() string {
	return "order_line_items"
}

// fromDomain converts an order domain aggregate to its database representation.
func fromDomain(o *order.Order) OrderDTO {
	orderID := o.ID().Bytes()
	items := o.LineItems()
	lineItems := make([]LineItemDTO, 0, len(items))

	for i, li := range items {
		var vendorID *uuid.UUID
		if v := li.VendorID(); v != nil {
			raw := v.Bytes()
			vendorID = &raw
		}

		lineItems = append(lineItems, LineItemDTO{
			ID:         li.ID().Bytes(),
			OrderID:    orderID,
			Position:   i,
			SampleID:   li.Sample().ID().Bytes(),
			SampleName: li.Sample().Name(),
			VendorID:   vendorID,
			Quantity:   li.Quantity(),
		})
	}

	a := o.Address()
	return OrderDTO{
		ID:   orderID,
		Name: o.Name(),
		Address: AddressDTO{
			Line1:      a.Line1(),
			Line2:      a.Line2(),
			Line3:      a.Line3(),
			Line4:      a.Line4(),
			City:       a.City(),
			State:      a.State(),
			PostalCode: a.PostalCode(),
			Phone:      a.Phone(),
		},
		LineItems: lineItems,
	}
}

// toDomain converts a database DTO to an order domain aggregate using RestoreOrder.
// LineItems must already be sorted by Position.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	lineItems := make([]*order.LineItem, 0, len(dto.LineItems))
	for _, liDTO := range dto.LineItems {
		li, liErr := lineItemToDomain(liDTO)
		if liErr != nil {
			return nil, liErr
		}
		lineItems = append(lineItems, li)
	}

	address := kernel.NewAddress(kernel.AddressFields{
		Line1:      dto.Address.Line1,
		Line2:      dto.Address.Line2,
		Line3:      dto.Address.Line3,
		Line4:      dto.Address.Line4,
		City:       dto.Address.City,
		State:      dto.Address.State,
		PostalCode: dto.Address.PostalCode,
		Phone:      dto.Address.Phone,
	})

	return order.RestoreOrder(id, dto.Name, address, lineItems)
}

func lineItemToDomain(dto LineItemDTO) (*order.LineItem, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	sampleID, err := kernel.UUIDFromBytes(dto.SampleID[:])
	if err != nil {
		return nil, err
	}

	var vendorID *kernel.UUID
	if dto.VendorID != nil {
		vID, vendorErr := kernel.UUIDFromBytes((*dto.VendorID)[:])
		if vendorErr != nil {
			return nil, vendorErr
		}
		vendorID = &vID
	}

	sample, err := order.NewSample(sampleID, dto.SampleName, vendorID)
	if err != nil {
		return nil, err
	}

	return order.NewLineItem(id, sample, dto.Quantity)
}
