// Package shipment holds the carrier-neutral shipment request built for one
// fulfillment and handed to a carrier client.
package shipment

import (
	"errors"
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

const (
	PackagingCarrierPak = "FEDEX_PAK"
	PackagingYours      = "YOUR_PACKAGING"

	ServiceTwoDay       = "FEDEX_2_DAY"
	ServiceGroundHome   = "GROUND_HOME_DELIVERY"
	PickupScheduled     = "USE_SCHEDULED_PICKUP"
	PaymentSender       = "SENDER"
	LabelImagePDF       = "PDF"
	LabelStockPaper4x6  = "PAPER_4X6"
	WeightUnitsPounds   = "LB"
	ReferenceCustomer   = "CUSTOMER_REFERENCE"
	CountryUnitedStates = "US"
)

// Contact is the person and phone printed on the label.
type Contact struct {
	PersonName  string
	PhoneNumber string
	CompanyName string
}

// Address is a fully normalized postal address.
type Address struct {
	StreetLines         []string
	City                string
	StateOrProvinceCode string
	PostalCode          string
	CountryCode         string
}

// Party is a shipper or recipient.
type Party struct {
	Contact Contact
	Address Address
}

// PackageLineItem describes one physical package.
type PackageLineItem struct {
	SequenceNumber     int
	WeightPounds       int
	CustomerReferences []string
}

// Request is everything a carrier needs to rate and label a shipment.
type Request struct {
	Shipper         Party
	Recipients      []Party
	ShipDate        time.Time
	ServiceType     string
	PackagingType   string
	PickupType      string
	PaymentType     string
	SpecialServices []string
	LabelImageType  string
	LabelStockType  string
	TotalWeight     int
	Packages        []PackageLineItem
}

// ServiceTypeFor picks the service level for a packaging type.
func ServiceTypeFor(packagingType string) string {
	if packagingType == PackagingCarrierPak {
		return ServiceTwoDay
	}
	return ServiceGroundHome
}

// ShipperFields carries the configured sender block.
type ShipperFields struct {
	PersonName  string
	CompanyName string
	Phone       string
	Street      string
	City        string
	State       string
	PostalCode  string
	Country     string
}

// NewShipper validates the configured sender once at startup.
func NewShipper(f ShipperFields) (Party, error) {
	state, stateErr := kernel.NormalizeStateCode(f.State)
	phone, phoneErr := kernel.NormalizePhone(f.Phone)

	var required []error
	for name, value := range map[string]string{
		"shipper name":        f.PersonName,
		"shipper street":      f.Street,
		"shipper city":        f.City,
		"shipper postal code": f.PostalCode,
	} {
		if strings.TrimSpace(value) == "" {
			required = append(required, errs.NewValueIsRequiredError(name))
		}
	}
	if err := errors.Join(append(required, stateErr, phoneErr)...); err != nil {
		return Party{}, err
	}

	country := strings.ToUpper(strings.TrimSpace(f.Country))
	if country == "" {
		country = CountryUnitedStates
	}

	return Party{
		Contact: Contact{
			PersonName:  strings.TrimSpace(f.PersonName),
			PhoneNumber: phone,
			CompanyName: strings.TrimSpace(f.CompanyName),
		},
		Address: Address{
			StreetLines:         []string{strings.TrimSpace(f.Street)},
			City:                strings.TrimSpace(f.City),
			StateOrProvinceCode: state,
			PostalCode:          strings.TrimSpace(f.PostalCode),
			CountryCode:         country,
		},
	}, nil
}
