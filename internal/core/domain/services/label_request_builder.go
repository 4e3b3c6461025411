package services

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/fulfillment"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/shipment"
	"fulfillment/internal/pkg/errs"
)

const poundsPerLineItem = 0.5

// LabelRequestInput is everything needed to build one shipment request.
// PackagingType falls back to the builder's default when blank.
type LabelRequestInput struct {
	Fulfillment   *fulfillment.Fulfillment
	Order         *order.Order
	ShipDate      time.Time
	PackagingType string
}

// LabelRequestBuilder turns a fulfillment into a carrier shipment request.
// It is pure: every failure is a *errs.ValidationError raised before any
// network call is attempted.
type LabelRequestBuilder struct {
	shipper          shipment.Party
	defaultPackaging string
}

func NewLabelRequestBuilder(shipper shipment.Party, defaultPackaging string) LabelRequestBuilder {
	if defaultPackaging == "" {
		defaultPackaging = shipment.PackagingYours
	}
	return LabelRequestBuilder{
		shipper:          shipper,
		defaultPackaging: defaultPackaging,
	}
}

func (b LabelRequestBuilder) Build(in LabelRequestInput) (shipment.Request, error) {
	if err := errors.Join(in.Fulfillment.Validate(), in.Order.Validate()); err != nil {
		return shipment.Request{}, errs.NewValidationErrorWithCause("fulfillment", err)
	}
	if !in.Fulfillment.OrderID().IsEqual(in.Order.ID()) {
		return shipment.Request{}, errs.NewValidationErrorWithCause("order",
			fmt.Errorf("fulfillment %s does not belong to order %s", in.Fulfillment.Name(), in.Order.Name()))
	}
	if in.ShipDate.IsZero() {
		return shipment.Request{}, errs.NewValidationError("ship date")
	}

	recipient, err := buildRecipient(in.Order.Address())
	if err != nil {
		return shipment.Request{}, err
	}

	packaging := strings.TrimSpace(in.PackagingType)
	if packaging == "" {
		packaging = b.defaultPackaging
	}

	weight := EstimateWeightPounds(len(in.Fulfillment.LineItems()))

	return shipment.Request{
		Shipper:        b.shipper,
		Recipients:     []shipment.Party{recipient},
		ShipDate:       in.ShipDate,
		ServiceType:    shipment.ServiceTypeFor(packaging),
		PackagingType:  packaging,
		PickupType:     shipment.PickupScheduled,
		PaymentType:    shipment.PaymentSender,
		LabelImageType: shipment.LabelImagePDF,
		LabelStockType: shipment.LabelStockPaper4x6,
		TotalWeight:    weight,
		Packages: []shipment.PackageLineItem{{
			SequenceNumber:     1,
			WeightPounds:       weight,
			CustomerReferences: []string{in.Order.Name()},
		}},
	}, nil
}

// EstimateWeightPounds is half a pound per line item, rounded up.
func EstimateWeightPounds(lineItems int) int {
	return int(math.Ceil(poundsPerLineItem * float64(lineItems)))
}

func buildRecipient(a kernel.Address) (shipment.Party, error) {
	if err := a.Validate(); err != nil {
		return shipment.Party{}, errs.NewValidationErrorWithCause("address", err)
	}

	state, err := kernel.NormalizeStateCode(a.State())
	if err != nil {
		return shipment.Party{}, errs.NewValidationErrorWithCause("address.state", err)
	}

	var missing []string
	for _, field := range []struct {
		name  string
		value string
	}{
		{"address.line1", a.Line1()},
		{"address.line2", a.Line2()},
		{"address.city", a.City()},
		{"address.postalCode", a.PostalCode()},
	} {
		if field.value == "" {
			missing = append(missing, field.name)
		}
	}
	if len(missing) > 0 {
		return shipment.Party{}, errs.NewValidationErrorWithCause(strings.Join(missing, ", "), errs.ErrValueIsRequired)
	}

	phone, err := kernel.NormalizePhone(a.Phone())
	if err != nil {
		return shipment.Party{}, errs.NewValidationErrorWithCause("address.phone", err)
	}

	return shipment.Party{
		Contact: shipment.Contact{
			PersonName:  a.Line1(),
			PhoneNumber: phone,
		},
		Address: shipment.Address{
			StreetLines:         a.StreetLines(),
			City:                a.City(),
			StateOrProvinceCode: state,
			PostalCode:          a.PostalCode(),
			CountryCode:         shipment.CountryUnitedStates,
		},
	}, nil
}
