package kernel

import (
	"strings"

	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrAddressIsNotConstructed = errs.NewValueIsRequiredError("address must be created via NewAddress")

// Address is the shipping address of an order exactly as it was entered.
// Line1 holds the recipient name and Line2..Line4 hold street lines.
// Normalization of state and phone happens when a shipment request is built,
// so a malformed address can still be stored and corrected later.
type Address struct {
	line1      string
	line2      string
	line3      string
	line4      string
	city       string
	state      string
	postalCode string
	phone      string
	guard      guard.ConstructorGuard
}

// AddressFields carries the raw address lines into NewAddress.
type AddressFields struct {
	Line1      string
	Line2      string
	Line3      string
	Line4      string
	City       string
	State      string
	PostalCode string
	Phone      string
}

// NewAddress trims every field and keeps the rest of the input untouched.
func NewAddress(f AddressFields) Address {
	return Address{
		line1:      strings.TrimSpace(f.Line1),
		line2:      strings.TrimSpace(f.Line2),
		line3:      strings.TrimSpace(f.Line3),
		line4:      strings.TrimSpace(f.Line4),
		city:       strings.TrimSpace(f.City),
		state:      strings.TrimSpace(f.State),
		postalCode: strings.TrimSpace(f.PostalCode),
		phone:      strings.TrimSpace(f.Phone),
		guard:      guard.NewConstructorGuard(),
	}
}

func (a Address) Line1() string      { return a.line1 }
func (a Address) Line2() string      { return a.line2 }
func (a Address) Line3() string      { return a.line3 }
func (a Address) Line4() string      { return a.line4 }
func (a Address) City() string       { return a.city }
func (a Address) State() string      { return a.state }
func (a Address) PostalCode() string { return a.postalCode }
func (a Address) Phone() string      { return a.phone }

// Fields returns the address as a plain struct, used by persistence adapters.
func (a Address) Fields() AddressFields {
	return AddressFields{
		Line1:      a.line1,
		Line2:      a.line2,
		Line3:      a.line3,
		Line4:      a.line4,
		City:       a.city,
		State:      a.state,
		PostalCode: a.postalCode,
		Phone:      a.phone,
	}
}

// StreetLines returns line2 followed by line3 and line4 when they are present.
func (a Address) StreetLines() []string {
	lines := make([]string, 0, 3)
	for _, l := range []string{a.line2, a.line3, a.line4} {
		if l != "" {
			lines = append(lines, l)
		}
	}
	return lines
}

func (a Address) Equals(other Address) bool {
	return a.Fields() == other.Fields()
}

func (a Address) Validate() error {
	return a.guard.Validate(ErrAddressIsNotConstructed)
}
