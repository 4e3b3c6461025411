package order

import (
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrSampleIsNotConstructed = errs.NewValueIsRequiredError("sample must be created via NewSample")

// Sample is the catalog item a line item orders. VendorID is nil for items
// stocked in-house.
type Sample struct {
	id       kernel.UUID
	name     string
	vendorID *kernel.UUID
	guard    guard.ConstructorGuard
}

func NewSample(id kernel.UUID, name string, vendorID *kernel.UUID) (Sample, error) {
	if err := id.Validate(); err != nil {
		return Sample{}, err
	}
	if strings.TrimSpace(name) == "" {
		return Sample{}, errs.NewValueIsRequiredError("sample name")
	}
	if vendorID != nil {
		if err := vendorID.Validate(); err != nil {
			return Sample{}, err
		}
		v := *vendorID
		vendorID = &v
	}

	return Sample{
		id:       id,
		name:     strings.TrimSpace(name),
		vendorID: vendorID,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (s Sample) ID() kernel.UUID { return s.id }

func (s Sample) Name() string { return s.name }

// VendorID returns a copy of the vendor id, or nil.
func (s Sample) VendorID() *kernel.UUID {
	if s.vendorID == nil {
		return nil
	}
	v := *s.vendorID
	return &v
}

func (s Sample) HasVendor() bool {
	return s.vendorID != nil
}

func (s Sample) Validate() error {
	return s.guard.Validate(ErrSampleIsNotConstructed)
}
