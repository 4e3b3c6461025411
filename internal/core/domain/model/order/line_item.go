package order

import (
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

var ErrLineItemIsNotConstructed = errors.New("LineItem must be created via NewLineItem constructor")

// LineItem is one sample ordered in a given quantity.
type LineItem struct {
	id            kernel.UUID
	sample        Sample
	quantity      int
	isConstructed bool
}

func NewLineItem(id kernel.UUID, sample Sample, quantity int) (*LineItem, error) {
	item := &LineItem{isConstructed: true}

	if err := errors.Join(
		item.setID(id),
		item.setSample(sample),
		item.setQuantity(quantity),
	); err != nil {
		return nil, err
	}

	return item, nil
}

func (li *LineItem) Validate() error {
	if li == nil || !li.isConstructed {
		return ErrLineItemIsNotConstructed
	}
	return nil
}

func (li *LineItem) ID() kernel.UUID { return li.id }

func (li *LineItem) Sample() Sample { return li.sample }

func (li *LineItem) Quantity() int { return li.quantity }

// VendorID is a shortcut for Sample().VendorID().
func (li *LineItem) VendorID() *kernel.UUID {
	return li.sample.VendorID()
}

func (li *LineItem) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	li.id = id
	return nil
}

func (li *LineItem) setSample(sample Sample) error {
	if err := sample.Validate(); err != nil {
		return err
	}
	li.sample = sample
	return nil
}

func (li *LineItem) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity is invalid", fmt.Errorf("%d is not greater than 0", quantity))
	}
	li.quantity = quantity
	return nil
}
