package queries

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrGetPickTicketsQueryIsNotConstructed = errors.New(
		"GetPickTicketsQuery must be created via NewGetPickTicketsQuery constructor",
	)
	ErrPickTicketIDsAreEmpty = errs.NewValueIsRequiredError("fulfillment ids")
)

// GetPickTicketsQuery collects what a packer needs for each fulfillment:
// where it goes and which samples to pull.
type GetPickTicketsQuery struct {
	ids   []kernel.UUID
	guard guard.ConstructorGuard
}

// NewGetPickTicketsQuery keeps the first occurrence of each id.
func NewGetPickTicketsQuery(ids []kernel.UUID) (GetPickTicketsQuery, error) {
	seen := make(map[kernel.UUID]struct{}, len(ids))
	unique := make([]kernel.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}
	if len(unique) == 0 {
		return GetPickTicketsQuery{}, ErrPickTicketIDsAreEmpty
	}

	return GetPickTicketsQuery{
		ids:   unique,
		guard: guard.NewConstructorGuard(),
	}, nil
}

func (q GetPickTicketsQuery) Validate() error {
	return q.guard.Validate(ErrGetPickTicketsQueryIsNotConstructed)
}

func (q GetPickTicketsQuery) FulfillmentIDs() []kernel.UUID {
	return append([]kernel.UUID(nil), q.ids...)
}

// PickTicket is one printable ticket.
type PickTicket struct {
	FulfillmentID   kernel.UUID
	FulfillmentName string
	OrderName       string
	ShipTo          kernel.Address
	Items           []PickTicketItem
}

type PickTicketItem struct {
	SampleName string
	Quantity   int
}
