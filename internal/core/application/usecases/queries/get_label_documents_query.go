package queries

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrGetLabelDocumentsQueryIsNotConstructed = errors.New(
		"GetLabelDocumentsQuery must be created via NewGetLabelDocumentsQuery constructor",
	)
)

// GetLabelDocumentsQuery loads the stored label of each fulfillment for bulk
// printing.
type GetLabelDocumentsQuery struct {
	ids   []kernel.UUID
	guard guard.ConstructorGuard
}

func NewGetLabelDocumentsQuery(ids []kernel.UUID) (GetLabelDocumentsQuery, error) {
	q, err := NewGetPickTicketsQuery(ids)
	if err != nil {
		return GetLabelDocumentsQuery{}, err
	}
	return GetLabelDocumentsQuery{
		ids:   q.FulfillmentIDs(),
		guard: guard.NewConstructorGuard(),
	}, nil
}

func (q GetLabelDocumentsQuery) Validate() error {
	return q.guard.Validate(ErrGetLabelDocumentsQueryIsNotConstructed)
}

func (q GetLabelDocumentsQuery) FulfillmentIDs() []kernel.UUID {
	return append([]kernel.UUID(nil), q.ids...)
}

// LabelDocumentResult holds either Document or Err for one fulfillment.
type LabelDocumentResult struct {
	FulfillmentID   kernel.UUID
	FulfillmentName string
	Document        *ports.LabelDocument
	Err             error
}
