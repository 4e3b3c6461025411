package commands

import (
	"errors"
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrGenerateLabelsCommandIsNotConstructed = errors.New(
		"GenerateLabelsCommand must be created via NewGenerateLabelsCommand constructor",
	)
	ErrFulfillmentIDsAreEmpty = errors.New("at least one fulfillment id is required")
)

// GenerateLabelsCommand asks for labels for a set of fulfillments.
// Repeated ids are collapsed so one batch never races itself on the same id.
type GenerateLabelsCommand struct {
	fulfillmentIDs []kernel.UUID
	shipDate       time.Time
	packagingType  string

	guard guard.ConstructorGuard
}

// NewGenerateLabelsCommand validates the ids. A zero shipDate means "today";
// a blank packagingType means the configured default.
func NewGenerateLabelsCommand(
	fulfillmentIDs []kernel.UUID,
	shipDate time.Time,
	packagingType string,
) (GenerateLabelsCommand, error) {
	ids, err := uniqueIDs(fulfillmentIDs)
	if err != nil {
		return GenerateLabelsCommand{}, err
	}

	return GenerateLabelsCommand{
		fulfillmentIDs: ids,
		shipDate:       shipDate,
		packagingType:  strings.ToUpper(strings.TrimSpace(packagingType)),
		guard:          guard.NewConstructorGuard(),
	}, nil
}

func (c GenerateLabelsCommand) Validate() error {
	return c.guard.Validate(ErrGenerateLabelsCommandIsNotConstructed)
}

func (c GenerateLabelsCommand) FulfillmentIDs() []kernel.UUID {
	ids := make([]kernel.UUID, len(c.fulfillmentIDs))
	copy(ids, c.fulfillmentIDs)
	return ids
}

func (c GenerateLabelsCommand) ShipDate() time.Time { return c.shipDate }

func (c GenerateLabelsCommand) PackagingType() string { return c.packagingType }

func uniqueIDs(ids []kernel.UUID) ([]kernel.UUID, error) {
	if len(ids) == 0 {
		return nil, ErrFulfillmentIDsAreEmpty
	}
	seen := make(map[kernel.UUID]struct{}, len(ids))
	result := make([]kernel.UUID, 0, len(ids))
	for _, id := range ids {
		if err := id.Validate(); err != nil {
			return nil, err
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		result = append(result, id)
	}
	return result, nil
}
