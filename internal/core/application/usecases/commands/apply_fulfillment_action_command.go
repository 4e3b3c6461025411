package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/fulfillment"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrApplyFulfillmentActionCommandIsNotConstructed = errors.New(
		"ApplyFulfillmentActionCommand must be created via NewApplyFulfillmentActionCommand constructor",
	)
	ErrActionIsRequired = errors.New("action is required")
)

// ApplyFulfillmentActionCommand applies one operator action to one or more
// fulfillments. The bulk form is all-or-nothing.
type ApplyFulfillmentActionCommand struct {
	fulfillmentIDs []kernel.UUID
	action         fulfillment.Action

	guard guard.ConstructorGuard
}

func NewApplyFulfillmentActionCommand(
	fulfillmentIDs []kernel.UUID,
	action fulfillment.Action,
) (ApplyFulfillmentActionCommand, error) {
	ids, idsErr := uniqueIDs(fulfillmentIDs)
	var actionErr error
	if action == nil {
		actionErr = ErrActionIsRequired
	}
	if err := errors.Join(idsErr, actionErr); err != nil {
		return ApplyFulfillmentActionCommand{}, err
	}

	return ApplyFulfillmentActionCommand{
		fulfillmentIDs: ids,
		action:         action,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

func (c ApplyFulfillmentActionCommand) Validate() error {
	return c.guard.Validate(ErrApplyFulfillmentActionCommandIsNotConstructed)
}

func (c ApplyFulfillmentActionCommand) FulfillmentIDs() []kernel.UUID {
	ids := make([]kernel.UUID, len(c.fulfillmentIDs))
	copy(ids, c.fulfillmentIDs)
	return ids
}

func (c ApplyFulfillmentActionCommand) Action() fulfillment.Action { return c.action }
