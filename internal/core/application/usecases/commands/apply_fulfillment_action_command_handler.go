package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/fulfillment"
)

// ApplyFulfillmentActionCommandHandler loads every fulfillment, applies the
// action and saves them in a single transaction.
type ApplyFulfillmentActionCommandHandler struct {
	uowFactory FulfillmentUoWFactory
}

func NewApplyFulfillmentActionCommandHandler(uowFactory FulfillmentUoWFactory) ApplyFulfillmentActionCommandHandler {
	return ApplyFulfillmentActionCommandHandler{uowFactory: uowFactory}
}

func (h *ApplyFulfillmentActionCommandHandler) Handle(
	ctx context.Context,
	cmd ApplyFulfillmentActionCommand,
) ([]*fulfillment.Fulfillment, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.FulfillmentRepository()
	ids := cmd.FulfillmentIDs()
	updated := make([]*fulfillment.Fulfillment, 0, len(ids))

	for _, id := range ids {
		f, err := repo.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		if err = f.Apply(cmd.Action()); err != nil {
			return nil, err
		}
		if err = repo.Update(ctx, f); err != nil {
			return nil, err
		}
		updated = append(updated, f)
	}

	if err := uow.Commit(ctx); err != nil {
		return nil, err
	}

	return updated, nil
}
