package commands

import (
	"errors"

	"fulfillment/internal/pkg/guard"
)

var ErrRefreshTrackingStatusesCommandIsNotConstructed = errors.New(
	"RefreshTrackingStatusesCommand must be created via NewRefreshTrackingStatusesCommand constructor",
)

// RefreshTrackingStatusesCommand re-reads carrier status for all active tracking.
type RefreshTrackingStatusesCommand struct {
	guard guard.ConstructorGuard
}

func NewRefreshTrackingStatusesCommand() RefreshTrackingStatusesCommand {
	return RefreshTrackingStatusesCommand{guard: guard.NewConstructorGuard()}
}

func (c RefreshTrackingStatusesCommand) Validate() error {
	return c.guard.Validate(ErrRefreshTrackingStatusesCommandIsNotConstructed)
}
