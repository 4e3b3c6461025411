package commands

import (
	"context"
	"errors"
	"log/slog"

	"fulfillment/internal/core/ports"
)

// RefreshTrackingStatusesCommandHandler copies the carrier's latest status
// description onto every active tracking record. A carrier failure leaves the
// stored statuses untouched.
type RefreshTrackingStatusesCommandHandler struct {
	ledger  ports.TrackingLedger
	carrier ports.CarrierClient
	logger  *slog.Logger
}

func NewRefreshTrackingStatusesCommandHandler(
	ledger ports.TrackingLedger,
	carrier ports.CarrierClient,
	logger *slog.Logger,
) RefreshTrackingStatusesCommandHandler {
	return RefreshTrackingStatusesCommandHandler{
		ledger:  ledger,
		carrier: carrier,
		logger:  logger.With("component", "RefreshTrackingStatusesCommandHandler"),
	}
}

// Handle returns the number of records whose status changed.
func (h *RefreshTrackingStatusesCommandHandler) Handle(ctx context.Context, cmd RefreshTrackingStatusesCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	active, err := h.ledger.ListActive(ctx)
	if err != nil {
		return 0, err
	}
	if len(active) == 0 {
		return 0, nil
	}

	numbers := make([]string, 0, len(active))
	for _, tf := range active {
		numbers = append(numbers, tf.Tracking.Number())
	}

	statuses := h.carrier.FetchTrackingStatus(ctx, numbers)
	if statuses == nil {
		h.logger.WarnContext(ctx, "carrier returned no tracking statuses", "requested", len(numbers))
		return 0, nil
	}

	var errList []error
	updated := 0
	for _, tf := range active {
		status, ok := statuses[tf.Tracking.Number()]
		if !ok || status == tf.Tracking.LiveStatus() {
			continue
		}
		if err = h.ledger.UpdateLiveStatus(ctx, tf.FulfillmentID, status); err != nil {
			errList = append(errList, err)
			continue
		}
		updated++
	}

	return updated, errors.Join(errList...)
}
