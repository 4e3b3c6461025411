package commands

import (
	"context"
	"log/slog"

	"fulfillment/internal/core/domain/model/fulfillment"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
)

// RecordTrackingCommandHandler overwrites a fulfillment's tracking with an
// operator-supplied number and mirrors it to the platform on a best-effort basis.
type RecordTrackingCommandHandler struct {
	uowFactory     FulfillmentUoWFactory
	ledger         ports.TrackingLedger
	detector       services.CarrierDetector
	platform       ports.PlatformClient
	notifyCustomer bool
	logger         *slog.Logger
}

func NewRecordTrackingCommandHandler(
	uowFactory FulfillmentUoWFactory,
	ledger ports.TrackingLedger,
	detector services.CarrierDetector,
	platform ports.PlatformClient,
	notifyCustomer bool,
	logger *slog.Logger,
) RecordTrackingCommandHandler {
	return RecordTrackingCommandHandler{
		uowFactory:     uowFactory,
		ledger:         ledger,
		detector:       detector,
		platform:       platform,
		notifyCustomer: notifyCustomer,
		logger:         logger.With("component", "RecordTrackingCommandHandler"),
	}
}

func (h *RecordTrackingCommandHandler) Handle(ctx context.Context, cmd RecordTrackingCommand) (*fulfillment.Fulfillment, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	f, err := h.uowFactory.Create().FulfillmentRepository().Get(ctx, cmd.FulfillmentID())
	if err != nil {
		return nil, err
	}

	carrier := cmd.Carrier()
	if carrier == "" {
		carrier = h.detector.Detect(cmd.TrackingNumber())
	}

	info, err := fulfillment.NewTrackingInfo(carrier, services.NormalizeTrackingNumber(cmd.TrackingNumber()), cmd.LabelURL())
	if err != nil {
		return nil, err
	}

	if err = h.ledger.Record(ctx, f.ID(), info); err != nil {
		return nil, err
	}
	if err = f.AttachTracking(info); err != nil {
		return nil, err
	}

	syncTracking(ctx, h.platform, f, h.notifyCustomer, h.logger)

	return f, nil
}
