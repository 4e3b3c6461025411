package queries

import (
	"context"

	"fulfillment/internal/core/domain/services"
)

type DetectCarrierQueryHandler struct {
	detector services.CarrierDetector
}

func NewDetectCarrierQueryHandler(detector services.CarrierDetector) DetectCarrierQueryHandler {
	return DetectCarrierQueryHandler{detector: detector}
}

func (h DetectCarrierQueryHandler) Handle(_ context.Context, query DetectCarrierQuery) (DetectCarrierQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return DetectCarrierQueryResponse{}, err
	}

	number := services.NormalizeTrackingNumber(query.TrackingNumber())
	carrier := h.detector.Detect(number)
	return DetectCarrierQueryResponse{
		TrackingNumber: number,
		Carrier:        carrier,
		TrackingURL:    services.TrackingURL(carrier, number),
	}, nil
}
