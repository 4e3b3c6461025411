package queries

import (
	"errors"
	"strings"

	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrDetectCarrierQueryIsNotConstructed = errors.New(
		"DetectCarrierQuery must be created via NewDetectCarrierQuery constructor",
	)
	ErrTrackingNumberIsEmpty = errs.NewValueIsRequiredError("tracking number")
)

type DetectCarrierQuery struct {
	trackingNumber string
	guard          guard.ConstructorGuard
}

func NewDetectCarrierQuery(trackingNumber string) (DetectCarrierQuery, error) {
	if strings.TrimSpace(trackingNumber) == "" {
		return DetectCarrierQuery{}, ErrTrackingNumberIsEmpty
	}
	return DetectCarrierQuery{
		trackingNumber: trackingNumber,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

func (q DetectCarrierQuery) Validate() error {
	return q.guard.Validate(ErrDetectCarrierQueryIsNotConstructed)
}

func (q DetectCarrierQuery) TrackingNumber() string { return q.trackingNumber }

// DetectCarrierQueryResponse has an empty Carrier and TrackingURL when no rule
// matched.
type DetectCarrierQueryResponse struct {
	TrackingNumber string
	Carrier        string
	TrackingURL    string
}
