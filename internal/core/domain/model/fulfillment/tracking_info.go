package fulfillment

import (
	"strings"

	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrTrackingInfoIsNotConstructed = errs.NewValueIsRequiredError("tracking info must be created via NewTrackingInfo")

// TrackingInfo is the carrier record attached to a fulfillment once a label is
// purchased or a number is entered by hand. Carrier may be blank when the
// number could not be classified.
type TrackingInfo struct {
	carrier    string
	number     string
	labelURL   string
	liveStatus string
	guard      guard.ConstructorGuard
}

func NewTrackingInfo(carrier string, number string, labelURL string) (TrackingInfo, error) {
	number = strings.TrimSpace(number)
	if number == "" {
		return TrackingInfo{}, errs.NewValueIsRequiredError("tracking number")
	}
	return TrackingInfo{
		carrier:  strings.TrimSpace(carrier),
		number:   number,
		labelURL: strings.TrimSpace(labelURL),
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// RestoreTrackingInfo rebuilds a stored record including its live status.
func RestoreTrackingInfo(carrier, number, labelURL, liveStatus string) (TrackingInfo, error) {
	info, err := NewTrackingInfo(carrier, number, labelURL)
	if err != nil {
		return TrackingInfo{}, err
	}
	info.liveStatus = liveStatus
	return info, nil
}

func (t TrackingInfo) Carrier() string    { return t.carrier }
func (t TrackingInfo) Number() string     { return t.number }
func (t TrackingInfo) LabelURL() string   { return t.labelURL }
func (t TrackingInfo) LiveStatus() string { return t.liveStatus }

// WithLiveStatus returns a copy carrying the latest status reported by the carrier.
func (t TrackingInfo) WithLiveStatus(status string) TrackingInfo {
	t.liveStatus = status
	return t
}

func (t TrackingInfo) Validate() error {
	return t.guard.Validate(ErrTrackingInfoIsNotConstructed)
}
