package commands

import (
	"errors"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrRecordTrackingCommandIsNotConstructed = errors.New(
		"RecordTrackingCommand must be created via NewRecordTrackingCommand constructor",
	)
	ErrTrackingNumberIsRequired = errors.New("tracking number is required")
)

// RecordTrackingCommand stores a tracking number typed in by an operator.
// A blank carrier is filled in by the carrier detector.
type RecordTrackingCommand struct {
	fulfillmentID  kernel.UUID
	carrier        string
	trackingNumber string
	labelURL       string

	guard guard.ConstructorGuard
}

func NewRecordTrackingCommand(
	fulfillmentID kernel.UUID,
	carrier string,
	trackingNumber string,
	labelURL string,
) (RecordTrackingCommand, error) {
	cmd := RecordTrackingCommand{
		carrier:  strings.TrimSpace(carrier),
		labelURL: strings.TrimSpace(labelURL),
		guard:    guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setFulfillmentID(fulfillmentID),
		cmd.setTrackingNumber(trackingNumber),
	); err != nil {
		return RecordTrackingCommand{}, err
	}

	return cmd, nil
}

func (c RecordTrackingCommand) Validate() error {
	return c.guard.Validate(ErrRecordTrackingCommandIsNotConstructed)
}

func (c RecordTrackingCommand) FulfillmentID() kernel.UUID { return c.fulfillmentID }
func (c RecordTrackingCommand) Carrier() string            { return c.carrier }
func (c RecordTrackingCommand) TrackingNumber() string     { return c.trackingNumber }
func (c RecordTrackingCommand) LabelURL() string           { return c.labelURL }

func (c *RecordTrackingCommand) setFulfillmentID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.fulfillmentID = id
	return nil
}

func (c *RecordTrackingCommand) setTrackingNumber(number string) error {
	number = strings.TrimSpace(number)
	if number == "" {
		return ErrTrackingNumberIsRequired
	}
	c.trackingNumber = number
	return nil
}
