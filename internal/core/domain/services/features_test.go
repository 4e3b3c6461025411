package services_test

import (
	"context"
	"fmt"
	"testing"

	"fulfillment/internal/core/domain/model/fulfillment"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"

	"github.com/cucumber/godog"
)

type featureContext struct {
	orderName    string
	vendors      map[string]kernel.UUID
	lineItems    []*order.LineItem
	fulfillments []*fulfillment.Fulfillment
	dropped      []*order.LineItem
	err          error

	carrier     string
	trackingURL string
}

func (c *featureContext) reset() {
	*c = featureContext{vendors: make(map[string]kernel.UUID)}
}

func (c *featureContext) anOrderNamed(name string) error {
	c.orderName = name
	return nil
}

func (c *featureContext) addLineItems(n int, vendorID *kernel.UUID) error {
	for range n {
		sample, err := order.NewSample(kernel.NewUUID(), "Swatch", vendorID)
		if err != nil {
			return err
		}
		li, err := order.NewLineItem(kernel.NewUUID(), sample, 1)
		if err != nil {
			return err
		}
		c.lineItems = append(c.lineItems, li)
	}
	return nil
}

func (c *featureContext) lineItemsFromVendor(n int, vendor string) error {
	id, ok := c.vendors[vendor]
	if !ok {
		id = kernel.NewUUID()
		c.vendors[vendor] = id
	}
	return c.addLineItems(n, &id)
}

func (c *featureContext) lineItemsWithoutVendor(n int) error {
	return c.addLineItems(n, nil)
}

func (c *featureContext) theOrderIsPartitioned() error {
	address := kernel.NewAddress(kernel.AddressFields{
		Line1:      "Jane Doe",
		Line2:      "12 Main St",
		City:       "Austin",
		State:      "TX",
		PostalCode: "73301",
		Phone:      "512-555-0100",
	})
	o, err := order.NewOrder(kernel.NewUUID(), c.orderName, address, c.lineItems)
	if err != nil {
		return err
	}
	c.fulfillments, c.dropped, c.err = services.NewOrderPartitioner().NewFulfillments(o)
	return nil
}

func (c *featureContext) thereAreFulfillments(n int) error {
	if c.err != nil {
		return fmt.Errorf("partitioning failed: %w", c.err)
	}
	if len(c.fulfillments) != n {
		return fmt.Errorf("expected %d fulfillments, got %d", n, len(c.fulfillments))
	}
	return nil
}

func (c *featureContext) fulfillmentBelongsToVendor(name, vendor string, items int) error {
	for _, f := range c.fulfillments {
		if f.Name() != name {
			continue
		}
		if !f.VendorID().IsEqual(c.vendors[vendor]) {
			return fmt.Errorf("%s belongs to another vendor than %q", name, vendor)
		}
		if got := len(f.LineItems()); got != items {
			return fmt.Errorf("%s has %d line items, expected %d", name, got, items)
		}
		return nil
	}
	return fmt.Errorf("no fulfillment named %q", name)
}

func (c *featureContext) everyFulfillmentIsNew() error {
	for _, f := range c.fulfillments {
		if f.Status() != fulfillment.New {
			return fmt.Errorf("%s has status %s", f.Name(), f.Status())
		}
	}
	return nil
}

func (c *featureContext) lineItemsAreDropped(n int) error {
	if len(c.dropped) != n {
		return fmt.Errorf("expected %d dropped line items, got %d", n, len(c.dropped))
	}
	return nil
}

func (c *featureContext) iDetectTheCarrierOf(number string) error {
	c.carrier = services.NewCarrierDetector().Detect(number)
	c.trackingURL = services.TrackingURL(c.carrier, number)
	return nil
}

func (c *featureContext) theCarrierIs(carrier string) error {
	if c.carrier != carrier {
		return fmt.Errorf("expected carrier %q, got %q", carrier, c.carrier)
	}
	return nil
}

func (c *featureContext) theTrackingURLIs(url string) error {
	if c.trackingURL != url {
		return fmt.Errorf("expected tracking url %q, got %q", url, c.trackingURL)
	}
	return nil
}

func InitializeScenario(ctx *godog.ScenarioContext) {
	fc := &featureContext{}

	ctx.Before(func(ctx context.Context, _ *godog.Scenario) (context.Context, error) {
		fc.reset()
		return ctx, nil
	})

	// Given steps
	ctx.Step(`^an order named "([^"]*)"$`, fc.anOrderNamed)
	ctx.Step(`^(\d+) line items from vendor "([^"]*)"$`, fc.lineItemsFromVendor)
	ctx.Step(`^(\d+) line items without a vendor$`, fc.lineItemsWithoutVendor)

	// When steps
	ctx.Step(`^the order is partitioned$`, fc.theOrderIsPartitioned)
	ctx.Step(`^I detect the carrier of "([^"]*)"$`, fc.iDetectTheCarrierOf)

	// Then steps
	ctx.Step(`^there are (\d+) fulfillments$`, fc.thereAreFulfillments)
	ctx.Step(`^fulfillment "([^"]*)" belongs to vendor "([^"]*)" with (\d+) line items$`, fc.fulfillmentBelongsToVendor)
	ctx.Step(`^every fulfillment is NEW$`, fc.everyFulfillmentIsNew)
	ctx.Step(`^(\d+) line items are dropped$`, fc.lineItemsAreDropped)
	ctx.Step(`^the carrier is "([^"]*)"$`, fc.theCarrierIs)
	ctx.Step(`^the tracking URL is "([^"]*)"$`, fc.theTrackingURLIs)
}

func TestFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: InitializeScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"features"},
			TestingT: t,
			Strict:   true,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}
