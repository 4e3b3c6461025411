package commands

import (
	"context"
	"log/slog"
	"time"

	"fulfillment/internal/core/domain/model/fulfillment"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"

	"golang.org/x/sync/errgroup"
)

// LabelResult is the settled outcome of one fulfillment in a batch: exactly one
// of Fulfillment and Err is set.
type LabelResult struct {
	FulfillmentID kernel.UUID
	Fulfillment   *fulfillment.Fulfillment
	Err           error
}

// BatchResult lists one LabelResult per requested id, in request order.
type BatchResult struct {
	Results []LabelResult
}

// Succeeded returns the fulfillments that now carry tracking.
func (r BatchResult) Succeeded() []*fulfillment.Fulfillment {
	var out []*fulfillment.Fulfillment
	for _, res := range r.Results {
		if res.Err == nil {
			out = append(out, res.Fulfillment)
		}
	}
	return out
}

// Failed returns the results that carry an error.
func (r BatchResult) Failed() []LabelResult {
	var out []LabelResult
	for _, res := range r.Results {
		if res.Err != nil {
			out = append(out, res)
		}
	}
	return out
}

// BatchSettings tunes GenerateLabelsCommandHandler.
type BatchSettings struct {
	// Concurrency bounds in-flight units per phase. Zero or less means unbounded.
	Concurrency int
	// ShipDateLocation is the timezone "today" is taken in when no ship date is given.
	ShipDateLocation *time.Location
	// NotifyCustomer is passed to the platform on every tracking sync.
	NotifyCustomer bool
	// Now returns the current time; nil means time.Now.
	Now func() time.Time
}

// GenerateLabelsCommandHandler drives the label pipeline over a batch of
// fulfillments with settle-all semantics, then mirrors successes to the
// commerce platform.
//
// Phase one runs one unit per fulfillment. A unit's failure is captured in its
// result and never cancels or delays another unit. Units run detached from the
// caller's cancellation so that a purchase in flight is always recorded.
//
// Phase two pushes tracking for each success that is linked to a platform
// fulfillment order. Its failures are logged and dropped and never change the
// phase one results.
type GenerateLabelsCommandHandler struct {
	runner   LabelRunner
	platform ports.PlatformClient
	settings BatchSettings
	logger   *slog.Logger
}

func NewGenerateLabelsCommandHandler(
	runner LabelRunner,
	platform ports.PlatformClient,
	settings BatchSettings,
	logger *slog.Logger,
) GenerateLabelsCommandHandler {
	if settings.ShipDateLocation == nil {
		settings.ShipDateLocation = time.UTC
	}
	if settings.Now == nil {
		settings.Now = time.Now
	}
	return GenerateLabelsCommandHandler{
		runner:   runner,
		platform: platform,
		settings: settings,
		logger:   logger.With("component", "GenerateLabelsCommandHandler"),
	}
}

// Handle returns an error only for an unconstructed command.
func (h *GenerateLabelsCommandHandler) Handle(ctx context.Context, cmd GenerateLabelsCommand) (BatchResult, error) {
	if err := cmd.Validate(); err != nil {
		return BatchResult{}, err
	}

	detached := context.WithoutCancel(ctx)
	shipDate := h.resolveShipDate(cmd.ShipDate())
	ids := cmd.FulfillmentIDs()
	results := make([]LabelResult, len(ids))

	var group errgroup.Group
	if h.settings.Concurrency > 0 {
		group.SetLimit(h.settings.Concurrency)
	}
	for i, id := range ids {
		group.Go(func() error {
			f, err := h.runner.Run(detached, LabelRunInput{
				FulfillmentID: id,
				ShipDate:      shipDate,
				PackagingType: cmd.PackagingType(),
			})
			results[i] = LabelResult{FulfillmentID: id, Fulfillment: f, Err: err}
			if err != nil {
				h.logger.ErrorContext(detached, "label generation failed",
					"fulfillment_id", id.String(),
					"error", err)
			}
			return nil
		})
	}
	_ = group.Wait()

	batch := BatchResult{Results: results}
	h.syncPlatform(detached, batch.Succeeded())

	return batch, nil
}

// syncPlatform also re-sends results that were already tracked before this
// batch; re-running a batch is how a failed sync is retried.
func (h *GenerateLabelsCommandHandler) syncPlatform(ctx context.Context, succeeded []*fulfillment.Fulfillment) {
	var group errgroup.Group
	if h.settings.Concurrency > 0 {
		group.SetLimit(h.settings.Concurrency)
	}
	for _, f := range succeeded {
		if f.PlatformFulfillmentOrderID() == "" || !f.IsTracked() {
			continue
		}
		group.Go(func() error {
			syncTracking(ctx, h.platform, f, h.settings.NotifyCustomer, h.logger)
			return nil
		})
	}
	_ = group.Wait()
}

func (h *GenerateLabelsCommandHandler) resolveShipDate(requested time.Time) time.Time {
	if !requested.IsZero() {
		return requested
	}
	now := h.settings.Now().In(h.settings.ShipDateLocation)
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, h.settings.ShipDateLocation)
}

// syncTracking pushes a fulfillment's tracking to the platform and logs any failure.
func syncTracking(
	ctx context.Context,
	platform ports.PlatformClient,
	f *fulfillment.Fulfillment,
	notifyCustomer bool,
	logger *slog.Logger,
) {
	tracking := f.Tracking()
	if platform == nil || tracking == nil || f.PlatformFulfillmentOrderID() == "" {
		return
	}

	err := platform.UpdateTracking(ctx, ports.TrackingUpdate{
		FulfillmentOrderID: f.PlatformFulfillmentOrderID(),
		NotifyCustomer:     notifyCustomer,
		Company:            tracking.Carrier(),
		Number:             tracking.Number(),
		URL:                services.TrackingURL(tracking.Carrier(), tracking.Number()),
	})
	if err != nil {
		logger.WarnContext(ctx, "platform tracking sync failed",
			"fulfillment_id", f.ID().String(),
			"tracking_number", tracking.Number(),
			"error", errs.NewPlatformSyncError(f.PlatformFulfillmentOrderID(), err))
	}
}
