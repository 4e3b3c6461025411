package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"time"

	"fulfillment/internal/core/domain/model/fulfillment"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

var unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// LabelRunInput identifies one unit of label work.
type LabelRunInput struct {
	FulfillmentID kernel.UUID
	ShipDate      time.Time
	PackagingType string
}

// LabelRunner runs the label pipeline for a single fulfillment.
type LabelRunner interface {
	Run(ctx context.Context, in LabelRunInput) (*fulfillment.Fulfillment, error)
}

// LabelPipeline buys and records a label for one fulfillment:
// build request, create shipment, store label, record tracking.
//
// A fulfillment that already has a tracking number is returned unchanged
// without any network call, so re-running a batch is safe.
type LabelPipeline struct {
	uowFactory UoWFactory
	builder    services.LabelRequestBuilder
	carrier    ports.CarrierClient
	store      ports.LabelStore
	ledger     ports.TrackingLedger
	logger     *slog.Logger
}

func NewLabelPipeline(
	uowFactory UoWFactory,
	builder services.LabelRequestBuilder,
	carrier ports.CarrierClient,
	store ports.LabelStore,
	ledger ports.TrackingLedger,
	logger *slog.Logger,
) *LabelPipeline {
	return &LabelPipeline{
		uowFactory: uowFactory,
		builder:    builder,
		carrier:    carrier,
		store:      store,
		ledger:     ledger,
		logger:     logger.With("component", "LabelPipeline"),
	}
}

func (p *LabelPipeline) Run(ctx context.Context, in LabelRunInput) (*fulfillment.Fulfillment, error) {
	uow := p.uowFactory.Create()

	f, err := uow.FulfillmentRepository().Get(ctx, in.FulfillmentID)
	if err != nil {
		return nil, err
	}
	if f.IsTracked() {
		return f, nil
	}

	o, err := uow.OrderRepository().Get(ctx, f.OrderID())
	if err != nil {
		return nil, err
	}

	request, err := p.builder.Build(services.LabelRequestInput{
		Fulfillment:   f,
		Order:         o,
		ShipDate:      in.ShipDate,
		PackagingType: in.PackagingType,
	})
	if err != nil {
		return nil, err
	}

	result, err := p.carrier.CreateShipment(ctx, request)
	if err != nil {
		return nil, err
	}

	filename := LabelFilename(f.Name(), result.TrackingNumber)
	url, err := p.store.Store(ctx, result.Label, filename)
	if err != nil {
		var uploadErr *errs.StorageUploadError
		if !errors.As(err, &uploadErr) {
			err = errs.NewStorageUploadError(filename, err)
		}
		p.logger.ErrorContext(ctx, "label purchased but not stored",
			"fulfillment_id", f.ID().String(),
			"tracking_number", result.TrackingNumber,
			"error", err)
		return nil, err
	}

	info, err := fulfillment.NewTrackingInfo(result.Carrier, result.TrackingNumber, url)
	if err != nil {
		return nil, p.persistenceFailure(ctx, f, result.TrackingNumber, url, err)
	}

	stored, created, err := p.ledger.RecordIfAbsent(ctx, f.ID(), info)
	if err != nil {
		return nil, p.persistenceFailure(ctx, f, result.TrackingNumber, url, err)
	}
	if !created {
		p.logger.WarnContext(ctx, "fulfillment was tracked by a concurrent run, keeping existing record",
			"fulfillment_id", f.ID().String(),
			"kept_tracking_number", stored.Number(),
			"unused_tracking_number", result.TrackingNumber,
			"unused_label_url", url)
	}

	if err = f.AttachTracking(stored); err != nil {
		return nil, err
	}
	return f, nil
}

func (p *LabelPipeline) persistenceFailure(
	ctx context.Context,
	f *fulfillment.Fulfillment,
	trackingNumber string,
	labelURL string,
	cause error,
) error {
	err := errs.NewPersistenceError(f.ID().String(), trackingNumber, labelURL, cause)
	p.logger.ErrorContext(ctx, "label purchased but tracking not recorded, reconcile manually",
		"fulfillment_id", f.ID().String(),
		"fulfillment", f.Name(),
		"tracking_number", trackingNumber,
		"label_url", labelURL,
		"error", cause)
	return err
}

// LabelFilename is "{fulfillmentName}-{trackingNumber}.pdf" with characters
// that are unsafe in a URL path removed.
func LabelFilename(fulfillmentName string, trackingNumber string) string {
	name := fmt.Sprintf("%s-%s", fulfillmentName, trackingNumber)
	return unsafeFilenameChars.ReplaceAllString(name, "") + ".pdf"
}
