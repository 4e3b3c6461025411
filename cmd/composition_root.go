package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	apihttp "fulfillment/internal/adapters/in/http"
	"fulfillment/internal/adapters/out/carrier"
	"fulfillment/internal/adapters/out/platform"
	"fulfillment/internal/adapters/out/postgres"
	"fulfillment/internal/adapters/out/postgres/labelstore"
	"fulfillment/internal/adapters/out/postgres/trackingrepo"
	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/shipment"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/jobs"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	cfg        Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	logger     *slog.Logger

	location *time.Location
	detector services.CarrierDetector
	builder  services.LabelRequestBuilder
	ledger   ports.TrackingLedger
	labels   *labelstore.GormLabelStore
	carrier  ports.CarrierClient
	platform ports.PlatformClient
}

// NewCompositionRoot validates the shipper block and builds the shared adapters.
func NewCompositionRoot(cfg Config, gormDB *gorm.DB, logger *slog.Logger) (*CompositionRoot, error) {
	shipper, err := shipment.NewShipper(cfg.Shipper)
	if err != nil {
		return nil, fmt.Errorf("shipper config: %w", err)
	}
	location, err := cfg.ShipDateLocation()
	if err != nil {
		return nil, err
	}

	httpClient := &http.Client{Timeout: cfg.CarrierHTTPTimeout}

	var platformClient ports.PlatformClient = disabledPlatform{logger: logger}
	if cfg.PlatformEnabled() {
		platformClient = platform.NewClient(cfg.PlatformAdminURL, cfg.PlatformAccessToken, httpClient)
	}

	return &CompositionRoot{
		cfg:        cfg,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		logger:     logger,
		location:   location,
		detector:   services.NewCarrierDetector(),
		builder:    services.NewLabelRequestBuilder(shipper, cfg.CarrierDefaultPackaging),
		ledger:     trackingrepo.NewGormTrackingLedger(gormDB),
		labels:     labelstore.NewGormLabelStore(gormDB, cfg.PublicBaseURL),
		carrier: carrier.NewClient(carrier.Config{
			BaseURL:       cfg.CarrierBaseURL,
			ClientID:      cfg.CarrierClientID,
			ClientSecret:  cfg.CarrierClientSecret,
			AccountNumber: cfg.CarrierAccountNumber,
		}, httpClient, logger),
		platform: platformClient,
	}, nil
}

func (c *CompositionRoot) uow() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) fulfillmentUoW() commands.FulfillmentUoWFactory {
	return FuncFulfillmentUoWFactory(func() commands.FulfillmentUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() *commands.CreateOrderCommandHandler {
	h := commands.NewCreateOrderCommandHandler(c.uow(), services.NewOrderPartitioner(), c.logger)
	return &h
}

func (c *CompositionRoot) CreateApplyFulfillmentActionCommandHandler() *commands.ApplyFulfillmentActionCommandHandler {
	h := commands.NewApplyFulfillmentActionCommandHandler(c.fulfillmentUoW())
	return &h
}

func (c *CompositionRoot) CreateRecordTrackingCommandHandler() *commands.RecordTrackingCommandHandler {
	h := commands.NewRecordTrackingCommandHandler(
		c.fulfillmentUoW(), c.ledger, c.detector, c.platform, c.cfg.PlatformNotifyCustomer, c.logger)
	return &h
}

func (c *CompositionRoot) CreateLabelPipeline() *commands.LabelPipeline {
	return commands.NewLabelPipeline(c.uow(), c.builder, c.carrier, c.labels, c.ledger, c.logger)
}

func (c *CompositionRoot) CreateGenerateLabelsCommandHandler() *commands.GenerateLabelsCommandHandler {
	h := commands.NewGenerateLabelsCommandHandler(c.CreateLabelPipeline(), c.platform, commands.BatchSettings{
		Concurrency:      c.cfg.LabelBatchConcurrency,
		ShipDateLocation: c.location,
		NotifyCustomer:   c.cfg.PlatformNotifyCustomer,
	}, c.logger)
	return &h
}

func (c *CompositionRoot) CreateRefreshTrackingStatusesCommandHandler() *commands.RefreshTrackingStatusesCommandHandler {
	h := commands.NewRefreshTrackingStatusesCommandHandler(c.ledger, c.carrier, c.logger)
	return &h
}

func (c *CompositionRoot) CreateGetFulfillmentsQueryHandler() queries.GetFulfillmentsQueryHandler {
	return queries.NewGetFulfillmentsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetPickTicketsQueryHandler() queries.GetPickTicketsQueryHandler {
	return queries.NewGetPickTicketsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetLabelDocumentsQueryHandler() queries.GetLabelDocumentsQueryHandler {
	return queries.NewGetLabelDocumentsQueryHandler(c.gormDB, c.labels, labelstore.FilenameFromURL)
}

func (c *CompositionRoot) CreateDetectCarrierQueryHandler() queries.DetectCarrierQueryHandler {
	return queries.NewDetectCarrierQueryHandler(c.detector)
}

// CreateRouter wires every handler into the echo router.
func (c *CompositionRoot) CreateRouter() (*echo.Echo, error) {
	server := apihttp.NewServer(apihttp.Handlers{
		CreateOrder:            c.CreateCreateOrderCommandHandler(),
		ApplyFulfillmentAction: c.CreateApplyFulfillmentActionCommandHandler(),
		RecordTracking:         c.CreateRecordTrackingCommandHandler(),
		GenerateLabels:         c.CreateGenerateLabelsCommandHandler(),
		GetFulfillments:        c.CreateGetFulfillmentsQueryHandler(),
		GetPickTickets:         c.CreateGetPickTicketsQueryHandler(),
		GetLabelDocuments:      c.CreateGetLabelDocumentsQueryHandler(),
		DetectCarrier:          c.CreateDetectCarrierQueryHandler(),
		Labels:                 c.labels,
	}, c.location, c.logger)

	return apihttp.NewRouter(server, c.logger)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.CreateRefreshTrackingStatusesCommandHandler(), c.cfg.TrackingRefreshSchedule, c.logger)
}

type FuncFulfillmentUoWFactory func() commands.FulfillmentUoW

func (f FuncFulfillmentUoWFactory) Create() commands.FulfillmentUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}

// disabledPlatform stands in when no platform credentials are configured.
type disabledPlatform struct {
	logger *slog.Logger
}

func (p disabledPlatform) UpdateTracking(ctx context.Context, update ports.TrackingUpdate) error {
	p.logger.DebugContext(ctx, "platform sync disabled, skipping tracking update",
		"fulfillment_order_id", update.FulfillmentOrderID)
	return nil
}
