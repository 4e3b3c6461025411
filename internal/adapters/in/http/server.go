package http

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/fulfillment"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// Handler ports. The application handlers satisfy these through their pointer
// receivers.
type (
	CreateOrderHandler interface {
		Handle(ctx context.Context, cmd commands.CreateOrderCommand) ([]*fulfillment.Fulfillment, error)
	}
	ApplyFulfillmentActionHandler interface {
		Handle(ctx context.Context, cmd commands.ApplyFulfillmentActionCommand) ([]*fulfillment.Fulfillment, error)
	}
	RecordTrackingHandler interface {
		Handle(ctx context.Context, cmd commands.RecordTrackingCommand) (*fulfillment.Fulfillment, error)
	}
	GenerateLabelsHandler interface {
		Handle(ctx context.Context, cmd commands.GenerateLabelsCommand) (commands.BatchResult, error)
	}
	GetFulfillmentsHandler interface {
		Handle(ctx context.Context, query queries.GetFulfillmentsQuery) ([]queries.GetFulfillmentsQueryResponse, error)
	}
	GetPickTicketsHandler interface {
		Handle(ctx context.Context, query queries.GetPickTicketsQuery) ([]queries.PickTicket, error)
	}
	GetLabelDocumentsHandler interface {
		Handle(ctx context.Context, query queries.GetLabelDocumentsQuery) ([]queries.LabelDocumentResult, error)
	}
	DetectCarrierHandler interface {
		Handle(ctx context.Context, query queries.DetectCarrierQuery) (queries.DetectCarrierQueryResponse, error)
	}
)

// Handlers groups everything the server dispatches to.
type Handlers struct {
	CreateOrder            CreateOrderHandler
	ApplyFulfillmentAction ApplyFulfillmentActionHandler
	RecordTracking         RecordTrackingHandler
	GenerateLabels         GenerateLabelsHandler
	GetFulfillments        GetFulfillmentsHandler
	GetPickTickets         GetPickTicketsHandler
	GetLabelDocuments      GetLabelDocumentsHandler
	DetectCarrier          DetectCarrierHandler
	Labels                 ports.LabelStore
}

// Server implements ServerInterface for handling HTTP requests.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	h        Handlers
	location *time.Location
	logger   *slog.Logger
}

var _ ServerInterface = (*Server)(nil)

// NewServer creates the server. shipDateLocation is the timezone a requested
// ship date is read in.
func NewServer(h Handlers, shipDateLocation *time.Location, logger *slog.Logger) *Server {
	if shipDateLocation == nil {
		shipDateLocation = time.UTC
	}
	return &Server{
		h:        h,
		location: shipDateLocation,
		logger:   logger.With("component", "http-server"),
	}
}

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var body NewOrder
	if err := s.bind(ctx, &body); err != nil {
		return err
	}

	orderID := kernel.NewUUID()
	if body.Id != nil {
		var err error
		if orderID, err = kernel.UUIDFromBytes(body.Id[:]); err != nil {
			return badRequest(ctx, "Invalid order id: "+err.Error())
		}
	}

	items := make([]commands.LineItemInput, 0, len(body.LineItems))
	for _, li := range body.LineItems {
		sampleID, err := kernel.UUIDFromBytes(li.SampleId[:])
		if err != nil {
			return badRequest(ctx, "Invalid sample id: "+err.Error())
		}
		item := commands.LineItemInput{
			SampleID:   sampleID,
			SampleName: li.SampleName,
			Quantity:   li.Quantity,
		}
		if li.VendorId != nil {
			vendorID, vendorErr := kernel.UUIDFromBytes(li.VendorId[:])
			if vendorErr != nil {
				return badRequest(ctx, "Invalid vendor id: "+vendorErr.Error())
			}
			item.VendorID = &vendorID
		}
		items = append(items, item)
	}

	address := kernel.NewAddress(kernel.AddressFields{
		Line1:      body.Address.Line1,
		Line2:      body.Address.Line2,
		Line3:      body.Address.Line3,
		Line4:      body.Address.Line4,
		City:       body.Address.City,
		State:      body.Address.State,
		PostalCode: body.Address.PostalCode,
		Phone:      body.Address.Phone,
	})

	cmd, err := commands.NewCreateOrderCommand(orderID, body.Name, address, items, body.PlatformFulfillmentOrderId)
	if err != nil {
		return badRequest(ctx, "Invalid order data: "+err.Error())
	}

	fs, err := s.h.CreateOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, "Failed to create order", err)
	}

	return ctx.JSON(http.StatusCreated, fulfillmentsFromDomain(fs))
}

// GetFulfillments handles GET /api/v1/fulfillments.
func (s *Server) GetFulfillments(ctx echo.Context, params GetFulfillmentsParams) error {
	var ids []kernel.UUID
	if params.Ids != nil {
		var err error
		if ids, err = kernel.UUIDsFromStrings(*params.Ids); err != nil {
			return badRequest(ctx, "Invalid fulfillment ids: "+err.Error())
		}
	}

	rows, err := s.h.GetFulfillments.Handle(ctx.Request().Context(), queries.NewGetFulfillmentsQuery(ids))
	if err != nil {
		return s.fail(ctx, "Failed to retrieve fulfillments", err)
	}

	response := make([]Fulfillment, 0, len(rows))
	for _, row := range rows {
		response = append(response, fulfillmentFromRow(row))
	}
	return ctx.JSON(http.StatusOK, response)
}

// ApplyFulfillmentAction handles POST /api/v1/fulfillments/actions. The action
// name is parsed into a typed action here and nowhere else.
func (s *Server) ApplyFulfillmentAction(ctx echo.Context) error {
	var body FulfillmentAction
	if err := s.bind(ctx, &body); err != nil {
		return err
	}

	action, err := fulfillment.ParseAction(body.Action, body.Status)
	if err != nil {
		return badRequest(ctx, "Invalid action: "+err.Error())
	}

	cmd, err := commands.NewApplyFulfillmentActionCommand(uuidsToKernel(body.Ids), action)
	if err != nil {
		return badRequest(ctx, "Invalid action data: "+err.Error())
	}

	fs, err := s.h.ApplyFulfillmentAction.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, "Failed to apply action", err)
	}

	return ctx.JSON(http.StatusOK, fulfillmentsFromDomain(fs))
}

// RecordTracking handles PUT /api/v1/fulfillments/{id}/tracking.
func (s *Server) RecordTracking(ctx echo.Context, id uuid.UUID) error {
	var body NewTracking
	if err := s.bind(ctx, &body); err != nil {
		return err
	}

	fulfillmentID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return badRequest(ctx, "Invalid fulfillment id: "+err.Error())
	}

	cmd, err := commands.NewRecordTrackingCommand(fulfillmentID, body.Carrier, body.Number, body.LabelUrl)
	if err != nil {
		return badRequest(ctx, "Invalid tracking data: "+err.Error())
	}

	f, err := s.h.RecordTracking.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, "Failed to record tracking", err)
	}

	return ctx.JSON(http.StatusOK, fulfillmentFromDomain(f))
}

// GetPickTickets handles GET /api/v1/fulfillments/pick-tickets.
func (s *Server) GetPickTickets(ctx echo.Context, params IdsParams) error {
	ids, err := kernel.UUIDsFromStrings(params.Ids)
	if err != nil {
		return badRequest(ctx, "Invalid fulfillment ids: "+err.Error())
	}
	query, err := queries.NewGetPickTicketsQuery(ids)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	tickets, err := s.h.GetPickTickets.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, "Failed to build pick tickets", err)
	}

	return ctx.String(http.StatusOK, queries.RenderPickTickets(tickets))
}

// GetLabels handles GET /api/v1/fulfillments/labels. Ids without a stored
// label are listed in the X-Missing-Labels header.
func (s *Server) GetLabels(ctx echo.Context, params IdsParams) error {
	ids, err := kernel.UUIDsFromStrings(params.Ids)
	if err != nil {
		return badRequest(ctx, "Invalid fulfillment ids: "+err.Error())
	}
	query, err := queries.NewGetLabelDocumentsQuery(ids)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	results, err := s.h.GetLabelDocuments.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, "Failed to load labels", err)
	}

	var (
		body    bytes.Buffer
		missing []string
		parts   int
	)
	writer := multipart.NewWriter(&body)
	for _, r := range results {
		if r.Err != nil {
			s.logger.Warn("label unavailable", "fulfillment_id", r.FulfillmentID.String(), "error", r.Err)
			missing = append(missing, r.FulfillmentID.String())
			continue
		}
		header := textproto.MIMEHeader{}
		header.Set(echo.HeaderContentType, r.Document.ContentType)
		header.Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", r.Document.Filename))
		header.Set("X-Fulfillment-Id", r.FulfillmentID.String())
		part, partErr := writer.CreatePart(header)
		if partErr != nil {
			return s.fail(ctx, "Failed to write labels", partErr)
		}
		if _, partErr = part.Write(r.Document.Data); partErr != nil {
			return s.fail(ctx, "Failed to write labels", partErr)
		}
		parts++
	}
	if err = writer.Close(); err != nil {
		return s.fail(ctx, "Failed to write labels", err)
	}

	if parts == 0 {
		return ctx.JSON(http.StatusNotFound, Error{
			Code:    http.StatusNotFound,
			Message: "No stored labels for: " + strings.Join(missing, ", "),
		})
	}
	if len(missing) > 0 {
		ctx.Response().Header().Set("X-Missing-Labels", strings.Join(missing, ","))
	}
	return ctx.Blob(http.StatusOK, "multipart/mixed; boundary="+writer.Boundary(), body.Bytes())
}

// GenerateLabels handles POST /api/v1/fulfillments/labels. The response is 200
// even when some ids failed; each outcome carries its own error.
func (s *Server) GenerateLabels(ctx echo.Context) error {
	var body LabelBatch
	if err := s.bind(ctx, &body); err != nil {
		return err
	}

	var shipDate time.Time
	if body.ShipDate != "" {
		var err error
		if shipDate, err = time.ParseInLocation(time.DateOnly, body.ShipDate, s.location); err != nil {
			return badRequest(ctx, "Invalid ship date: "+err.Error())
		}
	}

	cmd, err := commands.NewGenerateLabelsCommand(uuidsToKernel(body.Ids), shipDate, body.PackagingType)
	if err != nil {
		return badRequest(ctx, "Invalid batch: "+err.Error())
	}

	result, err := s.h.GenerateLabels.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, "Failed to generate labels", err)
	}

	response := LabelBatchResult{Results: make([]LabelOutcome, 0, len(result.Results))}
	for _, r := range result.Results {
		outcome := LabelOutcome{Id: r.FulfillmentID.Bytes()}
		if r.Err != nil {
			msg := r.Err.Error()
			outcome.Error = &msg
		} else {
			f := fulfillmentFromDomain(r.Fulfillment)
			outcome.Fulfillment = &f
		}
		response.Results = append(response.Results, outcome)
	}
	return ctx.JSON(http.StatusOK, response)
}

// GetLabel handles GET /api/v1/labels/{name}.
func (s *Server) GetLabel(ctx echo.Context, name string) error {
	doc, err := s.h.Labels.Load(ctx.Request().Context(), name)
	if err != nil {
		return s.fail(ctx, "Failed to load label", err)
	}

	ctx.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("inline; filename=%q", doc.Filename))
	return ctx.Blob(http.StatusOK, doc.ContentType, doc.Data)
}

// DetectCarrier handles GET /api/v1/tracking-numbers/{number}/carrier.
func (s *Server) DetectCarrier(ctx echo.Context, number string) error {
	query, err := queries.NewDetectCarrierQuery(number)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	guess, err := s.h.DetectCarrier.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, "Failed to detect carrier", err)
	}

	return ctx.JSON(http.StatusOK, CarrierGuess{
		Number:      guess.TrackingNumber,
		Carrier:     guess.Carrier,
		TrackingUrl: guess.TrackingURL,
	})
}

func (s *Server) bind(ctx echo.Context, body any) error {
	if err := ctx.Bind(body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}
	if err := ctx.Validate(body); err != nil {
		return badRequest(ctx, "Invalid request body: "+err.Error())
	}
	return nil
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, Error{Code: http.StatusBadRequest, Message: message})
}

// fail maps an application error to a status and logs server-side failures.
func (s *Server) fail(ctx echo.Context, message string, err error) error {
	code := statusFor(err)
	if code >= http.StatusInternalServerError {
		s.logger.Error(message, "path", ctx.Path(), "error", err)
	}
	return ctx.JSON(code, Error{Code: code, Message: message + ": " + err.Error()})
}

func fulfillmentsFromDomain(fs []*fulfillment.Fulfillment) []Fulfillment {
	out := make([]Fulfillment, 0, len(fs))
	for _, f := range fs {
		out = append(out, fulfillmentFromDomain(f))
	}
	return out
}

func fulfillmentFromDomain(f *fulfillment.Fulfillment) Fulfillment {
	out := Fulfillment{
		Id:                         f.ID().Bytes(),
		OrderId:                    f.OrderID().Bytes(),
		VendorId:                   f.VendorID().Bytes(),
		Name:                       f.Name(),
		Status:                     f.Status().String(),
		Archived:                   f.IsArchived(),
		PlatformFulfillmentOrderId: f.PlatformFulfillmentOrderID(),
		LineItemCount:              len(f.LineItems()),
	}
	if t := f.Tracking(); t != nil {
		out.Tracking = &Tracking{
			Carrier:    t.Carrier(),
			Number:     t.Number(),
			Url:        services.TrackingURL(t.Carrier(), t.Number()),
			LabelUrl:   t.LabelURL(),
			LiveStatus: t.LiveStatus(),
		}
	}
	return out
}

func fulfillmentFromRow(row queries.GetFulfillmentsQueryResponse) Fulfillment {
	out := Fulfillment{
		Id:                         row.ID.Bytes(),
		OrderId:                    row.OrderID.Bytes(),
		OrderName:                  row.OrderName,
		VendorId:                   row.VendorID.Bytes(),
		Name:                       row.Name,
		Status:                     row.Status,
		Archived:                   row.Archived,
		PlatformFulfillmentOrderId: row.PlatformFulfillmentOrderID,
		LineItemCount:              row.LineItemCount,
	}
	if row.TrackingNumber != "" {
		out.Tracking = &Tracking{
			Carrier:    row.Carrier,
			Number:     row.TrackingNumber,
			Url:        row.TrackingURL,
			LabelUrl:   row.LabelURL,
			LiveStatus: row.LiveStatus,
		}
	}
	return out
}

func uuidsToKernel(ids []uuid.UUID) []kernel.UUID {
	out := make([]kernel.UUID, 0, len(ids))
	for _, id := range ids {
		if k, err := kernel.UUIDFromBytes(id[:]); err == nil {
			out = append(out, k)
		}
	}
	return out
}
