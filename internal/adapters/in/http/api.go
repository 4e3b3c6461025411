package http

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
)

// Error is the body of every non-2xx JSON response.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type Address struct {
	Line1      string `json:"line1" validate:"required"`
	Line2      string `json:"line2,omitempty"`
	Line3      string `json:"line3,omitempty"`
	Line4      string `json:"line4,omitempty"`
	City       string `json:"city,omitempty"`
	State      string `json:"state,omitempty"`
	PostalCode string `json:"postalCode,omitempty"`
	Phone      string `json:"phone,omitempty"`
}

type NewOrderLineItem struct {
	SampleId   uuid.UUID  `json:"sampleId" validate:"required"`
	SampleName string     `json:"sampleName" validate:"required"`
	VendorId   *uuid.UUID `json:"vendorId,omitempty"`
	Quantity   int        `json:"quantity" validate:"gte=1"`
}

type NewOrder struct {
	Id                         *uuid.UUID         `json:"id,omitempty"`
	Name                       string             `json:"name" validate:"required"`
	Address                    Address            `json:"address"`
	LineItems                  []NewOrderLineItem `json:"lineItems" validate:"required,min=1,dive"`
	PlatformFulfillmentOrderId string             `json:"platformFulfillmentOrderId,omitempty"`
}

type Tracking struct {
	Carrier    string `json:"carrier"`
	Number     string `json:"number"`
	Url        string `json:"url,omitempty"`
	LabelUrl   string `json:"labelUrl,omitempty"`
	LiveStatus string `json:"liveStatus,omitempty"`
}

type Fulfillment struct {
	Id                         uuid.UUID `json:"id"`
	OrderId                    uuid.UUID `json:"orderId"`
	OrderName                  string    `json:"orderName,omitempty"`
	VendorId                   uuid.UUID `json:"vendorId"`
	Name                       string    `json:"name"`
	Status                     string    `json:"status"`
	Archived                   bool      `json:"archived"`
	PlatformFulfillmentOrderId string    `json:"platformFulfillmentOrderId,omitempty"`
	LineItemCount              int       `json:"lineItemCount"`
	Tracking                   *Tracking `json:"tracking,omitempty"`
}

type FulfillmentAction struct {
	Ids    []uuid.UUID `json:"ids" validate:"required,min=1"`
	Action string      `json:"action" validate:"required,oneof=set_status archive unarchive clear_tracking"`
	Status string      `json:"status,omitempty" validate:"required_if=Action set_status"`
}

type NewTracking struct {
	Carrier  string `json:"carrier,omitempty"`
	Number   string `json:"number" validate:"required"`
	LabelUrl string `json:"labelUrl,omitempty" validate:"omitempty,url"`
}

type LabelBatch struct {
	Ids           []uuid.UUID `json:"ids" validate:"required,min=1"`
	ShipDate      string      `json:"shipDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
	PackagingType string      `json:"packagingType,omitempty"`
}

type LabelOutcome struct {
	Id          uuid.UUID    `json:"id"`
	Fulfillment *Fulfillment `json:"fulfillment"`
	Error       *string      `json:"error,omitempty"`
}

type LabelBatchResult struct {
	Results []LabelOutcome `json:"results"`
}

type CarrierGuess struct {
	Number      string `json:"number"`
	Carrier     string `json:"carrier"`
	TrackingUrl string `json:"trackingUrl,omitempty"`
}

// GetFulfillmentsParams defines parameters for GetFulfillments.
type GetFulfillmentsParams struct {
	Ids *[]string `form:"ids,omitempty" json:"ids,omitempty"`
}

// IdsParams defines the required ids parameter of the bulk document endpoints.
type IdsParams struct {
	Ids []string `form:"ids" json:"ids"`
}

// ServerInterface represents all server handlers.
type ServerInterface interface {
	// (POST /api/v1/orders)
	CreateOrder(ctx echo.Context) error
	// (GET /api/v1/fulfillments)
	GetFulfillments(ctx echo.Context, params GetFulfillmentsParams) error
	// (POST /api/v1/fulfillments/actions)
	ApplyFulfillmentAction(ctx echo.Context) error
	// (PUT /api/v1/fulfillments/{id}/tracking)
	RecordTracking(ctx echo.Context, id uuid.UUID) error
	// (GET /api/v1/fulfillments/pick-tickets)
	GetPickTickets(ctx echo.Context, params IdsParams) error
	// (GET /api/v1/fulfillments/labels)
	GetLabels(ctx echo.Context, params IdsParams) error
	// (POST /api/v1/fulfillments/labels)
	GenerateLabels(ctx echo.Context) error
	// (GET /api/v1/labels/{name})
	GetLabel(ctx echo.Context, name string) error
	// (GET /api/v1/tracking-numbers/{number}/carrier)
	DetectCarrier(ctx echo.Context, number string) error
}

// ServerInterfaceWrapper converts echo contexts to parameters.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

func (w *ServerInterfaceWrapper) CreateOrder(ctx echo.Context) error {
	return w.Handler.CreateOrder(ctx)
}

func (w *ServerInterfaceWrapper) GetFulfillments(ctx echo.Context) error {
	var params GetFulfillmentsParams

	err := runtime.BindQueryParameter("form", true, false, "ids", ctx.QueryParams(), &params.Ids)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter ids: %s", err))
	}

	return w.Handler.GetFulfillments(ctx, params)
}

func (w *ServerInterfaceWrapper) ApplyFulfillmentAction(ctx echo.Context) error {
	return w.Handler.ApplyFulfillmentAction(ctx)
}

func (w *ServerInterfaceWrapper) RecordTracking(ctx echo.Context) error {
	var id uuid.UUID

	err := runtime.BindStyledParameterWithOptions("simple", "id", ctx.Param("id"), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter id: %s", err))
	}

	return w.Handler.RecordTracking(ctx, id)
}

func (w *ServerInterfaceWrapper) GetPickTickets(ctx echo.Context) error {
	params, err := bindIds(ctx)
	if err != nil {
		return err
	}
	return w.Handler.GetPickTickets(ctx, params)
}

func (w *ServerInterfaceWrapper) GetLabels(ctx echo.Context) error {
	params, err := bindIds(ctx)
	if err != nil {
		return err
	}
	return w.Handler.GetLabels(ctx, params)
}

func (w *ServerInterfaceWrapper) GenerateLabels(ctx echo.Context) error {
	return w.Handler.GenerateLabels(ctx)
}

func (w *ServerInterfaceWrapper) GetLabel(ctx echo.Context) error {
	var name string

	err := runtime.BindStyledParameterWithOptions("simple", "name", ctx.Param("name"), &name,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter name: %s", err))
	}

	return w.Handler.GetLabel(ctx, name)
}

func (w *ServerInterfaceWrapper) DetectCarrier(ctx echo.Context) error {
	var number string

	err := runtime.BindStyledParameterWithOptions("simple", "number", ctx.Param("number"), &number,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter number: %s", err))
	}

	return w.Handler.DetectCarrier(ctx, number)
}

func bindIds(ctx echo.Context) (IdsParams, error) {
	var params IdsParams

	err := runtime.BindQueryParameter("form", true, true, "ids", ctx.QueryParams(), &params.Ids)
	if err != nil {
		return IdsParams{}, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter ids: %s", err))
	}
	return params, nil
}

// EchoRouter is satisfied by *echo.Echo and *echo.Group.
type EchoRouter interface {
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PUT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// RegisterHandlers adds each server route to the EchoRouter.
func RegisterHandlers(router EchoRouter, si ServerInterface) {
	wrapper := ServerInterfaceWrapper{Handler: si}

	router.POST("/api/v1/orders", wrapper.CreateOrder)
	router.GET("/api/v1/fulfillments", wrapper.GetFulfillments)
	router.POST("/api/v1/fulfillments/actions", wrapper.ApplyFulfillmentAction)
	router.PUT("/api/v1/fulfillments/:id/tracking", wrapper.RecordTracking)
	router.GET("/api/v1/fulfillments/pick-tickets", wrapper.GetPickTickets)
	router.GET("/api/v1/fulfillments/labels", wrapper.GetLabels)
	router.POST("/api/v1/fulfillments/labels", wrapper.GenerateLabels)
	router.GET("/api/v1/labels/:name", wrapper.GetLabel)
	router.GET("/api/v1/tracking-numbers/:number/carrier", wrapper.DetectCarrier)
}
