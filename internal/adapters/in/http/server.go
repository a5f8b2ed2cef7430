package http

import (
	"context"
	"fmt"
	"net/http"

	"freight/internal/core/application/usecases/commands"
	"freight/internal/core/application/usecases/queries"
	"freight/internal/core/domain/model/invoice"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/shipment"
	"freight/internal/core/domain/services"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
)

type CommandHandler[C any] interface {
	Handle(ctx context.Context, cmd C) error
}

type QueryHandler[Q, R any] interface {
	Handle(ctx context.Context, query Q) (R, error)
}

// Handlers are the use cases the HTTP API exposes.
type Handlers struct {
	CreateShipment       CommandHandler[commands.CreateShipmentCommand]
	ChangeShipmentStatus CommandHandler[commands.ChangeShipmentStatusCommand]
	CreateInvoice        CommandHandler[commands.CreateInvoiceCommand]
	UpdateInvoicePayment CommandHandler[commands.UpdateInvoicePaymentCommand]

	CalculateCost      QueryHandler[queries.CalculateCostQuery, services.CostBreakdown]
	GetShipment        QueryHandler[queries.GetShipmentQuery, queries.ShipmentResponse]
	GetShipmentHistory QueryHandler[queries.GetShipmentHistoryQuery, []queries.StatusHistoryResponse]
	ListShipments      QueryHandler[queries.ListShipmentsQuery, []queries.ShipmentResponse]
	GetInvoice         QueryHandler[queries.GetInvoiceQuery, queries.InvoiceResponse]
	ListInvoices       QueryHandler[queries.ListInvoicesQuery, []queries.InvoiceResponse]
	GetInvoiceDocument QueryHandler[queries.GetInvoiceDocumentQuery, queries.InvoiceDocumentResponse]
	ListPricingRules   QueryHandler[queries.ListPricingRulesQuery, []queries.PricingRuleResponse]
}

// Server translates HTTP requests into commands and queries.
type Server struct {
	handlers Handlers
	ids      kernel.IDGenerator
}

func NewServer(handlers Handlers, ids kernel.IDGenerator) *Server {
	return &Server{handlers: handlers, ids: ids}
}

func (s *Server) register(g *echo.Group) {
	g.POST("/shipments", s.CreateShipment)
	g.GET("/shipments", s.ListShipments)
	g.POST("/shipments/calculate-cost", s.CalculateCost)
	g.GET("/shipments/:id", s.GetShipment)
	g.GET("/shipments/:id/history", s.GetShipmentHistory)
	g.PUT("/shipments/:id/status", s.ChangeShipmentStatus)

	g.POST("/invoices", s.CreateInvoice)
	g.GET("/invoices", s.ListInvoices)
	g.GET("/invoices/:id", s.GetInvoice)
	g.GET("/invoices/:id/pdf", s.GetInvoicePDF)
	g.PUT("/invoices/:id/payment", s.UpdateInvoicePayment)

	g.GET("/pricing-rules", s.ListPricingRules)
}

// CreateShipment handles POST /api/shipments.
func (s *Server) CreateShipment(c echo.Context) error {
	var req NewShipmentRequest
	if err := c.Bind(&req); err != nil {
		return err
	}

	mode, err := kernel.ParseTransportMode(req.TransportMode)
	if err != nil {
		return err
	}
	customerID, err := kernel.ParseID(req.CustomerID)
	if err != nil {
		return err
	}
	vendorID, err := kernel.ParseID(req.VendorID)
	if err != nil {
		return err
	}

	cargo := shipment.Cargo{
		TransportMode: mode,
		Weight:        req.Weight,
		Description:   req.CargoDescription,
	}
	if req.Volume != nil {
		cargo.Volume = *req.Volume
	}

	params := commands.CreateShipmentParams{
		ShipmentID: s.ids.NextID(),
		CustomerID: customerID,
		VendorID:   vendorID,
		Route: shipment.Route{
			OriginCity:         req.OriginCity,
			OriginCountry:      req.OriginCountry,
			DestinationCity:    req.DestinationCity,
			DestinationCountry: req.DestinationCountry,
		},
		Cargo:                cargo,
		ExpectedDeliveryDate: req.ExpectedDeliveryDate,
		Actor:                actorFrom(c),
	}
	if req.DistanceKm != nil {
		params.DistanceKm = *req.DistanceKm
	}
	if req.BookingDate != nil {
		params.BookingDate = *req.BookingDate
	}

	cmd, err := commands.NewCreateShipmentCommand(params)
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	if err = s.handlers.CreateShipment.Handle(ctx, cmd); err != nil {
		return err
	}

	return s.respondShipment(c, http.StatusCreated, params.ShipmentID)
}

// ListShipments handles GET /api/shipments.
func (s *Server) ListShipments(c echo.Context) error {
	var (
		status     *string
		customerID *string
		filter     queries.ShipmentFilter
	)

	if err := bindQuery(c, "status", &status); err != nil {
		return err
	}
	if err := bindQuery(c, "customerId", &customerID); err != nil {
		return err
	}
	if err := bindQuery(c, "fromDate", &filter.FromDate); err != nil {
		return err
	}
	if err := bindQuery(c, "toDate", &filter.ToDate); err != nil {
		return err
	}
	page, err := bindPage(c)
	if err != nil {
		return err
	}
	filter.Page = page

	if status != nil {
		st, parseErr := shipment.ParseStatus(*status)
		if parseErr != nil {
			return parseErr
		}
		filter.Status = &st
	}
	if customerID != nil {
		id, parseErr := kernel.ParseID(*customerID)
		if parseErr != nil {
			return parseErr
		}
		filter.CustomerID = &id
	}

	query, err := queries.NewListShipmentsQuery(filter)
	if err != nil {
		return err
	}

	shipments, err := s.handlers.ListShipments.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}

	response := make([]ShipmentResponse, len(shipments))
	for i, sh := range shipments {
		response[i] = toShipmentResponse(sh)
	}
	return c.JSON(http.StatusOK, response)
}

// CalculateCost handles POST /api/shipments/calculate-cost.
func (s *Server) CalculateCost(c echo.Context) error {
	var req CostRequest
	if err := c.Bind(&req); err != nil {
		return err
	}

	mode, err := kernel.ParseTransportMode(req.TransportMode)
	if err != nil {
		return err
	}

	query, err := queries.NewCalculateCostQuery(mode, req.Weight, req.DistanceKm)
	if err != nil {
		return err
	}

	breakdown, err := s.handlers.CalculateCost.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toCostBreakdownResponse(breakdown))
}

// GetShipment handles GET /api/shipments/:id.
func (s *Server) GetShipment(c echo.Context) error {
	id, err := bindID(c)
	if err != nil {
		return err
	}
	return s.respondShipment(c, http.StatusOK, id)
}

// GetShipmentHistory handles GET /api/shipments/:id/history.
func (s *Server) GetShipmentHistory(c echo.Context) error {
	id, err := bindID(c)
	if err != nil {
		return err
	}

	query, err := queries.NewGetShipmentHistoryQuery(id)
	if err != nil {
		return err
	}

	history, err := s.handlers.GetShipmentHistory.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toHistoryResponse(history))
}

// ChangeShipmentStatus handles PUT /api/shipments/:id/status.
func (s *Server) ChangeShipmentStatus(c echo.Context) error {
	id, err := bindID(c)
	if err != nil {
		return err
	}

	var req StatusChangeRequest
	if err = c.Bind(&req); err != nil {
		return err
	}

	status, err := shipment.ParseStatus(req.Status)
	if err != nil {
		return err
	}

	cmd, err := commands.NewChangeShipmentStatusCommand(id, status, req.Remarks, req.ActualCost, actorFrom(c))
	if err != nil {
		return err
	}

	if err = s.handlers.ChangeShipmentStatus.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// CreateInvoice handles POST /api/invoices.
func (s *Server) CreateInvoice(c echo.Context) error {
	var req NewInvoiceRequest
	if err := c.Bind(&req); err != nil {
		return err
	}

	shipmentID, err := kernel.ParseID(req.ShipmentID)
	if err != nil {
		return err
	}

	invoiceID := s.ids.NextID()
	cmd, err := commands.NewCreateInvoiceCommand(invoiceID, shipmentID)
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	if err = s.handlers.CreateInvoice.Handle(ctx, cmd); err != nil {
		return err
	}

	return s.respondInvoice(c, http.StatusCreated, invoiceID)
}

// ListInvoices handles GET /api/invoices.
func (s *Server) ListInvoices(c echo.Context) error {
	var (
		paymentStatus *string
		customerID    *string
		filter        queries.InvoiceFilter
	)

	if err := bindQuery(c, "paymentStatus", &paymentStatus); err != nil {
		return err
	}
	if err := bindQuery(c, "customerId", &customerID); err != nil {
		return err
	}
	page, err := bindPage(c)
	if err != nil {
		return err
	}
	filter.Page = page

	if paymentStatus != nil {
		st, parseErr := invoice.ParsePaymentStatus(*paymentStatus)
		if parseErr != nil {
			return parseErr
		}
		filter.PaymentStatus = &st
	}
	if customerID != nil {
		id, parseErr := kernel.ParseID(*customerID)
		if parseErr != nil {
			return parseErr
		}
		filter.CustomerID = &id
	}

	query, err := queries.NewListInvoicesQuery(filter)
	if err != nil {
		return err
	}

	invoices, err := s.handlers.ListInvoices.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}

	response := make([]InvoiceResponse, len(invoices))
	for i, inv := range invoices {
		response[i] = toInvoiceResponse(inv)
	}
	return c.JSON(http.StatusOK, response)
}

// GetInvoice handles GET /api/invoices/:id.
func (s *Server) GetInvoice(c echo.Context) error {
	id, err := bindID(c)
	if err != nil {
		return err
	}
	return s.respondInvoice(c, http.StatusOK, id)
}

// GetInvoicePDF handles GET /api/invoices/:id/pdf.
func (s *Server) GetInvoicePDF(c echo.Context) error {
	id, err := bindID(c)
	if err != nil {
		return err
	}

	query, err := queries.NewGetInvoiceDocumentQuery(id)
	if err != nil {
		return err
	}

	doc, err := s.handlers.GetInvoiceDocument.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", doc.FileName))
	return c.Blob(http.StatusOK, "application/pdf", doc.Content)
}

// UpdateInvoicePayment handles PUT /api/invoices/:id/payment.
func (s *Server) UpdateInvoicePayment(c echo.Context) error {
	id, err := bindID(c)
	if err != nil {
		return err
	}

	var req PaymentUpdateRequest
	if err = c.Bind(&req); err != nil {
		return err
	}

	status, err := invoice.ParsePaymentStatus(req.PaymentStatus)
	if err != nil {
		return err
	}

	cmd, err := commands.NewUpdateInvoicePaymentCommand(id, status, req.PaidAmount)
	if err != nil {
		return err
	}

	if err = s.handlers.UpdateInvoicePayment.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// ListPricingRules handles GET /api/pricing-rules.
func (s *Server) ListPricingRules(c echo.Context) error {
	rules, err := s.handlers.ListPricingRules.Handle(c.Request().Context(), queries.NewListPricingRulesQuery())
	if err != nil {
		return err
	}

	response := make([]PricingRuleResponse, len(rules))
	for i, r := range rules {
		response[i] = toPricingRuleResponse(r)
	}
	return c.JSON(http.StatusOK, response)
}

func (s *Server) respondShipment(c echo.Context, status int, id kernel.ID) error {
	query, err := queries.NewGetShipmentQuery(id)
	if err != nil {
		return err
	}

	sh, err := s.handlers.GetShipment.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(status, toShipmentResponse(sh))
}

func (s *Server) respondInvoice(c echo.Context, status int, id kernel.ID) error {
	query, err := queries.NewGetInvoiceQuery(id)
	if err != nil {
		return err
	}

	inv, err := s.handlers.GetInvoice.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(status, toInvoiceResponse(inv))
}

func bindID(c echo.Context) (kernel.ID, error) {
	var raw string
	err := runtime.BindStyledParameterWithOptions("simple", "id", c.Param("id"), &raw, runtime.BindStyledParameterOptions{
		ParamLocation: runtime.ParamLocationPath,
		Explode:       false,
		Required:      true,
	})
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, err.Error()).SetInternal(err)
	}
	return kernel.ParseID(raw)
}

func bindQuery[T any](c echo.Context, name string, dest *T) error {
	if err := runtime.BindQueryParameter("form", true, false, name, c.QueryParams(), dest); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error()).SetInternal(err)
	}
	return nil
}

func bindPage(c echo.Context) (queries.Page, error) {
	var limit, offset *int
	if err := bindQuery(c, "limit", &limit); err != nil {
		return queries.Page{}, err
	}
	if err := bindQuery(c, "offset", &offset); err != nil {
		return queries.Page{}, err
	}

	var page queries.Page
	if limit != nil {
		page.Limit = *limit
	}
	if offset != nil {
		page.Offset = *offset
	}
	return page, nil
}
