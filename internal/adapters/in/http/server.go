package http

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/inventory"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// Use case ports of the HTTP surface. The command and query handlers satisfy
// them directly.
type (
	ProcessOrderHandler interface {
		Handle(ctx context.Context, cmd commands.ProcessOrderCommand) (commands.ProcessOrderResult, error)
	}
	CancelOrderHandler interface {
		Handle(ctx context.Context, cmd commands.CancelOrderCommand) error
	}
	FulfillOrderHandler interface {
		Handle(ctx context.Context, cmd commands.FulfillOrderCommand) error
	}
	RestockInventoryHandler interface {
		Handle(ctx context.Context, cmd commands.RestockInventoryCommand) (inventory.StockLevel, error)
	}
	GetOrderDetailsHandler interface {
		Handle(ctx context.Context, q queries.GetOrderDetailsQuery) (*order.Order, error)
	}
	ListCustomerOrdersHandler interface {
		Handle(ctx context.Context, q queries.ListCustomerOrdersQuery) ([]order.Summary, error)
	}
	GetStockSnapshotHandler interface {
		Handle(ctx context.Context, q queries.GetStockSnapshotQuery) (queries.GetStockSnapshotQueryResponse, error)
	}
)

// Handlers groups every use case the server exposes.
type Handlers struct {
	ProcessOrder       ProcessOrderHandler
	CancelOrder        CancelOrderHandler
	FulfillOrder       FulfillOrderHandler
	RestockInventory   RestockInventoryHandler
	GetOrderDetails    GetOrderDetailsHandler
	ListCustomerOrders ListCustomerOrdersHandler
	GetStockSnapshot   GetStockSnapshotHandler
}

// Server translates HTTP requests into commands and queries. Failures are
// answered with an Error body whose message never carries internal detail.
type Server struct {
	h Handlers
}

func NewServer(h Handlers) *Server {
	return &Server{h: h}
}

// NewRouter builds the echo instance: panic recovery, request validation
// against the embedded document, then every route.
func NewRouter(ctx context.Context, s *Server) (*echo.Echo, error) {
	doc, err := LoadOpenAPI(ctx)
	if err != nil {
		return nil, err
	}
	validator, err := RequestValidator(doc)
	if err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(validator)
	RegisterHandlers(e, s)

	return e, nil
}

// RegisterHandlers mounts every operation of openapi.yaml on e.
func RegisterHandlers(e *echo.Echo, s *Server) {
	e.POST("/api/v1/orders", s.ProcessOrder)
	e.GET("/api/v1/orders/:orderId", s.GetOrderDetails)
	e.POST("/api/v1/orders/:orderId/cancel", s.CancelOrder)
	e.POST("/api/v1/orders/:orderId/fulfill", s.FulfillOrder)
	e.GET("/api/v1/customers/:email/orders", s.ListCustomerOrders)
	e.POST("/api/v1/stock", s.RestockInventory)
	e.GET("/api/v1/stock/:productId", s.GetStockSnapshot)
	e.GET("/api/v1/openapi.yaml", func(c echo.Context) error {
		return c.Blob(http.StatusOK, "application/yaml", openAPIDocument)
	})
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
}

// ProcessOrder handles POST /api/v1/orders - routes and confirms a checkout.
func (s *Server) ProcessOrder(ctx echo.Context) error {
	var body NewOrder
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, err)
	}

	params, err := toProcessOrderParams(body)
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewProcessOrderCommand(params)
	if err != nil {
		return respondError(ctx, err)
	}

	result, err := s.h.ProcessOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, toOrderConfirmation(result))
}

// GetOrderDetails handles GET /api/v1/orders/{orderId}.
func (s *Server) GetOrderDetails(ctx echo.Context) error {
	id, err := kernel.UUIDFromString(ctx.Param("orderId"))
	if err != nil {
		return respondError(ctx, err)
	}

	query, err := queries.NewGetOrderDetailsQuery(id)
	if err != nil {
		return respondError(ctx, err)
	}

	o, err := s.h.GetOrderDetails.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toOrderDetails(o))
}

// CancelOrder handles POST /api/v1/orders/{orderId}/cancel.
func (s *Server) CancelOrder(ctx echo.Context) error {
	id, err := kernel.UUIDFromString(ctx.Param("orderId"))
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewCancelOrderCommand(id)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.h.CancelOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// FulfillOrder handles POST /api/v1/orders/{orderId}/fulfill.
func (s *Server) FulfillOrder(ctx echo.Context) error {
	id, err := kernel.UUIDFromString(ctx.Param("orderId"))
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewFulfillOrderCommand(id)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.h.FulfillOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ListCustomerOrders handles GET /api/v1/customers/{email}/orders.
func (s *Server) ListCustomerOrders(ctx echo.Context) error {
	email, err := url.PathUnescape(ctx.Param("email"))
	if err != nil {
		return respondError(ctx, errs.NewValueIsInvalidErrorWithCause("email", err))
	}

	limit := 0
	if raw := ctx.QueryParam("limit"); raw != "" {
		if limit, err = strconv.Atoi(raw); err != nil {
			return respondError(ctx, errs.NewValueIsInvalidErrorWithCause("limit", err))
		}
	}

	query, err := queries.NewListCustomerOrdersQuery(email, limit)
	if err != nil {
		return respondError(ctx, err)
	}

	summaries, err := s.h.ListCustomerOrders.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	response := make([]OrderSummary, len(summaries))
	for i, summary := range summaries {
		response[i] = toOrderSummary(summary)
	}

	return ctx.JSON(http.StatusOK, response)
}

// RestockInventory handles POST /api/v1/stock.
func (s *Server) RestockInventory(ctx echo.Context) error {
	var body Restock
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, err)
	}

	cmd, err := commands.NewRestockInventoryCommand(body.ProductId, body.LocationId, body.Quantity)
	if err != nil {
		return respondError(ctx, err)
	}

	level, err := s.h.RestockInventory.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, StockLevel{LocationId: level.LocationID, QuantityOnHand: level.QuantityOnHand})
}

// GetStockSnapshot handles GET /api/v1/stock/{productId}.
func (s *Server) GetStockSnapshot(ctx echo.Context) error {
	productID, err := url.PathUnescape(ctx.Param("productId"))
	if err != nil {
		return respondError(ctx, errs.NewValueIsInvalidErrorWithCause("productId", err))
	}

	query, err := queries.NewGetStockSnapshotQuery(productID)
	if err != nil {
		return respondError(ctx, err)
	}

	snapshot, err := s.h.GetStockSnapshot.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	levels := make([]StockLevel, len(snapshot.Levels))
	for i, l := range snapshot.Levels {
		levels[i] = StockLevel{LocationId: l.LocationID, QuantityOnHand: l.QuantityOnHand}
	}

	return ctx.JSON(http.StatusOK, StockSnapshot{
		ProductId: snapshot.ProductID,
		Levels:    levels,
		Total:     snapshot.Total,
	})
}
