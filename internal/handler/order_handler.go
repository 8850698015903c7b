package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"firesafe/internal/auth"
	apperrors "firesafe/internal/errors"
	"firesafe/internal/model"
	"firesafe/internal/service"
)

// OrderHandler handles order placement and the admin order surface.
type OrderHandler struct {
	orderService service.OrderService
}

// NewOrderHandler creates a new order handler.
func NewOrderHandler(orderService service.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// OrderItemRequest is one line of a new order.
type OrderItemRequest struct {
	ProductID uint `json:"productId" validate:"required"`
	Quantity  int  `json:"quantity" validate:"required,min=1"`
}

// CreateOrderRequest represents an order placement request.
type CreateOrderRequest struct {
	Items             []OrderItemRequest `json:"items" validate:"required,min=1,dive"`
	ShippingAddressID uint               `json:"shippingAddressId"`
	PaymentMethod     string             `json:"paymentMethod"`
	PaymentID         string             `json:"paymentId"`
}

// UpdateOrderStatusRequest represents an admin status transition.
type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// Create godoc
// @Summary Place an order
// @Tags orders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateOrderRequest true "Order lines"
// @Success 201 {object} Response{data=service.CreateOrderResult}
// @Failure 400 {object} Response
// @Failure 404 {object} Response
// @Router /orders [post]
func (h *OrderHandler) Create(c echo.Context) error {
	claims, ok := auth.FromContext(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}

	var req CreateOrderRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	in := service.CreateOrderInput{
		ShippingAddressID: req.ShippingAddressID,
		PaymentMethod:     req.PaymentMethod,
		PaymentID:         req.PaymentID,
	}
	for _, item := range req.Items {
		in.Items = append(in.Items, service.OrderItemInput{ProductID: item.ProductID, Quantity: item.Quantity})
	}

	result, err := h.orderService.CreateOrder(c.Request().Context(), claims.UserID, in)
	if err != nil {
		return respondError(err)
	}

	return respondMessage(c, http.StatusCreated, "order placed", result)
}

// ListMine godoc
// @Summary List the caller's orders
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=[]service.OrderWithItems}
// @Router /orders/my-orders [get]
func (h *OrderHandler) ListMine(c echo.Context) error {
	claims, ok := auth.FromContext(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}

	orders, err := h.orderService.ListForUser(c.Request().Context(), claims.UserID)
	if err != nil {
		return respondError(err)
	}

	return respond(c, http.StatusOK, orders)
}

// Get godoc
// @Summary Get an order by id
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Param id path int true "Order ID"
// @Success 200 {object} Response{data=service.OrderWithItems}
// @Failure 404 {object} Response
// @Router /orders/{id} [get]
func (h *OrderHandler) Get(c echo.Context) error {
	claims, ok := auth.FromContext(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	order, err := h.orderService.Get(c.Request().Context(), id, claims.UserID, claims.IsAdmin)
	if err != nil {
		return respondError(err)
	}

	return respond(c, http.StatusOK, order)
}

// ListAll godoc
// @Summary List all orders
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Param status query string false "Filter by status"
// @Success 200 {object} Response{data=[]model.Order}
// @Failure 403 {object} Response
// @Router /orders/all [get]
func (h *OrderHandler) ListAll(c echo.Context) error {
	status := model.OrderStatus(c.QueryParam("status"))
	if status != "" && !model.ValidOrderStatus(status) {
		return respondError(apperrors.ErrInvalidOrderStatus)
	}

	orders, err := h.orderService.ListAll(c.Request().Context(), status)
	if err != nil {
		return respondError(err)
	}

	return respond(c, http.StatusOK, orders)
}

// UpdateStatus godoc
// @Summary Transition an order's status
// @Tags orders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Order ID"
// @Param request body UpdateOrderStatusRequest true "New status"
// @Success 200 {object} Response{data=model.Order}
// @Failure 400 {object} Response
// @Failure 404 {object} Response
// @Router /orders/{id}/status [put]
func (h *OrderHandler) UpdateStatus(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	var req UpdateOrderStatusRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	order, err := h.orderService.UpdateStatus(c.Request().Context(), id, model.OrderStatus(req.Status))
	if err != nil {
		return respondError(err)
	}

	return respondMessage(c, http.StatusOK, "order status updated", order)
}

// Stats godoc
// @Summary Aggregate order statistics
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=model.OrderStats}
// @Failure 403 {object} Response
// @Router /orders/stats [get]
func (h *OrderHandler) Stats(c echo.Context) error {
	stats, err := h.orderService.Stats(c.Request().Context())
	if err != nil {
		return respondError(err)
	}

	return respond(c, http.StatusOK, stats)
}
