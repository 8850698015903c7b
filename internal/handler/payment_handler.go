package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"firesafe/internal/auth"
	"firesafe/internal/service"
)

// PaymentHandler handles checkout sessions and gateway callbacks.
type PaymentHandler struct {
	paymentService service.PaymentService
}

// NewPaymentHandler creates a new payment handler.
func NewPaymentHandler(paymentService service.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// CheckoutRequest opens a hosted payment session for an order.
type CheckoutRequest struct {
	OrderID uint   `json:"orderId" validate:"required"`
	Email   string `json:"email" validate:"omitempty,email"`
}

// CallbackRequest is the gateway's result notification. Only the order
// reference is taken from it; the outcome is re-checked server side.
type CallbackRequest struct {
	OrderID string `json:"order_id" form:"order_id" query:"order_id" validate:"required"`
}

// Checkout godoc
// @Summary Open a 3-D Secure checkout session
// @Tags payment
// @Accept json
// @Produce json
// @Param request body CheckoutRequest true "Order to pay"
// @Success 200 {object} Response{data=service.CheckoutSession}
// @Failure 404 {object} Response
// @Failure 502 {object} Response
// @Router /payment/checkout [post]
func (h *PaymentHandler) Checkout(c echo.Context) error {
	var req CheckoutRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	email := req.Email
	if claims, ok := auth.FromContext(c); ok {
		email = claims.Email
	}

	session, err := h.paymentService.Checkout(c.Request().Context(), req.OrderID, email)
	if err != nil {
		return respondError(err)
	}

	return respond(c, http.StatusOK, session)
}

// Callback godoc
// @Summary 3-D Secure result callback
// @Tags payment
// @Accept json
// @Produce json
// @Param request body CallbackRequest true "Gateway notification"
// @Success 303 {string} string "redirect to success or failure page"
// @Router /payment/callback [post]
func (h *PaymentHandler) Callback(c echo.Context) error {
	var req CallbackRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	redirectURL := h.paymentService.HandleCallback(c.Request().Context(), req.OrderID)
	return c.Redirect(http.StatusSeeOther, redirectURL)
}
