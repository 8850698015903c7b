package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"firesafe/internal/service"
)

// PasswordResetHandler handles the password recovery flow.
type PasswordResetHandler struct {
	resetService service.PasswordResetService
}

// NewPasswordResetHandler creates a new password reset handler.
func NewPasswordResetHandler(resetService service.PasswordResetService) *PasswordResetHandler {
	return &PasswordResetHandler{resetService: resetService}
}

// RequestResetRequest asks for a reset link by email.
type RequestResetRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ValidateResetRequest checks a token without consuming it.
type ValidateResetRequest struct {
	Token string `json:"token" validate:"required"`
}

// PerformResetRequest consumes a token and sets the new password.
type PerformResetRequest struct {
	Token    string `json:"token" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Request godoc
// @Summary Request a password reset email
// @Tags password-reset
// @Accept json
// @Produce json
// @Param request body RequestResetRequest true "Account email"
// @Success 200 {object} Response
// @Failure 400 {object} Response
// @Router /password-reset/request [post]
func (h *PasswordResetHandler) Request(c echo.Context) error {
	var req RequestResetRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if err := h.resetService.Request(c.Request().Context(), req.Email); err != nil {
		return respondError(err)
	}

	// Same answer whether or not the email exists.
	return respondMessage(c, http.StatusOK, "if the email is registered, a reset link has been sent", nil)
}

// Validate godoc
// @Summary Check whether a reset token is still valid
// @Tags password-reset
// @Accept json
// @Produce json
// @Param request body ValidateResetRequest true "Reset token"
// @Success 200 {object} Response
// @Failure 400 {object} Response
// @Router /password-reset/validate [post]
func (h *PasswordResetHandler) Validate(c echo.Context) error {
	var req ValidateResetRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if err := h.resetService.Validate(c.Request().Context(), req.Token); err != nil {
		return respondError(err)
	}

	return respondMessage(c, http.StatusOK, "token is valid", nil)
}

// Reset godoc
// @Summary Set a new password with a reset token
// @Tags password-reset
// @Accept json
// @Produce json
// @Param request body PerformResetRequest true "Token and new password"
// @Success 200 {object} Response
// @Failure 400 {object} Response
// @Router /password-reset/reset [post]
func (h *PasswordResetHandler) Reset(c echo.Context) error {
	var req PerformResetRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if err := h.resetService.Reset(c.Request().Context(), req.Token, req.Password); err != nil {
		return respondError(err)
	}

	return respondMessage(c, http.StatusOK, "password updated", nil)
}
