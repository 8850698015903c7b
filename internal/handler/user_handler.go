package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"firesafe/internal/auth"
	"firesafe/internal/service"
)

// UserHandler handles the admin user-management endpoints.
type UserHandler struct {
	userService service.UserService
}

// NewUserHandler creates a new user handler.
func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// List godoc
// @Summary List all users
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=[]model.User}
// @Failure 403 {object} Response
// @Router /users [get]
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.userService.List(c.Request().Context())
	if err != nil {
		return respondError(err)
	}

	return respond(c, http.StatusOK, users)
}

// Get godoc
// @Summary Get a user with addresses and orders
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} Response{data=service.UserDetail}
// @Failure 404 {object} Response
// @Router /users/{id} [get]
func (h *UserHandler) Get(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	user, err := h.userService.Get(c.Request().Context(), id)
	if err != nil {
		return respondError(err)
	}

	return respond(c, http.StatusOK, user)
}

// ToggleAdmin godoc
// @Summary Flip a user's admin flag
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} Response{data=model.User}
// @Failure 400 {object} Response
// @Failure 404 {object} Response
// @Router /users/{id}/toggle-admin [put]
func (h *UserHandler) ToggleAdmin(c echo.Context) error {
	claims, ok := auth.FromContext(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	target, err := h.userService.Get(c.Request().Context(), id)
	if err != nil {
		return respondError(err)
	}

	user, err := h.userService.SetAdmin(c.Request().Context(), claims.UserID, id, !target.IsAdmin)
	if err != nil {
		return respondError(err)
	}

	return respondMessage(c, http.StatusOK, "admin flag updated", user)
}

// Delete godoc
// @Summary Delete a user
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} Response
// @Failure 400 {object} Response
// @Failure 404 {object} Response
// @Router /users/{id} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	claims, ok := auth.FromContext(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.userService.Delete(c.Request().Context(), claims.UserID, id); err != nil {
		return respondError(err)
	}

	return respondMessage(c, http.StatusOK, "user deleted", nil)
}

// Stats godoc
// @Summary Aggregate user statistics
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=model.UserStats}
// @Failure 403 {object} Response
// @Router /users/stats [get]
func (h *UserHandler) Stats(c echo.Context) error {
	stats, err := h.userService.Stats(c.Request().Context())
	if err != nil {
		return respondError(err)
	}

	return respond(c, http.StatusOK, stats)
}
