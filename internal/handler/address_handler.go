package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"firesafe/internal/auth"
	"firesafe/internal/service"
)

// AddressHandler handles the caller's shipping address book.
type AddressHandler struct {
	addressService service.AddressService
}

// NewAddressHandler creates a new address handler.
func NewAddressHandler(addressService service.AddressService) *AddressHandler {
	return &AddressHandler{addressService: addressService}
}

// CreateAddressRequest represents a new shipping address.
type CreateAddressRequest struct {
	Name      string `json:"name" validate:"required"`
	Street    string `json:"street" validate:"required"`
	City      string `json:"city" validate:"required"`
	ZipCode   string `json:"zipCode"`
	Phone     string `json:"phone"`
	IsDefault bool   `json:"isDefault"`
}

// UpdateAddressRequest represents a partial address update.
type UpdateAddressRequest struct {
	Name      *string `json:"name"`
	Street    *string `json:"street"`
	City      *string `json:"city"`
	ZipCode   *string `json:"zipCode"`
	Phone     *string `json:"phone"`
	IsDefault *bool   `json:"isDefault"`
}

// List godoc
// @Summary List the caller's addresses
// @Tags addresses
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=[]model.Address}
// @Router /addresses [get]
func (h *AddressHandler) List(c echo.Context) error {
	claims, ok := auth.FromContext(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}

	addresses, err := h.addressService.List(c.Request().Context(), claims.UserID)
	if err != nil {
		return respondError(err)
	}

	return respond(c, http.StatusOK, addresses)
}

// Create godoc
// @Summary Add an address
// @Tags addresses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateAddressRequest true "Address data"
// @Success 201 {object} Response{data=model.Address}
// @Failure 400 {object} Response
// @Router /addresses [post]
func (h *AddressHandler) Create(c echo.Context) error {
	claims, ok := auth.FromContext(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}

	var req CreateAddressRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	address, err := h.addressService.Create(c.Request().Context(), claims.UserID, service.AddressInput{
		Name:      &req.Name,
		Street:    &req.Street,
		City:      &req.City,
		ZipCode:   &req.ZipCode,
		Phone:     &req.Phone,
		IsDefault: &req.IsDefault,
	})
	if err != nil {
		return respondError(err)
	}

	return respondMessage(c, http.StatusCreated, "address added", address)
}

// Update godoc
// @Summary Update an address
// @Tags addresses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Address ID"
// @Param request body UpdateAddressRequest true "Fields to update"
// @Success 200 {object} Response{data=model.Address}
// @Failure 404 {object} Response
// @Router /addresses/{id} [put]
func (h *AddressHandler) Update(c echo.Context) error {
	claims, ok := auth.FromContext(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	var req UpdateAddressRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	address, err := h.addressService.Update(c.Request().Context(), id, claims.UserID, service.AddressInput{
		Name:      req.Name,
		Street:    req.Street,
		City:      req.City,
		ZipCode:   req.ZipCode,
		Phone:     req.Phone,
		IsDefault: req.IsDefault,
	})
	if err != nil {
		return respondError(err)
	}

	return respondMessage(c, http.StatusOK, "address updated", address)
}

// Delete godoc
// @Summary Delete an address
// @Tags addresses
// @Produce json
// @Security BearerAuth
// @Param id path int true "Address ID"
// @Success 200 {object} Response
// @Failure 404 {object} Response
// @Router /addresses/{id} [delete]
func (h *AddressHandler) Delete(c echo.Context) error {
	claims, ok := auth.FromContext(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.addressService.Delete(c.Request().Context(), id, claims.UserID); err != nil {
		return respondError(err)
	}

	return respondMessage(c, http.StatusOK, "address deleted", nil)
}
