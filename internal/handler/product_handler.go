package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"firesafe/internal/model"
	"firesafe/internal/repository"
	"firesafe/internal/service"
)

// ProductHandler handles the product catalog endpoints.
type ProductHandler struct {
	productService service.ProductService
}

// NewProductHandler creates a new product handler.
func NewProductHandler(productService service.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// CreateProductRequest represents a new catalog entry.
type CreateProductRequest struct {
	Name        string          `json:"name" validate:"required"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price" validate:"required"`
	Category    string          `json:"category" validate:"required"`
	Image       string          `json:"image"`
	Images      []string        `json:"images"`
	Specs       []string        `json:"specs"`
	InStock     *bool           `json:"inStock"`
}

// UpdateProductRequest represents a partial catalog update.
type UpdateProductRequest struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	Category    *string          `json:"category"`
	Image       *string          `json:"image"`
	Images      []string         `json:"images"`
	Specs       []string         `json:"specs"`
	InStock     *bool            `json:"inStock"`
}

// List godoc
// @Summary List products
// @Tags products
// @Produce json
// @Param category query string false "Filter by category"
// @Param search query string false "Match against name and description"
// @Param inStock query bool false "Filter by stock flag"
// @Param sortBy query string false "Sort column (name, price, created_at)"
// @Param order query string false "Sort direction (asc, desc)"
// @Success 200 {object} Response{data=[]model.Product}
// @Router /products [get]
func (h *ProductHandler) List(c echo.Context) error {
	filter := repository.ProductFilter{
		Category: c.QueryParam("category"),
		Search:   c.QueryParam("search"),
		SortBy:   c.QueryParam("sortBy"),
		Order:    c.QueryParam("order"),
	}
	if raw := c.QueryParam("inStock"); raw != "" {
		inStock := raw == "true" || raw == "1"
		filter.InStock = &inStock
	}

	products, err := h.productService.List(c.Request().Context(), filter)
	if err != nil {
		return respondError(err)
	}

	return respond(c, http.StatusOK, products)
}

// Get godoc
// @Summary Get a product by id
// @Tags products
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} Response{data=model.Product}
// @Failure 404 {object} Response
// @Router /products/{id} [get]
func (h *ProductHandler) Get(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	product, err := h.productService.Get(c.Request().Context(), id)
	if err != nil {
		return respondError(err)
	}

	return respond(c, http.StatusOK, product)
}

// Categories godoc
// @Summary List distinct product categories
// @Tags products
// @Produce json
// @Success 200 {object} Response{data=[]string}
// @Router /products/categories [get]
func (h *ProductHandler) Categories(c echo.Context) error {
	categories, err := h.productService.Categories(c.Request().Context())
	if err != nil {
		return respondError(err)
	}

	return respond(c, http.StatusOK, categories)
}

// Create godoc
// @Summary Create a product
// @Tags products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateProductRequest true "Product data"
// @Success 201 {object} Response{data=model.Product}
// @Failure 400 {object} Response
// @Failure 403 {object} Response
// @Router /products [post]
func (h *ProductHandler) Create(c echo.Context) error {
	var req CreateProductRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	inStock := true
	if req.InStock != nil {
		inStock = *req.InStock
	}

	product, err := h.productService.Create(c.Request().Context(), &model.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		Image:       req.Image,
		Images:      req.Images,
		Specs:       req.Specs,
		InStock:     inStock,
	})
	if err != nil {
		return respondError(err)
	}

	return respondMessage(c, http.StatusCreated, "product created", product)
}

// Update godoc
// @Summary Update a product
// @Tags products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Product ID"
// @Param request body UpdateProductRequest true "Fields to update"
// @Success 200 {object} Response{data=model.Product}
// @Failure 404 {object} Response
// @Router /products/{id} [put]
func (h *ProductHandler) Update(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	var req UpdateProductRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	product, err := h.productService.Update(c.Request().Context(), id, service.ProductUpdate{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		Image:       req.Image,
		Images:      req.Images,
		Specs:       req.Specs,
		InStock:     req.InStock,
	})
	if err != nil {
		return respondError(err)
	}

	return respondMessage(c, http.StatusOK, "product updated", product)
}

// Delete godoc
// @Summary Delete a product
// @Tags products
// @Produce json
// @Security BearerAuth
// @Param id path int true "Product ID"
// @Success 200 {object} Response
// @Failure 404 {object} Response
// @Router /products/{id} [delete]
func (h *ProductHandler) Delete(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.productService.Delete(c.Request().Context(), id); err != nil {
		return respondError(err)
	}

	return respondMessage(c, http.StatusOK, "product deleted", nil)
}
