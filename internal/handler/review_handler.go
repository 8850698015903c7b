package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"firesafe/internal/auth"
	"firesafe/internal/service"
)

// ReviewHandler handles product review endpoints.
type ReviewHandler struct {
	reviewService service.ReviewService
}

// NewReviewHandler creates a new review handler.
func NewReviewHandler(reviewService service.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService}
}

// CreateReviewRequest represents a new product review.
type CreateReviewRequest struct {
	ProductID uint   `json:"productId" validate:"required"`
	Rating    int    `json:"rating" validate:"required"`
	Comment   string `json:"comment"`
}

// UpdateReviewRequest represents a partial review update.
type UpdateReviewRequest struct {
	Rating  *int    `json:"rating"`
	Comment *string `json:"comment"`
}

// ListByProduct godoc
// @Summary List reviews for a product
// @Tags reviews
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} Response{data=[]model.ProductReview}
// @Failure 404 {object} Response
// @Router /reviews/product/{id} [get]
func (h *ReviewHandler) ListByProduct(c echo.Context) error {
	productID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	reviews, err := h.reviewService.ListByProduct(c.Request().Context(), productID)
	if err != nil {
		return respondError(err)
	}

	return respond(c, http.StatusOK, reviews)
}

// Create godoc
// @Summary Review a product
// @Tags reviews
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateReviewRequest true "Review data"
// @Success 201 {object} Response{data=model.Review}
// @Failure 400 {object} Response
// @Failure 404 {object} Response
// @Router /reviews [post]
func (h *ReviewHandler) Create(c echo.Context) error {
	claims, ok := auth.FromContext(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}

	var req CreateReviewRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	review, err := h.reviewService.Create(c.Request().Context(), claims.UserID, req.ProductID, req.Rating, req.Comment)
	if err != nil {
		return respondError(err)
	}

	return respondMessage(c, http.StatusCreated, "review added", review)
}

// Update godoc
// @Summary Update an own review
// @Tags reviews
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Review ID"
// @Param request body UpdateReviewRequest true "Fields to update"
// @Success 200 {object} Response{data=model.Review}
// @Failure 404 {object} Response
// @Router /reviews/{id} [put]
func (h *ReviewHandler) Update(c echo.Context) error {
	claims, ok := auth.FromContext(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	var req UpdateReviewRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	review, err := h.reviewService.Update(c.Request().Context(), id, claims.UserID, req.Rating, req.Comment)
	if err != nil {
		return respondError(err)
	}

	return respondMessage(c, http.StatusOK, "review updated", review)
}

// Delete godoc
// @Summary Delete a review
// @Tags reviews
// @Produce json
// @Security BearerAuth
// @Param id path int true "Review ID"
// @Success 200 {object} Response
// @Failure 404 {object} Response
// @Router /reviews/{id} [delete]
func (h *ReviewHandler) Delete(c echo.Context) error {
	claims, ok := auth.FromContext(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.reviewService.Delete(c.Request().Context(), id, claims.UserID, claims.IsAdmin); err != nil {
		return respondError(err)
	}

	return respondMessage(c, http.StatusOK, "review deleted", nil)
}
