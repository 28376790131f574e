package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/voyariestuff/tours-api/internal/api/metrics"
	"github.com/voyariestuff/tours-api/internal/core/ports"
)

// ReviewHandler handles review listing and submission.
type ReviewHandler struct {
	service ports.ReviewService
}

func NewReviewHandler(service ports.ReviewService) *ReviewHandler {
	return &ReviewHandler{service: service}
}

// ListByTour handles GET /api/tours/:id/reviews (public), newest first.
//
// @Summary      List reviews for a tour
// @Tags         reviews
// @Produce      json
// @Param        id  path  string  true  "Tour id"
// @Success      200  {array}  domain.Review
// @Router       /api/tours/{id}/reviews [get]
func (h *ReviewHandler) ListByTour(c echo.Context) error {
	reviews, err := h.service.ListByTour(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, reviews)
}

type createReviewRequest struct {
	Rating int    `json:"rating" validate:"required,min=1,max=5"`
	Text   string `json:"text"`
}

// Submit handles POST /api/tours/:id/reviews (authenticated). The tour's
// derived rating is recomputed in the background after the insert.
//
// @Summary      Submit a review
// @Tags         reviews
// @Accept       json
// @Produce      json
// @Security     CookieAuth
// @Param        id    path      string               true  "Tour id"
// @Param        body  body      createReviewRequest  true  "Review"
// @Success      201   {object}  domain.Review
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/tours/{id}/reviews [post]
func (h *ReviewHandler) Submit(c echo.Context) error {
	principalID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req createReviewRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	created, err := h.service.Submit(c.Request().Context(), c.Param("id"), principalID, req.Rating, req.Text)
	if err != nil {
		return err
	}
	metrics.ReviewsCreatedTotal.WithLabelValues(strconv.Itoa(req.Rating)).Inc()

	return c.JSON(http.StatusCreated, created)
}
