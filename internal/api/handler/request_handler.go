package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/voyariestuff/tours-api/internal/api/metrics"
	"github.com/voyariestuff/tours-api/internal/core/domain"
	"github.com/voyariestuff/tours-api/internal/core/ports"
)

// RequestHandler handles booking request submission and the admin triage
// surface.
type RequestHandler struct {
	service ports.RequestService
}

func NewRequestHandler(service ports.RequestService) *RequestHandler {
	return &RequestHandler{service: service}
}

// Submit handles POST /api/tours/:id/request (authenticated).
//
// @Summary      Submit a booking request
// @Tags         requests
// @Produce      json
// @Security     CookieAuth
// @Param        id  path  string  true  "Tour id"
// @Success      201  {object}  domain.BookingRequest
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /api/tours/{id}/request [post]
func (h *RequestHandler) Submit(c echo.Context) error {
	principalID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	created, err := h.service.Submit(c.Request().Context(), c.Param("id"), principalID)
	if err != nil {
		return err
	}
	metrics.RequestsCreatedTotal.Inc()

	return c.JSON(http.StatusCreated, created)
}

// ListByTour handles GET /api/tours/:id/requests (authenticated).
//
// @Summary      List booking requests for a tour
// @Tags         requests
// @Produce      json
// @Security     CookieAuth
// @Param        id  path  string  true  "Tour id"
// @Success      200  {array}  domain.BookingRequest
// @Router       /api/tours/{id}/requests [get]
func (h *RequestHandler) ListByTour(c echo.Context) error {
	requests, err := h.service.ListByTour(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, requests)
}

// ListAll handles GET /api/admin/requests (admin only): every request joined
// with tour and client names, newest first.
//
// @Summary      List all booking requests
// @Tags         requests
// @Produce      json
// @Security     CookieAuth
// @Success      200  {array}  ports.BookingRequestDetail
// @Failure      403  {object}  map[string]string
// @Router       /api/admin/requests [get]
func (h *RequestHandler) ListAll(c echo.Context) error {
	requests, err := h.service.ListAll(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, requests)
}

// Get handles GET /api/admin/requests/:id (admin only).
//
// @Summary      Get a booking request
// @Tags         requests
// @Produce      json
// @Security     CookieAuth
// @Param        id  path  string  true  "Request id"
// @Success      200  {object}  ports.BookingRequestDetail
// @Failure      404  {object}  map[string]string
// @Router       /api/admin/requests/{id} [get]
func (h *RequestHandler) Get(c echo.Context) error {
	detail, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, detail)
}

type transitionRequest struct {
	Status string `json:"status" validate:"required"`
}

// Transition handles PATCH /api/admin/requests/:id (admin only). The body's
// status is the transition target: in_review advances, accepted/rejected
// resolve. Terminal requests are returned unchanged.
//
// @Summary      Transition a booking request
// @Tags         requests
// @Accept       json
// @Produce      json
// @Security     CookieAuth
// @Param        id    path      string             true  "Request id"
// @Param        body  body      transitionRequest  true  "Target status"
// @Success      200   {object}  domain.BookingRequest
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/admin/requests/{id} [patch]
func (h *RequestHandler) Transition(c echo.Context) error {
	var req transitionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	to, err := domain.ParseRequestStatus(req.Status)
	if err != nil {
		return err
	}

	updated, err := h.service.Transition(c.Request().Context(), c.Param("id"), to)
	if err != nil {
		return err
	}
	metrics.RequestTransitionsTotal.WithLabelValues(string(updated.Status)).Inc()

	return c.JSON(http.StatusOK, updated)
}
