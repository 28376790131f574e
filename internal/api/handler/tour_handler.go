package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/voyariestuff/tours-api/internal/core/ports"
)

// TourHandler handles catalog queries and the admin-only tour mutations.
type TourHandler struct {
	service ports.TourService
}

func NewTourHandler(service ports.TourService) *TourHandler {
	return &TourHandler{service: service}
}

// List handles GET /api/tours — the public catalog query.
//
// Query parameters: q (substring search across name, description and
// section), section (exact match), sort (date | new | popular), limit
// (clamped to [1,100]).
//
// @Summary      List tours
// @Tags         tours
// @Produce      json
// @Param        q        query  string  false  "Search text"
// @Param        section  query  string  false  "Section tag"
// @Param        sort     query  string  false  "Sort order: date, new or popular"
// @Param        limit    query  int     false  "Max results (1-100)"
// @Success      200  {array}  domain.Tour
// @Router       /api/tours [get]
func (h *TourHandler) List(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	sort := ports.SortDateAsc
	switch c.QueryParam("sort") {
	case "new":
		sort = ports.SortDateDesc
	case "popular":
		sort = ports.SortRatingDesc
	}

	tours, err := h.service.List(c.Request().Context(), ports.ListToursInput{
		Search:  c.QueryParam("q"),
		Section: c.QueryParam("section"),
		Sort:    sort,
		Limit:   limit,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, tours)
}

// Get handles GET /api/tours/:id.
//
// @Summary      Get a tour
// @Tags         tours
// @Produce      json
// @Param        id  path  string  true  "Tour id"
// @Success      200  {object}  domain.Tour
// @Failure      404  {object}  map[string]string
// @Router       /api/tours/{id} [get]
func (h *TourHandler) Get(c echo.Context) error {
	tour, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, tour)
}

type createTourRequest struct {
	Name        string `json:"name"        validate:"required"`
	Description string `json:"description"`
	Date        string `json:"date"        validate:"required"`
	CoverURL    string `json:"cover_url"`
	Section     string `json:"section"`
	Rating      int    `json:"rating"      validate:"omitempty,min=1,max=5"`
}

// Create handles POST /api/tours (admin only).
//
// @Summary      Create a tour
// @Tags         tours
// @Accept       json
// @Produce      json
// @Security     CookieAuth
// @Param        body  body      createTourRequest  true  "Tour fields"
// @Success      201   {object}  domain.Tour
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /api/tours [post]
func (h *TourHandler) Create(c echo.Context) error {
	var req createTourRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	date, err := parseDate(req.Date)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "date must be RFC 3339 or YYYY-MM-DD")
	}

	tour, err := h.service.Create(c.Request().Context(), ports.CreateTourInput{
		Name:        req.Name,
		Description: req.Description,
		Date:        date,
		CoverURL:    req.CoverURL,
		Section:     req.Section,
		Rating:      req.Rating,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, tour)
}

type updateTourRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Date        *string `json:"date"`
	CoverURL    *string `json:"cover_url"`
	Section     *string `json:"section"`
	Rating      *int    `json:"rating" validate:"omitempty,min=1,max=5"`
}

// Update handles PATCH /api/tours/:id (admin only). Unknown fields are
// ignored; a body with no updatable fields is a 400.
//
// @Summary      Update a tour
// @Tags         tours
// @Accept       json
// @Produce      json
// @Security     CookieAuth
// @Param        id    path      string             true  "Tour id"
// @Param        body  body      updateTourRequest  true  "Fields to update"
// @Success      200   {object}  domain.Tour
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/tours/{id} [patch]
func (h *TourHandler) Update(c echo.Context) error {
	var req updateTourRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	update := ports.TourUpdate{
		Name:        req.Name,
		Description: req.Description,
		CoverURL:    req.CoverURL,
		Section:     req.Section,
		Rating:      req.Rating,
	}
	if req.Date != nil {
		date, err := parseDate(*req.Date)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "date must be RFC 3339 or YYYY-MM-DD")
		}
		update.Date = &date
	}

	tour, err := h.service.Update(c.Request().Context(), c.Param("id"), update)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, tour)
}

// Delete handles DELETE /api/tours/:id (admin only).
//
// @Summary      Delete a tour
// @Tags         tours
// @Produce      json
// @Security     CookieAuth
// @Param        id  path  string  true  "Tour id"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/tours/{id} [delete]
func (h *TourHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "deleted"})
}

func parseDate(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", raw)
}
