package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/voyariestuff/tours-api/internal/api/metrics"
	"github.com/voyariestuff/tours-api/internal/api/middleware"
	"github.com/voyariestuff/tours-api/internal/core/domain"
	"github.com/voyariestuff/tours-api/internal/core/ports"
)

// AuthHandler handles login, registration, logout and the auth probe.
// Session tokens travel in an HTTP-only SameSite=Lax cookie so page scripts
// cannot read them; bearer headers are accepted too for API clients.
type AuthHandler struct {
	authService  ports.AuthService
	cookieTTL    time.Duration
	cookieSecure bool
}

func NewAuthHandler(authService ports.AuthService, cookieTTL time.Duration, cookieSecure bool) *AuthHandler {
	return &AuthHandler{authService: authService, cookieTTL: cookieTTL, cookieSecure: cookieSecure}
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type registerRequest struct {
	Name     string `json:"name"     validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type userResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type loginResponse struct {
	Role string       `json:"role"`
	User userResponse `json:"user"`
}

// Login authenticates a principal and sets the session cookie.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /api/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	token, p, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("unknown", "failure").Inc()
		return err
	}
	metrics.LoginsTotal.WithLabelValues(p.Role, "success").Inc()

	c.SetCookie(h.sessionCookie(token, h.cookieTTL))

	return c.JSON(http.StatusOK, loginResponse{
		Role: p.Role,
		User: userResponse{ID: p.ID, Name: p.Name, Email: p.Email},
	})
}

// RegisterClient creates a client account.
//
// @Summary      Register a client
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Registration details"
// @Success      201   {object}  map[string]userResponse
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /api/register-client [post]
func (h *AuthHandler) RegisterClient(c echo.Context) error {
	return h.register(c, domain.RoleClient)
}

// RegisterAdmin creates an admin account; the email must use the reserved
// admin domain.
//
// @Summary      Register an admin
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Registration details"
// @Success      201   {object}  map[string]userResponse
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /api/register-admin [post]
func (h *AuthHandler) RegisterAdmin(c echo.Context) error {
	return h.register(c, domain.RoleAdmin)
}

func (h *AuthHandler) register(c echo.Context, role string) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	register := h.authService.RegisterClient
	if role == domain.RoleAdmin {
		register = h.authService.RegisterAdmin
	}

	p, err := register(c.Request().Context(), req.Name, req.Email, req.Password)
	if err != nil {
		return err
	}
	metrics.RegistrationsTotal.WithLabelValues(role).Inc()

	return c.JSON(http.StatusCreated, map[string]userResponse{
		"user": {ID: p.ID, Name: p.Name, Email: p.Email},
	})
}

// Logout tells the caller to discard the session cookie. Tokens are
// stateless so there is nothing to revoke server-side.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /api/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	c.SetCookie(h.sessionCookie("", 0))
	return c.JSON(http.StatusOK, map[string]string{"message": "logged out"})
}

// CheckAuth echoes the authenticated principal's identity from its claims.
//
// @Summary      Check authentication
// @Tags         auth
// @Produce      json
// @Security     CookieAuth
// @Success      200  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Router       /api/check-auth [get]
func (h *AuthHandler) CheckAuth(c echo.Context) error {
	principalID, role, err := ctxClaims(c)
	if err != nil {
		return err
	}
	name, _ := c.Get("name").(string)

	return c.JSON(http.StatusOK, map[string]string{
		"id":   principalID,
		"role": role,
		"name": name,
	})
}

func (h *AuthHandler) sessionCookie(token string, ttl time.Duration) *http.Cookie {
	maxAge := int(ttl.Seconds())
	if token == "" {
		maxAge = -1
	}
	return &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	}
}
