package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ctxClaims extracts the session claims injected by the Auth middleware and
// performs a fast-fail check before any service call: both the principal id
// and role must be present, their presence proves the middleware ran.
func ctxClaims(c echo.Context) (principalID, role string, err error) {
	principalID, _ = c.Get("principal_id").(string)
	role, _ = c.Get("role").(string)
	if principalID == "" || role == "" {
		return "", "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return principalID, role, nil
}
