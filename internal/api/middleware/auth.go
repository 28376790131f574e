package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/voyariestuff/tours-api/internal/core/ports"
)

// SessionCookie is the name of the HTTP-only cookie carrying the session
// token. API clients may send the same token as a bearer header instead.
const SessionCookie = "token"

// Auth validates the session token and injects the principal's claims into
// the echo context. The specific validation failure (expired, malformed,
// signature) is logged at debug level but never revealed to the caller.
func Auth(sessions ports.SessionIssuer, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := tokenFromRequest(c)
			if token == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
			}

			claims, err := sessions.Validate(token)
			if err != nil {
				log.Debug().Err(err).Str("path", c.Path()).Msg("session validation failed")
				return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
			}

			c.Set("principal_id", claims.PrincipalID)
			c.Set("name", claims.Name)
			c.Set("role", claims.Role)

			return next(c)
		}
	}
}

func tokenFromRequest(c echo.Context) string {
	if cookie, err := c.Cookie(SessionCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return parts[1]
}
