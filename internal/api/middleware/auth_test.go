package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/voyariestuff/tours-api/internal/core/domain"
	"github.com/voyariestuff/tours-api/internal/core/ports"
)

type stubSessions struct {
	claims map[string]*ports.SessionClaims
	err    error
}

func (s *stubSessions) Issue(principalID, name, role string) (string, error) {
	return "", nil
}

func (s *stubSessions) Validate(token string) (*ports.SessionClaims, error) {
	if s.err != nil {
		return nil, s.err
	}
	claims, ok := s.claims[token]
	if !ok {
		return nil, domain.ErrSessionMalformed
	}
	return claims, nil
}

func validSessions() *stubSessions {
	return &stubSessions{claims: map[string]*ports.SessionClaims{
		"good-token": {PrincipalID: "p1", Name: "Alice", Role: domain.RoleAdmin},
	}}
}

func TestAuthMiddleware_ValidCookie(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "good-token"})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	mw := Auth(validSessions(), zerolog.Nop())
	handler := mw(func(c echo.Context) error {
		called = true
		if c.Get("principal_id") != "p1" {
			t.Fatalf("principal_id not set")
		}
		if c.Get("name") != "Alice" {
			t.Fatalf("name not set")
		}
		if c.Get("role") != domain.RoleAdmin {
			t.Fatalf("role not set")
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuthMiddleware_ValidBearerHeader(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	mw := Auth(validSessions(), zerolog.Nop())
	handler := mw(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
}

func TestAuthMiddleware_CookieTakesPrecedence(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "good-token"})
	req.Header.Set("Authorization", "Bearer other-token")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	mw := Auth(validSessions(), zerolog.Nop())
	handler := mw(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected cookie token to win, got %d", rec.Code)
	}
}

func TestAuthMiddleware_MissingToken(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	mw := Auth(validSessions(), zerolog.Nop())
	handler := mw(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthMiddleware_InvalidHeaderFormat(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Token good-token")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	mw := Auth(validSessions(), zerolog.Nop())
	handler := mw(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthMiddleware_RejectedToken(t *testing.T) {
	for _, kind := range []error{
		domain.ErrSessionExpired,
		domain.ErrSessionMalformed,
		domain.ErrSessionSignature,
	} {
		e := echo.New()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer whatever")
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		mw := Auth(&stubSessions{err: kind}, zerolog.Nop())
		handler := mw(func(c echo.Context) error {
			t.Fatalf("should not reach next")
			return nil
		})

		if err := handler(c); err != nil {
			e.HTTPErrorHandler(err, c)
		}
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("%v: expected 401, got %d", kind, rec.Code)
		}
	}
}
