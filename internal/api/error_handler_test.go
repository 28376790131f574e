package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/voyariestuff/tours-api/internal/core/domain"
)

func resolve(t *testing.T, err error) (int, string) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewHTTPErrorHandler(zerolog.Nop())(err, c)

	var resp errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json body: %v", err)
	}
	return rec.Code, resp.Error
}

func TestHTTPErrorHandler_DomainErrors(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
	}{
		{"invalid outcome", domain.ErrInvalidOutcome, http.StatusBadRequest},
		{"invalid rating", domain.ErrInvalidRating, http.StatusBadRequest},
		{"no updatable fields", domain.ErrNoUpdatableFields, http.StatusBadRequest},
		{"admin domain required", domain.ErrAdminDomainRequired, http.StatusBadRequest},
		{"client domain reserved", domain.ErrClientDomainReserved, http.StatusBadRequest},
		{"invalid credentials", domain.ErrInvalidCredentials, http.StatusUnauthorized},
		{"forbidden", domain.ErrForbidden, http.StatusForbidden},
		{"tour not found", domain.ErrTourNotFound, http.StatusNotFound},
		{"request not found", domain.ErrRequestNotFound, http.StatusNotFound},
		{"principal not found", domain.ErrPrincipalNotFound, http.StatusNotFound},
		{"principal exists", domain.ErrPrincipalExists, http.StatusConflict},
		{"duplicate request", domain.ErrDuplicateRequest, http.StatusConflict},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			code, msg := resolve(t, tc.err)
			if code != tc.code {
				t.Fatalf("expected %d, got %d", tc.code, code)
			}
			if msg == "" {
				t.Fatalf("expected an error message")
			}
		})
	}
}

func TestHTTPErrorHandler_EchoErrorsPassThrough(t *testing.T) {
	code, msg := resolve(t, echo.NewHTTPError(http.StatusTeapot, "short and stout"))
	if code != http.StatusTeapot {
		t.Fatalf("expected 418, got %d", code)
	}
	if msg != "short and stout" {
		t.Fatalf("unexpected message: %q", msg)
	}
}

func TestHTTPErrorHandler_UnknownErrorIsGeneric(t *testing.T) {
	code, msg := resolve(t, errors.New("mongo: connection reset"))
	if code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", code)
	}
	if msg != "internal server error" {
		t.Fatalf("internal details leaked: %q", msg)
	}
}

func TestHTTPErrorHandler_WrappedDomainError(t *testing.T) {
	wrapped := errors.Join(errors.New("transition r1"), domain.ErrRequestNotFound)
	code, _ := resolve(t, wrapped)
	if code != http.StatusNotFound {
		t.Fatalf("expected 404 for wrapped domain error, got %d", code)
	}
}
