package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/voyariestuff/tours-api/internal/api/middleware"
	"github.com/voyariestuff/tours-api/internal/core/domain"
)

type stubAuthService struct {
	registerClientFn func(ctx context.Context, name, email, password string) (*domain.Principal, error)
	registerAdminFn  func(ctx context.Context, name, email, password string) (*domain.Principal, error)
	loginFn          func(ctx context.Context, email, password string) (string, *domain.Principal, error)
}

func (s *stubAuthService) RegisterClient(ctx context.Context, name, email, password string) (*domain.Principal, error) {
	return s.registerClientFn(ctx, name, email, password)
}

func (s *stubAuthService) RegisterAdmin(ctx context.Context, name, email, password string) (*domain.Principal, error) {
	return s.registerAdminFn(ctx, name, email, password)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (string, *domain.Principal, error) {
	return s.loginFn(ctx, email, password)
}

func newAuthContext(t *testing.T, method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func sessionCookieFrom(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == middleware.SessionCookie {
			return cookie
		}
	}
	t.Fatalf("session cookie not set")
	return nil
}

func TestAuthHandler_Login_Success(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, email, password string) (string, *domain.Principal, error) {
			if email != "alice@example.com" || password != "secret1" {
				t.Fatalf("unexpected args: %s %s", email, password)
			}
			return "token123", &domain.Principal{ID: "p1", Name: "Alice", Email: email, Role: domain.RoleClient}, nil
		},
	}
	handler := NewAuthHandler(stub, time.Hour, false)

	c, rec := newAuthContext(t, http.MethodPost, "/api/login",
		`{"email":"alice@example.com","password":"secret1"}`)

	if err := handler.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	cookie := sessionCookieFrom(t, rec)
	if cookie.Value != "token123" {
		t.Fatalf("unexpected cookie value: %q", cookie.Value)
	}
	if !cookie.HttpOnly {
		t.Fatalf("session cookie must be http-only")
	}
	if cookie.MaxAge != int(time.Hour.Seconds()) {
		t.Fatalf("unexpected cookie max-age: %d", cookie.MaxAge)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["role"] != domain.RoleClient {
		t.Fatalf("unexpected role: %v", resp["role"])
	}
	user, ok := resp["user"].(map[string]any)
	if !ok {
		t.Fatalf("expected user in response")
	}
	if user["id"] != "p1" || user["name"] != "Alice" {
		t.Fatalf("unexpected user payload: %+v", user)
	}
	if _, leaked := user["password_hash"]; leaked {
		t.Fatalf("password hash leaked in response")
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, email, password string) (string, *domain.Principal, error) {
			return "", nil, domain.ErrInvalidCredentials
		},
	}
	handler := NewAuthHandler(stub, time.Hour, false)

	c, rec := newAuthContext(t, http.MethodPost, "/api/login",
		`{"email":"alice@example.com","password":"wrong-1"}`)

	err := handler.Login(c)
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == middleware.SessionCookie {
			t.Fatalf("no session cookie should be set on failed login")
		}
	}
}

func TestAuthHandler_Login_InvalidPayload(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, email, password string) (string, *domain.Principal, error) {
			t.Fatalf("should not be called")
			return "", nil, nil
		},
	}
	handler := NewAuthHandler(stub, time.Hour, false)

	cases := []struct {
		name string
		body string
	}{
		{"not json", "not-json"},
		{"bad email", `{"email":"not-an-email","password":"secret1"}`},
		{"missing password", `{"email":"alice@example.com"}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, _ := newAuthContext(t, http.MethodPost, "/api/login", tc.body)

			err := handler.Login(c)
			var httpErr *echo.HTTPError
			if !errors.As(err, &httpErr) || httpErr.Code != http.StatusBadRequest {
				t.Fatalf("expected 400 error, got %v", err)
			}
		})
	}
}

func TestAuthHandler_RegisterClient_Success(t *testing.T) {
	stub := &stubAuthService{
		registerClientFn: func(ctx context.Context, name, email, password string) (*domain.Principal, error) {
			if name != "Alice" || email != "alice@example.com" {
				t.Fatalf("unexpected args: %s %s", name, email)
			}
			return &domain.Principal{ID: "p1", Name: name, Email: email, Role: domain.RoleClient}, nil
		},
	}
	handler := NewAuthHandler(stub, time.Hour, false)

	c, rec := newAuthContext(t, http.MethodPost, "/api/register-client",
		`{"name":"Alice","email":"alice@example.com","password":"secret1"}`)

	if err := handler.RegisterClient(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	user, ok := resp["user"].(map[string]any)
	if !ok {
		t.Fatalf("expected user in response")
	}
	if user["id"] != "p1" || user["email"] != "alice@example.com" {
		t.Fatalf("unexpected user payload: %+v", user)
	}
}

func TestAuthHandler_RegisterClient_Duplicate(t *testing.T) {
	stub := &stubAuthService{
		registerClientFn: func(ctx context.Context, name, email, password string) (*domain.Principal, error) {
			return nil, domain.ErrPrincipalExists
		},
	}
	handler := NewAuthHandler(stub, time.Hour, false)

	c, _ := newAuthContext(t, http.MethodPost, "/api/register-client",
		`{"name":"Alice","email":"alice@example.com","password":"secret1"}`)

	err := handler.RegisterClient(c)
	if !errors.Is(err, domain.ErrPrincipalExists) {
		t.Fatalf("expected ErrPrincipalExists, got %v", err)
	}
}

func TestAuthHandler_RegisterAdmin_DomainRequired(t *testing.T) {
	stub := &stubAuthService{
		registerAdminFn: func(ctx context.Context, name, email, password string) (*domain.Principal, error) {
			return nil, domain.ErrAdminDomainRequired
		},
	}
	handler := NewAuthHandler(stub, time.Hour, false)

	c, _ := newAuthContext(t, http.MethodPost, "/api/register-admin",
		`{"name":"Eve","email":"eve@example.com","password":"secret1"}`)

	err := handler.RegisterAdmin(c)
	if !errors.Is(err, domain.ErrAdminDomainRequired) {
		t.Fatalf("expected ErrAdminDomainRequired, got %v", err)
	}
}

func TestAuthHandler_RegisterAdmin_Success(t *testing.T) {
	stub := &stubAuthService{
		registerAdminFn: func(ctx context.Context, name, email, password string) (*domain.Principal, error) {
			return &domain.Principal{ID: "a1", Name: name, Email: email, Role: domain.RoleAdmin}, nil
		},
	}
	handler := NewAuthHandler(stub, time.Hour, false)

	c, rec := newAuthContext(t, http.MethodPost, "/api/register-admin",
		`{"name":"Root","email":"root@voyariestuff.com","password":"secret1"}`)

	if err := handler.RegisterAdmin(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
}

func TestAuthHandler_Logout_ClearsCookie(t *testing.T) {
	handler := NewAuthHandler(&stubAuthService{}, time.Hour, false)

	c, rec := newAuthContext(t, http.MethodPost, "/api/logout", "")

	if err := handler.Logout(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	cookie := sessionCookieFrom(t, rec)
	if cookie.Value != "" || cookie.MaxAge != -1 {
		t.Fatalf("expected cleared cookie, got value=%q max-age=%d", cookie.Value, cookie.MaxAge)
	}
}

func TestAuthHandler_CheckAuth(t *testing.T) {
	handler := NewAuthHandler(&stubAuthService{}, time.Hour, false)

	c, rec := newAuthContext(t, http.MethodGet, "/api/check-auth", "")
	c.Set("principal_id", "p1")
	c.Set("role", domain.RoleClient)
	c.Set("name", "Alice")

	if err := handler.CheckAuth(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["id"] != "p1" || resp["role"] != domain.RoleClient || resp["name"] != "Alice" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestAuthHandler_CheckAuth_MissingClaims(t *testing.T) {
	handler := NewAuthHandler(&stubAuthService{}, time.Hour, false)

	c, _ := newAuthContext(t, http.MethodGet, "/api/check-auth", "")

	err := handler.CheckAuth(c)
	var httpErr *echo.HTTPError
	if !errors.As(err, &httpErr) || httpErr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 error, got %v", err)
	}
}
