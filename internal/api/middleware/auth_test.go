package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/glowdesk/booking-system/internal/core/domain"
	"github.com/glowdesk/booking-system/internal/core/service"
)

func issueToken(t *testing.T, secret string) string {
	t.Helper()
	token, err := service.NewTokenService(secret, time.Hour).Issue(&domain.User{ID: "u1", Role: domain.RoleAdmin})
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	return token
}

func runAuth(t *testing.T, authHeader string) (*httptest.ResponseRecorder, echo.Context, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/dashboard/stats", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	mw := Auth(service.NewTokenService("secret", time.Hour))
	next := func(c echo.Context) error { return c.NoContent(http.StatusOK) }
	err := mw(next)(c)
	return rec, c, err
}

func TestAuth_ValidToken(t *testing.T) {
	token := issueToken(t, "secret")

	rec, c, err := runAuth(t, "Bearer "+token)
	if err != nil {
		t.Fatalf("expected request to pass, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got, _ := c.Get("user_id").(string); got != "u1" {
		t.Fatalf("expected user_id claim on context, got %q", got)
	}
	if got, _ := c.Get("role").(string); got != domain.RoleAdmin {
		t.Fatalf("expected role claim on context, got %q", got)
	}
}

func TestAuth_SchemeIsCaseInsensitive(t *testing.T) {
	token := issueToken(t, "secret")

	if _, _, err := runAuth(t, "bearer "+token); err != nil {
		t.Fatalf("lowercase scheme must be accepted, got %v", err)
	}
}

func TestAuth_MissingHeader(t *testing.T) {
	_, _, err := runAuth(t, "")

	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestAuth_BadScheme(t *testing.T) {
	token := issueToken(t, "secret")

	_, _, err := runAuth(t, "Basic "+token)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestAuth_InvalidToken(t *testing.T) {
	_, _, err := runAuth(t, "Bearer not-a-token")

	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestAuth_WrongSecret(t *testing.T) {
	token := issueToken(t, "other-secret")

	_, _, err := runAuth(t, "Bearer "+token)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}
