package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func requestWithRole(role string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	ctx := context.WithValue(req.Context(), RoleKey, role)
	req = req.WithContext(ctx)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestRequireRole_Allows(t *testing.T) {
	c, _ := requestWithRole("nurse")
	called := false
	h := RequireRole("nurse", "lab_technician")(func(c echo.Context) error {
		called = true
		return nil
	})
	if err := h(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !called {
		t.Error("expected handler to be called")
	}
}

func TestRequireRole_AdminBypasses(t *testing.T) {
	c, _ := requestWithRole("admin")
	h := RequireRole("doctor")(func(c echo.Context) error { return nil })
	if err := h(c); err != nil {
		t.Errorf("expected admin to pass, got %v", err)
	}
}

func TestRequireRole_Rejects(t *testing.T) {
	c, _ := requestWithRole("doctor")
	h := RequireRole("nurse")(func(c echo.Context) error { return nil })
	err := h(c)
	if err == nil {
		t.Fatal("expected forbidden error")
	}
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusForbidden {
		t.Errorf("expected 403, got %v", err)
	}
}

func TestRequireRole_MissingRole(t *testing.T) {
	c, _ := requestWithRole("")
	h := RequireRole("nurse")(func(c echo.Context) error { return nil })
	if err := h(c); err == nil {
		t.Error("expected forbidden error for empty role")
	}
}
