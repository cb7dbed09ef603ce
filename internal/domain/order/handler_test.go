package order

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/careward/careward/internal/platform/auth"
)

// asActor stores the actor's identity on the request context the way the
// auth middleware does in production.
func asActor(req *http.Request, a Actor) *http.Request {
	ctx := req.Context()
	ctx = context.WithValue(ctx, auth.StaffIDKey, a.ID.String())
	ctx = context.WithValue(ctx, auth.RoleKey, a.Role)
	ctx = context.WithValue(ctx, auth.DepartmentKey, a.Department)
	return req.WithContext(ctx)
}

func newTestServer(f *fixture) *echo.Echo {
	e := echo.New()
	NewHandler(f.svc).RegisterRoutes(e.Group("/api/v1"))
	return e
}

func TestCreateOrderEndpoint(t *testing.T) {
	f := newFixture()
	e := newTestServer(f)

	body := `{"admission_id":"` + f.admissionID.String() + `","order_type":"medication","order_details":"paracetamol 500mg","frequency":"q8h"}`
	req := asActor(httptest.NewRequest(http.MethodPost, "/api/v1/orders", strings.NewReader(body)), f.doctor)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var o ClinicalOrder
	if err := json.Unmarshal(rec.Body.Bytes(), &o); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if o.Status != StatusActive || o.OrderedBy != f.doctor.ID {
		t.Fatalf("unexpected order: %+v", o)
	}
}

func TestCreateOrderEndpointForbidden(t *testing.T) {
	f := newFixture()
	e := newTestServer(f)

	body := `{"admission_id":"` + f.admissionID.String() + `","order_type":"medication","order_details":"x"}`
	req := asActor(httptest.NewRequest(http.MethodPost, "/api/v1/orders", strings.NewReader(body)), f.nurse)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestClaimEndpointConflict(t *testing.T) {
	f := newFixture()
	e := newTestServer(f)
	o := f.mustCreate(t, CreateInput{OrderType: TypeLabTest, OrderDetails: strptr("CBC")})

	claim := func(a Actor) int {
		req := asActor(httptest.NewRequest(http.MethodPost, "/api/v1/orders/"+o.ID.String()+"/claim", nil), a)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		return rec.Code
	}

	if code := claim(f.nurse); code != http.StatusOK {
		t.Fatalf("first claim: expected 200, got %d", code)
	}
	if code := claim(f.nurse2); code != http.StatusConflict {
		t.Fatalf("second claim: expected 409, got %d", code)
	}
}

func TestCompleteEndpoint(t *testing.T) {
	f := newFixture()
	e := newTestServer(f)
	ctx := context.Background()
	o := f.mustCreate(t, CreateInput{OrderType: TypeDiet, OrderDetails: strptr("soft diet")})
	if _, err := f.svc.Claim(ctx, f.nurse, o.ID); err != nil {
		t.Fatalf("claim: %v", err)
	}

	body := `{"completion_note":"served"}`
	req := asActor(httptest.NewRequest(http.MethodPost, "/api/v1/orders/"+o.ID.String()+"/complete", strings.NewReader(body)), f.nurse)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var got ClinicalOrder
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if got.Status != StatusCompleted || got.CompletionNote == nil || *got.CompletionNote != "served" {
		t.Fatalf("unexpected completed order: %+v", got)
	}
}

func TestGetOrderEndpointNotFound(t *testing.T) {
	f := newFixture()
	e := newTestServer(f)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders/6f1a2d9e-0000-0000-0000-000000000000", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v1/orders/not-a-uuid", nil)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed id, got %d", rec.Code)
	}
}

func TestListOrdersEndpoint(t *testing.T) {
	f := newFixture()
	e := newTestServer(f)
	f.mustCreate(t, CreateInput{OrderType: TypeMedication, OrderDetails: strptr("a")})
	f.mustCreate(t, CreateInput{OrderType: TypeMonitoring, OrderDetails: strptr("b")})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admissions/"+f.admissionID.String()+"/orders", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp struct {
		Total int `json:"total"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Total != 2 {
		t.Fatalf("expected 2 orders, got %d", resp.Total)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v1/admissions/"+f.admissionID.String()+"/orders?status=bogus", nil)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad status filter, got %d", rec.Code)
	}
}
