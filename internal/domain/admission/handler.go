package admission

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/careward/careward/internal/domain/staff"
	"github.com/careward/careward/internal/pkg/errs"
	"github.com/careward/careward/internal/platform/auth"
	"github.com/careward/careward/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.POST("/admissions", h.Create, auth.RequireRole(staff.RoleDoctor))
	g.GET("/admissions", h.List)
	g.GET("/admissions/:id", h.Get)
	g.POST("/admissions/:id/discharge", h.Discharge, auth.RequireRole(staff.RoleDoctor))
}

type createRequest struct {
	PatientName      string    `json:"patient_name"`
	AssignedDoctorID uuid.UUID `json:"assigned_doctor_id"`
	Room             *string   `json:"room"`
	Bed              *string   `json:"bed"`
	AdmittedAt       time.Time `json:"admitted_at"`
}

func (h *Handler) Create(c echo.Context) error {
	var req createRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	a := &Admission{
		PatientName:      req.PatientName,
		AssignedDoctorID: req.AssignedDoctorID,
		Room:             req.Room,
		Bed:              req.Bed,
		AdmittedAt:       req.AdmittedAt,
	}
	if a.AdmittedAt.IsZero() {
		a.AdmittedAt = time.Now().UTC()
	}
	if err := h.svc.Create(c.Request().Context(), a); err != nil {
		return echo.NewHTTPError(errs.HTTPStatus(err), err.Error())
	}
	return c.JSON(http.StatusCreated, a)
}

func (h *Handler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid admission id")
	}
	a, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(errs.HTTPStatus(err), err.Error())
	}
	return c.JSON(http.StatusOK, a)
}

func (h *Handler) List(c echo.Context) error {
	params := pagination.FromContext(c)
	status := c.QueryParam("status")
	items, total, err := h.svc.List(c.Request().Context(), status, params.Limit, params.Offset)
	if err != nil {
		return echo.NewHTTPError(errs.HTTPStatus(err), err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, params))
}

func (h *Handler) Discharge(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid admission id")
	}
	if err := h.svc.Discharge(c.Request().Context(), id); err != nil {
		return echo.NewHTTPError(errs.HTTPStatus(err), err.Error())
	}
	a, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(errs.HTTPStatus(err), err.Error())
	}
	return c.JSON(http.StatusOK, a)
}
