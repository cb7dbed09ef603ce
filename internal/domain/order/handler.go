package order

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

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
	g.POST("/orders", h.Create)
	g.GET("/orders/:id", h.Get)
	g.GET("/orders/:id/events", h.ListEvents)
	g.GET("/admissions/:id/orders", h.ListByAdmission)
	g.POST("/orders/:id/claim", h.Claim)
	g.POST("/orders/:id/release", h.Release)
	g.POST("/orders/:id/complete", h.Complete)
	g.POST("/orders/:id/discontinue", h.Discontinue)
}

// ActorFromContext builds the explicit actor every engine call takes from
// the identity the auth middleware stored on the request context.
func ActorFromContext(c echo.Context) (Actor, error) {
	ctx := c.Request().Context()
	id, err := uuid.Parse(auth.StaffIDFromContext(ctx))
	if err != nil {
		return Actor{}, echo.NewHTTPError(http.StatusUnauthorized, "missing or invalid staff identity")
	}
	return Actor{
		ID:         id,
		Role:       auth.RoleFromContext(ctx),
		Department: auth.DepartmentFromContext(ctx),
	}, nil
}

func orderID(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusBadRequest, "invalid order id")
	}
	return id, nil
}

type createRequest struct {
	AdmissionID         uuid.UUID `json:"admission_id"`
	OrderType           string    `json:"order_type"`
	OrderSubtype        string    `json:"order_subtype"`
	OrderDetails        *string   `json:"order_details"`
	Frequency           *string   `json:"frequency"`
	Duration            *string   `json:"duration"`
	SpecialInstructions *string   `json:"special_instructions"`
}

func (h *Handler) Create(c echo.Context) error {
	actor, err := ActorFromContext(c)
	if err != nil {
		return err
	}
	var req createRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	o, err := h.svc.Create(c.Request().Context(), actor, CreateInput{
		AdmissionID:         req.AdmissionID,
		OrderType:           req.OrderType,
		OrderSubtype:        req.OrderSubtype,
		OrderDetails:        req.OrderDetails,
		Frequency:           req.Frequency,
		Duration:            req.Duration,
		SpecialInstructions: req.SpecialInstructions,
	})
	if err != nil {
		return echo.NewHTTPError(errs.HTTPStatus(err), err.Error())
	}
	return c.JSON(http.StatusCreated, o)
}

func (h *Handler) Get(c echo.Context) error {
	id, err := orderID(c)
	if err != nil {
		return err
	}
	o, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(errs.HTTPStatus(err), err.Error())
	}
	return c.JSON(http.StatusOK, o)
}

func (h *Handler) ListByAdmission(c echo.Context) error {
	admissionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid admission id")
	}
	params := pagination.FromContext(c)
	items, total, err := h.svc.ListByAdmission(c.Request().Context(), admissionID, c.QueryParam("status"), params.Limit, params.Offset)
	if err != nil {
		return echo.NewHTTPError(errs.HTTPStatus(err), err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, params))
}

func (h *Handler) Claim(c echo.Context) error {
	actor, err := ActorFromContext(c)
	if err != nil {
		return err
	}
	id, err := orderID(c)
	if err != nil {
		return err
	}
	o, err := h.svc.Claim(c.Request().Context(), actor, id)
	if err != nil {
		return echo.NewHTTPError(errs.HTTPStatus(err), err.Error())
	}
	return c.JSON(http.StatusOK, o)
}

func (h *Handler) Release(c echo.Context) error {
	actor, err := ActorFromContext(c)
	if err != nil {
		return err
	}
	id, err := orderID(c)
	if err != nil {
		return err
	}
	o, err := h.svc.Release(c.Request().Context(), actor, id)
	if err != nil {
		return echo.NewHTTPError(errs.HTTPStatus(err), err.Error())
	}
	return c.JSON(http.StatusOK, o)
}

type completeRequest struct {
	CompletionNote *string `json:"completion_note"`
}

func (h *Handler) Complete(c echo.Context) error {
	actor, err := ActorFromContext(c)
	if err != nil {
		return err
	}
	id, err := orderID(c)
	if err != nil {
		return err
	}
	var req completeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	o, err := h.svc.Complete(c.Request().Context(), actor, id, req.CompletionNote)
	if err != nil {
		return echo.NewHTTPError(errs.HTTPStatus(err), err.Error())
	}
	return c.JSON(http.StatusOK, o)
}

type discontinueRequest struct {
	Reason string `json:"reason"`
}

func (h *Handler) Discontinue(c echo.Context) error {
	actor, err := ActorFromContext(c)
	if err != nil {
		return err
	}
	id, err := orderID(c)
	if err != nil {
		return err
	}
	var req discontinueRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	o, err := h.svc.Discontinue(c.Request().Context(), actor, id, req.Reason)
	if err != nil {
		return echo.NewHTTPError(errs.HTTPStatus(err), err.Error())
	}
	return c.JSON(http.StatusOK, o)
}

func (h *Handler) ListEvents(c echo.Context) error {
	id, err := orderID(c)
	if err != nil {
		return err
	}
	events, err := h.svc.ListEvents(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(errs.HTTPStatus(err), err.Error())
	}
	return c.JSON(http.StatusOK, events)
}
