package billing

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/clinic/clinic/internal/platform/auth"
	"github.com/clinic/clinic/internal/platform/respond"
	"github.com/clinic/clinic/pkg/pagination"
)

type Handler struct {
	svc     *Service
	created prometheus.Counter
}

// NewHandler wires the billing routes. created may be nil when metrics are
// disabled.
func NewHandler(svc *Service, created prometheus.Counter) *Handler {
	return &Handler{svc: svc, created: created}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	g := api.Group("/invoices", auth.RequireRole(auth.RoleStaff))
	g.GET("", h.List)
	g.POST("", h.Create)
	g.GET("/:id", h.Get)
	g.PATCH("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
	g.PATCH("/:id/pay", h.Pay)
}

func (h *Handler) List(c echo.Context) error {
	pg := pagination.FromContext(c)
	var f ListFilter
	if id, err := uuid.Parse(c.QueryParam("patient_id")); err == nil {
		f.PatientID = id
	}
	f.Status = c.QueryParam("status")

	items, total, err := h.svc.List(c.Request().Context(), f, pg.Limit, pg.Offset)
	if err != nil {
		return respond.Error(err, http.StatusInternalServerError, "list invoices failed")
	}
	return respond.OK(c, http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

func (h *Handler) Create(c echo.Context) error {
	var in InvoiceInput
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	inv, err := h.svc.Create(c.Request().Context(), &in)
	if err != nil {
		return respond.Error(err, http.StatusInternalServerError, "create invoice failed")
	}
	if h.created != nil {
		h.created.Inc()
	}
	return respond.OK(c, http.StatusCreated, inv)
}

func (h *Handler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	inv, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return respond.Error(err, http.StatusNotFound, "invoice not found")
	}
	return respond.OK(c, http.StatusOK, inv)
}

func (h *Handler) Update(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var in InvoiceInput
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	inv, err := h.svc.Update(c.Request().Context(), id, &in)
	if err != nil {
		return respond.Error(err, http.StatusInternalServerError, "invoice not found")
	}
	return respond.OK(c, http.StatusOK, inv)
}

func (h *Handler) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := h.svc.Delete(c.Request().Context(), id); err != nil {
		return respond.Error(err, http.StatusInternalServerError, "invoice not found")
	}
	return respond.NoData(c, http.StatusOK)
}

func (h *Handler) Pay(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	inv, err := h.svc.Pay(c.Request().Context(), id)
	if err != nil {
		return respond.Error(err, http.StatusInternalServerError, "invoice not found")
	}
	return respond.OK(c, http.StatusOK, inv)
}
