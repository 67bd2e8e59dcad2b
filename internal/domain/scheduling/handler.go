package scheduling

import (
	"net/http"
	"time"

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

// NewHandler wires the appointment routes. created may be nil when metrics
// are disabled.
func NewHandler(svc *Service, created prometheus.Counter) *Handler {
	return &Handler{svc: svc, created: created}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	g := api.Group("/appointments", auth.RequireRole(auth.RoleStaff))
	g.GET("", h.List)
	g.POST("", h.Create)
	g.GET("/:id", h.Get)
	g.PATCH("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
}

func (h *Handler) filterFromQuery(c echo.Context) ListFilter {
	var f ListFilter
	if id, err := uuid.Parse(c.QueryParam("patient_id")); err == nil {
		f.PatientID = id
	}
	if id, err := uuid.Parse(c.QueryParam("staff_id")); err == nil {
		f.StaffID = id
	}
	f.Status = c.QueryParam("status")
	if t, err := time.Parse(time.RFC3339, c.QueryParam("from")); err == nil {
		f.From = t.UTC()
	}
	if t, err := time.Parse(time.RFC3339, c.QueryParam("to")); err == nil {
		f.To = t.UTC()
	}
	return f
}

func (h *Handler) List(c echo.Context) error {
	pg := pagination.FromContext(c)
	items, total, err := h.svc.List(c.Request().Context(), h.filterFromQuery(c), pg.Limit, pg.Offset)
	if err != nil {
		return respond.Error(err, http.StatusInternalServerError, "list appointments failed")
	}
	return respond.OK(c, http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

func (h *Handler) Create(c echo.Context) error {
	var a Appointment
	if err := c.Bind(&a); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.Create(c.Request().Context(), &a); err != nil {
		return respond.Error(err, http.StatusInternalServerError, "create appointment failed")
	}
	if h.created != nil {
		h.created.Inc()
	}
	return respond.OK(c, http.StatusCreated, a)
}

func (h *Handler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	a, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return respond.Error(err, http.StatusNotFound, "appointment not found")
	}
	return respond.OK(c, http.StatusOK, a)
}

func (h *Handler) Update(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	a, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return respond.Error(err, http.StatusNotFound, "appointment not found")
	}
	// Bind into the stored row so omitted fields keep their values
	if err := c.Bind(a); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	a.ID = id
	if err := h.svc.Update(c.Request().Context(), a); err != nil {
		return respond.Error(err, http.StatusInternalServerError, "update appointment failed")
	}
	return respond.OK(c, http.StatusOK, a)
}

func (h *Handler) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := h.svc.Delete(c.Request().Context(), id); err != nil {
		return respond.Error(err, http.StatusInternalServerError, "appointment not found")
	}
	return respond.NoData(c, http.StatusOK)
}
