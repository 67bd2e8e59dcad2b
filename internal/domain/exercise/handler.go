package exercise

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/clinic/clinic/internal/platform/auth"
	"github.com/clinic/clinic/internal/platform/respond"
	"github.com/clinic/clinic/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	g := api.Group("/exercises", auth.RequireRole(auth.RoleStaff))
	g.GET("", h.List)
	g.POST("", h.Create)
	g.GET("/:id", h.Get)
	g.PATCH("/:id", h.Update)
	g.DELETE("/:id", h.Delete)

	staffOnly := auth.RequireRole(auth.RoleStaff)
	api.GET("/patients/:id/exercises", h.ListAssignments, staffOnly)
	api.POST("/patients/:id/exercises", h.Assign, staffOnly)
	api.PATCH("/assigned-exercises/:id/complete", h.Complete, auth.RequireRole(auth.RoleStaff, auth.RolePatient))
}

func (h *Handler) List(c echo.Context) error {
	pg := pagination.FromContext(c)
	items, total, err := h.svc.List(c.Request().Context(), c.QueryParam("q"), pg.Limit, pg.Offset)
	if err != nil {
		return respond.Error(err, http.StatusInternalServerError, "list exercises failed")
	}
	return respond.OK(c, http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

func (h *Handler) Create(c echo.Context) error {
	var e Exercise
	if err := c.Bind(&e); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.Create(c.Request().Context(), &e); err != nil {
		return respond.Error(err, http.StatusInternalServerError, "create exercise failed")
	}
	return respond.OK(c, http.StatusCreated, e)
}

func (h *Handler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	e, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return respond.Error(err, http.StatusNotFound, "exercise not found")
	}
	return respond.OK(c, http.StatusOK, e)
}

func (h *Handler) Update(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	e, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return respond.Error(err, http.StatusNotFound, "exercise not found")
	}
	// Bind into the stored row so omitted fields keep their values
	if err := c.Bind(e); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	e.ID = id
	if err := h.svc.Update(c.Request().Context(), e); err != nil {
		return respond.Error(err, http.StatusInternalServerError, "update exercise failed")
	}
	return respond.OK(c, http.StatusOK, e)
}

func (h *Handler) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := h.svc.Delete(c.Request().Context(), id); err != nil {
		return respond.Error(err, http.StatusInternalServerError, "exercise not found")
	}
	return respond.NoData(c, http.StatusOK)
}

func (h *Handler) ListAssignments(c echo.Context) error {
	patientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	items, err := h.svc.ListForPatient(c.Request().Context(), patientID, c.QueryParam("active") == "true")
	if err != nil {
		return respond.Error(err, http.StatusInternalServerError, "list assigned exercises failed")
	}
	return respond.OK(c, http.StatusOK, items)
}

func (h *Handler) Assign(c echo.Context) error {
	patientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var a AssignedExercise
	if err := c.Bind(&a); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	a.PatientID = patientID
	if err := h.svc.Assign(c.Request().Context(), &a); err != nil {
		return respond.Error(err, http.StatusInternalServerError, "assign exercise failed")
	}
	return respond.OK(c, http.StatusCreated, a)
}

// Complete marks today's session done. A patient may only complete their
// own assignment.
func (h *Handler) Complete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	a, err := h.svc.GetAssignment(c.Request().Context(), id)
	if err != nil {
		return respond.Error(err, http.StatusNotFound, "assigned exercise not found")
	}
	if p := auth.PrincipalFromContext(c.Request().Context()); p != nil && p.Role == auth.RolePatient {
		if p.PatientID == nil || *p.PatientID != a.PatientID {
			return echo.NewHTTPError(http.StatusForbidden, "forbidden")
		}
	}
	a, err = h.svc.Complete(c.Request().Context(), id)
	if err != nil {
		return respond.Error(err, http.StatusInternalServerError, "complete exercise failed")
	}
	return respond.OK(c, http.StatusOK, a)
}
