package portal

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/clinic/clinic/internal/platform/auth"
	"github.com/clinic/clinic/internal/platform/respond"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/portal/dashboard", h.Dashboard, auth.RequireRole(auth.RolePatient))
}

// Dashboard serves the caller's own data; the patient id comes from the
// token, never from the request.
func (h *Handler) Dashboard(c echo.Context) error {
	p := auth.PrincipalFromContext(c.Request().Context())
	if p == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}
	if p.PatientID == nil {
		return echo.NewHTTPError(http.StatusForbidden, "account is not linked to a patient record")
	}
	d, err := h.svc.Dashboard(c.Request().Context(), *p.PatientID)
	if err != nil {
		return respond.Error(err, http.StatusInternalServerError, "portal dashboard failed")
	}
	return respond.OK(c, http.StatusOK, d)
}
