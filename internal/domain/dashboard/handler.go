package dashboard

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
	api.GET("/dashboard/advanced-stats", h.AdvancedStats, auth.RequireRole(auth.RoleStaff))
}

func (h *Handler) AdvancedStats(c echo.Context) error {
	stats, err := h.svc.Advanced(c.Request().Context())
	if err != nil {
		return respond.Error(err, http.StatusInternalServerError, "dashboard stats failed")
	}
	return respond.OK(c, http.StatusOK, stats)
}
