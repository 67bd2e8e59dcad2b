package settings

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
	api.GET("/settings", h.Get, auth.RequireRole(auth.RoleStaff))
	api.PATCH("/settings", h.Update, auth.RequireRole(auth.RoleAdmin))
}

func (h *Handler) Get(c echo.Context) error {
	s, err := h.svc.Get(c.Request().Context())
	if err != nil {
		return respond.Error(err, http.StatusInternalServerError, "settings not found")
	}
	return respond.OK(c, http.StatusOK, s)
}

func (h *Handler) Update(c echo.Context) error {
	s, err := h.svc.Get(c.Request().Context())
	if err != nil {
		return respond.Error(err, http.StatusInternalServerError, "settings not found")
	}
	// Bind into the stored row so omitted fields keep their values
	if err := c.Bind(s); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.Update(c.Request().Context(), s); err != nil {
		return respond.Error(err, http.StatusInternalServerError, "update settings failed")
	}
	return respond.OK(c, http.StatusOK, s)
}
