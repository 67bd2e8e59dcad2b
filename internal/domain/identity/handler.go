package identity

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/clinic/clinic/internal/platform/auth"
	"github.com/clinic/clinic/internal/platform/db"
	"github.com/clinic/clinic/internal/platform/respond"
)

type userInput struct {
	User
	Password string `json:"password"`
}

type Handler struct {
	svc    *Service
	logins *prometheus.CounterVec
}

// NewHandler wires the identity routes. logins may be nil when metrics are
// disabled.
func NewHandler(svc *Service, logins *prometheus.CounterVec) *Handler {
	return &Handler{svc: svc, logins: logins}
}

// RegisterPublic mounts the credential-exchange endpoints, which must sit
// outside the JWT middleware.
func (h *Handler) RegisterPublic(api *echo.Group) {
	api.POST("/admin/login", h.AdminLogin)
	api.POST("/patient/login", h.PatientLogin)
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/me", h.Me)
	api.POST("/users", h.CreateUser, auth.RequireRole(auth.RoleAdmin))
}

func (h *Handler) countLogin(outcome string) {
	if h.logins != nil {
		h.logins.WithLabelValues(outcome).Inc()
	}
}

func (h *Handler) login(c echo.Context, allowedRoles ...string) error {
	var creds Credentials
	if err := c.Bind(&creds); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if creds.Email == "" || creds.Password == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "email and password are required")
	}

	res, err := h.svc.Login(c.Request().Context(), creds, allowedRoles...)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			h.countLogin("failure")
			return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
		}
		h.countLogin("error")
		return echo.NewHTTPError(http.StatusInternalServerError, "login failed")
	}
	h.countLogin("success")
	return respond.OK(c, http.StatusOK, res)
}

func (h *Handler) AdminLogin(c echo.Context) error {
	return h.login(c, auth.RoleAdmin, auth.RoleStaff)
}

func (h *Handler) PatientLogin(c echo.Context) error {
	return h.login(c, auth.RolePatient)
}

// Me returns the account behind the presented token.
func (h *Handler) Me(c echo.Context) error {
	p := auth.PrincipalFromContext(c.Request().Context())
	if p == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}
	u, err := h.svc.Get(c.Request().Context(), p.UserID)
	if err != nil {
		return respond.Error(err, http.StatusInternalServerError, "account not found")
	}
	return respond.OK(c, http.StatusOK, u)
}

func (h *Handler) CreateUser(c echo.Context) error {
	var in userInput
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	u := in.User
	if err := h.svc.CreateUser(c.Request().Context(), &u, in.Password); err != nil {
		if db.IsUniqueViolation(err) {
			return echo.NewHTTPError(http.StatusConflict, "an account with this email already exists")
		}
		return respond.Error(err, http.StatusInternalServerError, "create account failed")
	}
	return respond.OK(c, http.StatusCreated, u)
}
