package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

func runRoleCheck(t *testing.T, p *Principal, required ...string) error {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if p != nil {
		req = req.WithContext(WithPrincipal(req.Context(), p))
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := RequireRole(required...)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	return handler(c)
}

func TestRequireRole_Match(t *testing.T) {
	p := &Principal{UserID: uuid.New(), Role: RoleStaff}
	if err := runRoleCheck(t, p, RoleStaff); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestRequireRole_AdminWildcard(t *testing.T) {
	p := &Principal{UserID: uuid.New(), Role: RoleAdmin}
	if err := runRoleCheck(t, p, RolePatient); err != nil {
		t.Errorf("expected admin to pass any role check, got %v", err)
	}
}

func TestRequireRole_Forbidden(t *testing.T) {
	p := &Principal{UserID: uuid.New(), Role: RolePatient}
	err := runRoleCheck(t, p, RoleStaff)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %v", err)
	}
}

func TestRequireRole_NoPrincipal(t *testing.T) {
	err := runRoleCheck(t, nil, RoleStaff)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}
