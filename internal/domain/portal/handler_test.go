package portal

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/clinic/clinic/internal/platform/auth"
)

func TestHandlerDashboard(t *testing.T) {
	reads := newMockReads()
	pid := uuid.New()
	reads.invoices[pid] = []OpenInvoice{{ID: uuid.New(), TotalAmount: 50}}
	h := NewHandler(NewService(reads))
	e := echo.New()

	req := httptest.NewRequest(http.MethodGet, "/api/portal/dashboard", nil)
	ctx := auth.WithPrincipal(req.Context(), &auth.Principal{
		UserID: uuid.New(), Role: auth.RolePatient, PatientID: &pid,
	})
	req = req.WithContext(ctx)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Dashboard(c); err != nil {
		t.Fatalf("Dashboard: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
}

func TestHandlerDashboard_NoPatientLink(t *testing.T) {
	h := NewHandler(NewService(newMockReads()))
	e := echo.New()

	req := httptest.NewRequest(http.MethodGet, "/api/portal/dashboard", nil)
	ctx := auth.WithPrincipal(req.Context(), &auth.Principal{
		UserID: uuid.New(), Role: auth.RolePatient,
	})
	req = req.WithContext(ctx)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.Dashboard(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %v", err)
	}
}
