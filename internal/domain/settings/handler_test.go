package settings

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
)

type mockRepo struct {
	row Settings
}

func (m *mockRepo) Get(_ context.Context) (*Settings, error) {
	cp := m.row
	return &cp, nil
}

func (m *mockRepo) Save(_ context.Context, s *Settings) error {
	m.row = *s
	m.row.UpdatedAt = time.Now().UTC()
	return nil
}

func newTestHandler() (*Handler, *mockRepo, *echo.Echo) {
	repo := &mockRepo{row: Settings{
		ClinicName:                 "Riverside Physio",
		Currency:                   "EUR",
		AppointmentDurationMinutes: 30,
	}}
	return NewHandler(NewService(repo)), repo, echo.New()
}

func TestHandlerUpdate_Partial(t *testing.T) {
	h, repo, e := newTestHandler()

	req := httptest.NewRequest(http.MethodPatch, "/api/settings", strings.NewReader(`{"currency":"USD"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Update(c); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if repo.row.Currency != "USD" {
		t.Errorf("Currency = %q, want USD", repo.row.Currency)
	}
	if repo.row.ClinicName != "Riverside Physio" {
		t.Error("clinic name should survive a partial update")
	}
}

func TestHandlerUpdate_Invalid(t *testing.T) {
	h, _, e := newTestHandler()

	req := httptest.NewRequest(http.MethodPatch, "/api/settings", strings.NewReader(`{"appointment_duration_minutes":-10}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.Update(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestHandlerGet(t *testing.T) {
	h, _, e := newTestHandler()

	req := httptest.NewRequest(http.MethodGet, "/api/settings", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Get(c); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Riverside Physio") {
		t.Error("response should carry the clinic name")
	}
}
