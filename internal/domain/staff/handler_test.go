package staff

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

func newTestHandler() (*Handler, *mockRepo, *echo.Echo) {
	repo := newMockRepo()
	return NewHandler(NewService(repo)), repo, echo.New()
}

func TestHandlerCreate(t *testing.T) {
	h, repo, e := newTestHandler()

	body := `{"name":"Dr. Chen","role":"physiotherapist"}`
	req := httptest.NewRequest(http.MethodPost, "/api/staff", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Create(c); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusCreated)
	}
	for _, s := range repo.items {
		if !s.Active {
			t.Error("new staff should default to active")
		}
	}
}

func TestHandlerUpdate_Partial(t *testing.T) {
	h, repo, e := newTestHandler()

	email := "chen@clinic.example"
	s := &Staff{Name: "Dr. Chen", Role: "physiotherapist", Email: &email, Active: true}
	if err := repo.Create(context.Background(), s); err != nil {
		t.Fatalf("seed: %v", err)
	}

	req := httptest.NewRequest(http.MethodPatch, "/", strings.NewReader(`{"role":"lead physiotherapist"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(s.ID.String())

	if err := h.Update(c); err != nil {
		t.Fatalf("Update: %v", err)
	}
	got := repo.items[s.ID]
	if got.Role != "lead physiotherapist" {
		t.Errorf("Role = %q", got.Role)
	}
	if got.Name != "Dr. Chen" || got.Email == nil {
		t.Error("untouched fields should survive a partial update")
	}
}

func TestHandlerGet_NotFound(t *testing.T) {
	h, _, e := newTestHandler()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(uuid.NewString())

	err := h.Get(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %v", err)
	}
}
