package patient

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/clinic/clinic/internal/platform/respond"
)

func newTestHandler() (*Handler, *mockRepo, *echo.Echo) {
	repo := newMockRepo()
	h := NewHandler(NewService(repo))
	return h, repo, echo.New()
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) respond.Envelope {
	t.Helper()
	var env respond.Envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return env
}

func TestHandlerCreate(t *testing.T) {
	h, repo, e := newTestHandler()

	body := `{"first_name":"Ada","last_name":"Lovelace","email":"ada@example.com"}`
	req := httptest.NewRequest(http.MethodPost, "/api/patients", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Create(c); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusCreated)
	}
	env := decodeEnvelope(t, rec)
	if !env.Success {
		t.Error("expected success envelope")
	}
	if len(repo.items) != 1 {
		t.Fatalf("stored %d patients, want 1", len(repo.items))
	}
}

func TestHandlerCreate_ValidationError(t *testing.T) {
	h, _, e := newTestHandler()

	req := httptest.NewRequest(http.MethodPost, "/api/patients", strings.NewReader(`{"email":"x@y.z"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.Create(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("expected *echo.HTTPError, got %v", err)
	}
	if httpErr.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", httpErr.Code, http.StatusBadRequest)
	}
}

// Storage failures must come back as an opaque server error, not a 400
// carrying the driver's message.
func TestHandlerCreate_RepoErrorIsServerError(t *testing.T) {
	h, repo, e := newTestHandler()
	repo.createErr = errors.New("failed to connect to `host=db`: dial error")

	body := `{"first_name":"Ada","last_name":"Lovelace"}`
	req := httptest.NewRequest(http.MethodPost, "/api/patients", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.Create(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("expected *echo.HTTPError, got %v", err)
	}
	if httpErr.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want %d", httpErr.Code, http.StatusInternalServerError)
	}
	if msg, _ := httpErr.Message.(string); strings.Contains(msg, "dial") {
		t.Errorf("driver detail leaked into response: %q", msg)
	}
}

func TestHandlerGet(t *testing.T) {
	h, repo, e := newTestHandler()

	p := &Patient{FirstName: "Grace", LastName: "Hopper"}
	if err := repo.Create(context.Background(), p); err != nil {
		t.Fatalf("seed: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(p.ID.String())

	if err := h.Get(c); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
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
	if !ok {
		t.Fatalf("expected *echo.HTTPError, got %v", err)
	}
	if httpErr.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", httpErr.Code, http.StatusNotFound)
	}
}

func TestHandlerUpdate_PartialKeepsFields(t *testing.T) {
	h, repo, e := newTestHandler()

	email := "mary@example.com"
	p := &Patient{FirstName: "Mary", LastName: "Seacole", Email: &email}
	if err := repo.Create(context.Background(), p); err != nil {
		t.Fatalf("seed: %v", err)
	}

	req := httptest.NewRequest(http.MethodPatch, "/", strings.NewReader(`{"last_name":"Grant"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(p.ID.String())

	if err := h.Update(c); err != nil {
		t.Fatalf("Update: %v", err)
	}
	got := repo.items[p.ID]
	if got.LastName != "Grant" {
		t.Errorf("LastName = %q, want %q", got.LastName, "Grant")
	}
	if got.FirstName != "Mary" {
		t.Errorf("FirstName = %q, want it untouched", got.FirstName)
	}
	if got.Email == nil || *got.Email != email {
		t.Error("email should survive a partial update")
	}
}

func TestHandlerDelete_Conflict(t *testing.T) {
	h, repo, e := newTestHandler()

	p := &Patient{FirstName: "Tim", LastName: "Berners-Lee", BirthDate: ptrTime(time.Date(1955, 6, 8, 0, 0, 0, 0, time.UTC))}
	if err := repo.Create(context.Background(), p); err != nil {
		t.Fatalf("seed: %v", err)
	}
	repo.referenced[p.ID] = true

	req := httptest.NewRequest(http.MethodDelete, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(p.ID.String())

	err := h.Delete(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("expected *echo.HTTPError, got %v", err)
	}
	if httpErr.Code != http.StatusConflict {
		t.Errorf("status = %d, want %d", httpErr.Code, http.StatusConflict)
	}
}

func ptrTime(t time.Time) *time.Time { return &t }
