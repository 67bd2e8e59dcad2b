package billing

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

func newTestHandler() (*Handler, *mockRepo, *echo.Echo) {
	svc, repo := newTestService()
	return NewHandler(svc, nil), repo, echo.New()
}

func TestHandlerCreate(t *testing.T) {
	h, _, e := newTestHandler()

	body := `{"patient_id":"` + uuid.NewString() + `","discount_type":"percent","discount_value":10,` +
		`"items":[{"description":"Session","quantity":2,"unit_price":10}]}`
	req := httptest.NewRequest(http.MethodPost, "/api/invoices", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Create(c); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusCreated)
	}

	var env struct {
		Success bool    `json:"success"`
		Data    Invoice `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if env.Data.Subtotal != 20 || env.Data.DiscountAmount != 2 || env.Data.TotalAmount != 18 {
		t.Errorf("totals = %v/%v/%v, want 20/2/18",
			env.Data.Subtotal, env.Data.DiscountAmount, env.Data.TotalAmount)
	}
}

func TestHandlerCreate_MissingPatient(t *testing.T) {
	h, _, e := newTestHandler()

	req := httptest.NewRequest(http.MethodPost, "/api/invoices", strings.NewReader(`{"items":[]}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.Create(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestHandlerPay(t *testing.T) {
	h, repo, e := newTestHandler()

	inv := &Invoice{PatientID: uuid.New(), Status: StatusUnpaid, TotalAmount: 40}
	if err := repo.Create(context.Background(), inv); err != nil {
		t.Fatalf("seed: %v", err)
	}

	req := httptest.NewRequest(http.MethodPatch, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(inv.ID.String())

	if err := h.Pay(c); err != nil {
		t.Fatalf("Pay: %v", err)
	}
	if repo.invoices[inv.ID].Status != StatusPaid {
		t.Errorf("stored status = %q, want paid", repo.invoices[inv.ID].Status)
	}
}

func TestHandlerPay_NotFound(t *testing.T) {
	h, _, e := newTestHandler()

	req := httptest.NewRequest(http.MethodPatch, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(uuid.NewString())

	err := h.Pay(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %v", err)
	}
}
