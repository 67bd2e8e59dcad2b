package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

var testKey = []byte("0123456789abcdef0123456789abcdef")

func issueTestToken(t *testing.T, role string, patientID *uuid.UUID) string {
	t.Helper()
	issuer := NewTokenIssuer(testKey, "clinic", time.Hour)
	token, _, err := issuer.Issue(uuid.New(), role, patientID)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	return token
}

func runMiddleware(t *testing.T, header string) (*httptest.ResponseRecorder, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	mw := JWTMiddleware(JWTConfig{SigningKey: testKey, Issuer: "clinic"})
	handler := mw(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	return rec, handler(c)
}

func TestJWTMiddleware_ValidToken(t *testing.T) {
	token := issueTestToken(t, RoleStaff, nil)
	rec, err := runMiddleware(t, "Bearer "+token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}

func TestJWTMiddleware_MissingHeader(t *testing.T) {
	_, err := runMiddleware(t, "")
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestJWTMiddleware_MalformedHeader(t *testing.T) {
	_, err := runMiddleware(t, "Token abc")
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestJWTMiddleware_ExpiredToken(t *testing.T) {
	issuer := NewTokenIssuer(testKey, "clinic", -time.Minute)
	token, _, err := issuer.Issue(uuid.New(), RoleStaff, nil)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	_, err = runMiddleware(t, "Bearer "+token)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for expired token, got %v", err)
	}
}

func TestJWTMiddleware_WrongKey(t *testing.T) {
	issuer := NewTokenIssuer([]byte("another-signing-key-of-32-bytes!"), "clinic", time.Hour)
	token, _, err := issuer.Issue(uuid.New(), RoleStaff, nil)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	_, err = runMiddleware(t, "Bearer "+token)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for token signed with wrong key, got %v", err)
	}
}

func TestJWTMiddleware_PatientClaim(t *testing.T) {
	patientID := uuid.New()
	token := issueTestToken(t, RolePatient, &patientID)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	mw := JWTMiddleware(JWTConfig{SigningKey: testKey, Issuer: "clinic"})
	handler := mw(func(c echo.Context) error {
		p := PrincipalFromContext(c.Request().Context())
		if p == nil {
			t.Fatal("expected principal on context")
		}
		if p.Role != RolePatient {
			t.Errorf("expected role patient, got %s", p.Role)
		}
		if p.PatientID == nil || *p.PatientID != patientID {
			t.Errorf("expected patient id %s on principal", patientID)
		}
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
