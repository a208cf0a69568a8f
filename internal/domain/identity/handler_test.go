package identity

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/matricare/matricare/internal/platform/auth"
)

func TestHandlerRegister_Created(t *testing.T) {
	e := echo.New()
	body := `{"name":"Asha","mobile":"9111111111","password":"secret123","pregnancy_month":4}`
	req := httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := NewHandler(newTestService(newMockRepo()))
	if err := h.Register(c); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Errorf("status = %d, want 201", rec.Code)
	}

	var out struct {
		Token string `json:"token"`
		User  *User  `json:"user"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if out.Token == "" || out.User == nil {
		t.Fatal("expected token and user in response")
	}
	if strings.Contains(rec.Body.String(), "password") {
		t.Error("response must not leak the password hash")
	}
}

func TestHandlerRegister_DuplicateMobile(t *testing.T) {
	svc := newTestService(newMockRepo())
	if _, _, err := svc.Register(context.Background(), RegisterInput{
		Name: "Asha", Mobile: "9111111111", Password: "secret123",
	}); err != nil {
		t.Fatalf("seed user: %v", err)
	}

	e := echo.New()
	body := `{"name":"Bina","mobile":"9111111111","password":"other456"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := NewHandler(svc).Register(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for duplicate mobile, got %v", err)
	}
}

func TestHandlerLogin_InvalidCredentials(t *testing.T) {
	svc := newTestService(newMockRepo())
	if _, _, err := svc.Register(context.Background(), RegisterInput{
		Name: "Asha", Mobile: "9111111111", Password: "secret123",
	}); err != nil {
		t.Fatalf("seed user: %v", err)
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/auth/login",
		strings.NewReader(`{"mobile":"9111111111","password":"wrong"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := NewHandler(svc).Login(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for wrong password, got %v", err)
	}
}

func TestHandlerMe(t *testing.T) {
	svc := newTestService(newMockRepo())
	u, _, err := svc.Register(context.Background(), RegisterInput{
		Name: "Asha", Mobile: "9111111111", Password: "secret123",
	})
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	auth.SetUserID(c, u.ID)

	if err := NewHandler(svc).Me(c); err != nil {
		t.Fatalf("Me returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}

	var out User
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if out.ID != u.ID || out.Name != "Asha" {
		t.Errorf("got %+v, want the registered user", out)
	}
}

func TestHandlerUpdateProfile(t *testing.T) {
	svc := newTestService(newMockRepo())
	u, _, err := svc.Register(context.Background(), RegisterInput{
		Name: "Asha", Mobile: "9111111111", Password: "secret123",
	})
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodPut, "/auth/me",
		strings.NewReader(`{"pregnancy_month":7,"doctor_contact":"9333333333"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	auth.SetUserID(c, u.ID)

	if err := NewHandler(svc).UpdateProfile(c); err != nil {
		t.Fatalf("UpdateProfile returned error: %v", err)
	}

	var out User
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if out.PregnancyMonth != 7 || out.DoctorContact != "9333333333" {
		t.Errorf("got %+v, want updated month and doctor contact", out)
	}
}
