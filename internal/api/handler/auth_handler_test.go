package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/mindtrack/stress-api/internal/core/domain"
)

type stubAuthService struct {
	registerFn func(ctx context.Context, firstName, lastName, email, password string) (*domain.User, string, error)
	loginFn    func(ctx context.Context, email, password string) (string, *domain.User, error)
	getUserFn  func(ctx context.Context, id string) (*domain.User, error)
}

func (s *stubAuthService) Register(ctx context.Context, firstName, lastName, email, password string) (*domain.User, string, error) {
	return s.registerFn(ctx, firstName, lastName, email, password)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubAuthService) GetUser(ctx context.Context, id string) (*domain.User, error) {
	return s.getUserFn(ctx, id)
}

func newTestContext(t *testing.T, method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuthHandler_Register_Success(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, firstName, lastName, email, password string) (*domain.User, string, error) {
			if firstName != "Ada" || lastName != "Lovelace" || email != "ada@example.com" {
				t.Fatalf("unexpected args: %s %s %s", firstName, lastName, email)
			}
			return &domain.User{ID: "u1", FirstName: firstName, LastName: lastName, Email: email}, "tok123", nil
		},
	}
	handler := NewAuthHandler(stub)

	c, rec := newTestContext(t, http.MethodPost, "/api/auth/register",
		`{"firstName":"Ada","lastName":"Lovelace","email":"ada@example.com","password":"Secret123"}`)

	if err := handler.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["success"] != true || resp["token"] != "tok123" {
		t.Fatalf("unexpected envelope: %+v", resp)
	}

	user, ok := resp["user"].(map[string]any)
	if !ok {
		t.Fatalf("expected user in response")
	}
	if user["email"] != "ada@example.com" {
		t.Fatalf("unexpected user payload: %+v", user)
	}
	if _, present := user["password"]; present {
		t.Fatalf("password field must never appear in responses")
	}
}

func TestAuthHandler_Register_MissingFields(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, firstName, lastName, email, password string) (*domain.User, string, error) {
			t.Fatalf("service should not be called")
			return nil, "", nil
		},
	}
	handler := NewAuthHandler(stub)

	c, rec := newTestContext(t, http.MethodPost, "/api/auth/register", `{"firstName":"Ada"}`)
	_ = handler.Register(c)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Please fill all fields") {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestAuthHandler_Register_DuplicateEmail(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, firstName, lastName, email, password string) (*domain.User, string, error) {
			return nil, "", domain.ErrUserExists
		},
	}
	handler := NewAuthHandler(stub)

	c, rec := newTestContext(t, http.MethodPost, "/api/auth/register",
		`{"firstName":"Ada","lastName":"Lovelace","email":"ada@example.com","password":"Secret123"}`)
	_ = handler.Register(c)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "User already exists") {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestAuthHandler_Login_Success(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, email, password string) (string, *domain.User, error) {
			return "tok456", &domain.User{ID: "u1", FirstName: "Ada", LastName: "Lovelace", Email: email}, nil
		},
	}
	handler := NewAuthHandler(stub)

	c, rec := newTestContext(t, http.MethodPost, "/api/auth/login",
		`{"email":"ada@example.com","password":"Secret123"}`)

	if err := handler.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["token"] != "tok456" || resp["message"] != "Login successful" {
		t.Fatalf("unexpected envelope: %+v", resp)
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, email, password string) (string, *domain.User, error) {
			return "", nil, domain.ErrInvalidCredentials
		},
	}
	handler := NewAuthHandler(stub)

	c, rec := newTestContext(t, http.MethodPost, "/api/auth/login",
		`{"email":"ada@example.com","password":"wrong"}`)
	_ = handler.Login(c)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["message"] != "Invalid credentials" {
		t.Fatalf("expected the generic credentials message, got %+v", resp)
	}
}

func TestAuthHandler_Login_MissingFields(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, email, password string) (string, *domain.User, error) {
			t.Fatalf("service should not be called")
			return "", nil, nil
		},
	}
	handler := NewAuthHandler(stub)

	c, rec := newTestContext(t, http.MethodPost, "/api/auth/login", `{"email":"ada@example.com"}`)
	_ = handler.Login(c)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Please provide email and password") {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestAuthHandler_Me(t *testing.T) {
	calls := 0
	stub := &stubAuthService{
		getUserFn: func(ctx context.Context, id string) (*domain.User, error) {
			calls++
			if id != "u1" {
				t.Fatalf("unexpected id: %s", id)
			}
			return &domain.User{ID: "u1", FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com"}, nil
		},
	}
	handler := NewAuthHandler(stub)

	// GetIdentity is idempotent: two calls, same projection.
	for i := 0; i < 2; i++ {
		c, rec := newTestContext(t, http.MethodGet, "/api/auth/me", "")
		c.Set("user_id", "u1")

		if err := handler.Me(c); err != nil {
			t.Fatalf("handler error: %v", err)
		}
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if strings.Contains(rec.Body.String(), "password") {
			t.Fatalf("password field must never appear: %s", rec.Body.String())
		}
	}
	if calls != 2 {
		t.Fatalf("expected 2 lookups, got %d", calls)
	}
}

func TestAuthHandler_Me_NoIdentity(t *testing.T) {
	handler := NewAuthHandler(&stubAuthService{})

	c, _ := newTestContext(t, http.MethodGet, "/api/auth/me", "")
	err := handler.Me(c)

	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 HTTPError, got %v", err)
	}
}
