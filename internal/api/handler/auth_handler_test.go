package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Sandesh007711/todoList/internal/core/domain"
	"github.com/Sandesh007711/todoList/internal/core/ports"
)

type stubDenylist struct {
	revoked map[string]bool
	ttls    map[string]time.Duration
}

func (s *stubDenylist) Revoke(_ context.Context, jti string, ttl time.Duration) error {
	if s.revoked == nil {
		s.revoked = make(map[string]bool)
		s.ttls = make(map[string]time.Duration)
	}
	s.revoked[jti] = true
	s.ttls[jti] = ttl
	return nil
}

func (s *stubDenylist) IsRevoked(_ context.Context, jti string) (bool, error) {
	return s.revoked[jti], nil
}

type stubAuthService struct {
	registerFn func(ctx context.Context, name, email, password string) (*domain.User, error)
	loginFn    func(ctx context.Context, email, password string) (string, *domain.User, error)
	getUserFn  func(ctx context.Context, id string) (*domain.User, error)
}

func (s *stubAuthService) Register(ctx context.Context, name, email, password string) (*domain.User, error) {
	return s.registerFn(ctx, name, email, password)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubAuthService) GetUser(ctx context.Context, id string) (*domain.User, error) {
	return s.getUserFn(ctx, id)
}

func TestAuthHandler_Register(t *testing.T) {
	auth := &stubAuthService{
		registerFn: func(_ context.Context, name, email, password string) (*domain.User, error) {
			if name != "Alice" || email != "alice@example.com" || password != "hunter22" {
				t.Fatalf("unexpected input: %q %q %q", name, email, password)
			}
			return &domain.User{ID: "user_1", Name: name, Email: email}, nil
		},
	}
	h := NewAuthHandler(auth, &stubTodoService{}, &stubDenylist{})

	body := `{"name":"Alice","email":"alice@example.com","password":"hunter22"}`
	c, rec := newTestContext(t, http.MethodPost, "/api/users/register", body)
	if err := h.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp struct {
		Token string       `json:"token"`
		User  *domain.User `json:"user"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Token != "" {
		t.Fatalf("register must not issue a token, got %q", resp.Token)
	}
	if resp.User == nil || resp.User.ID != "user_1" {
		t.Fatalf("unexpected user: %+v", resp.User)
	}
}

func TestAuthHandler_Register_Validation(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{}, &stubTodoService{}, &stubDenylist{})

	cases := []string{
		`{"email":"alice@example.com","password":"hunter22"}`,
		`{"name":"Alice","email":"not-an-email","password":"hunter22"}`,
		`{"name":"Alice","email":"alice@example.com","password":"short"}`,
	}
	for _, body := range cases {
		c, _ := newTestContext(t, http.MethodPost, "/api/users/register", body)
		err := h.Register(c)
		if code := httpCode(t, err); code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d", body, code)
		}
	}
}

func TestAuthHandler_Register_DuplicateEmail(t *testing.T) {
	auth := &stubAuthService{
		registerFn: func(_ context.Context, _, _, _ string) (*domain.User, error) {
			return nil, domain.ErrUserExists
		},
	}
	h := NewAuthHandler(auth, &stubTodoService{}, &stubDenylist{})

	body := `{"name":"Alice","email":"alice@example.com","password":"hunter22"}`
	c, _ := newTestContext(t, http.MethodPost, "/api/users/register", body)
	if err := h.Register(c); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthHandler_Login(t *testing.T) {
	auth := &stubAuthService{
		loginFn: func(_ context.Context, email, password string) (string, *domain.User, error) {
			if email != "alice@example.com" || password != "hunter22" {
				t.Fatalf("unexpected credentials: %q %q", email, password)
			}
			return "signed-token", &domain.User{ID: "user_1", Email: email}, nil
		},
	}
	h := NewAuthHandler(auth, &stubTodoService{}, &stubDenylist{})

	body := `{"email":"alice@example.com","password":"hunter22"}`
	c, rec := newTestContext(t, http.MethodPost, "/api/users/login", body)
	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp struct {
		Token string       `json:"token"`
		User  *domain.User `json:"user"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Token != "signed-token" {
		t.Fatalf("unexpected token: %q", resp.Token)
	}
	if resp.User == nil || resp.User.ID != "user_1" {
		t.Fatalf("unexpected user: %+v", resp.User)
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	auth := &stubAuthService{
		loginFn: func(_ context.Context, _, _ string) (string, *domain.User, error) {
			return "", nil, domain.ErrInvalidCredentials
		},
	}
	h := NewAuthHandler(auth, &stubTodoService{}, &stubDenylist{})

	body := `{"email":"alice@example.com","password":"wrong-password"}`
	c, _ := newTestContext(t, http.MethodPost, "/api/users/login", body)
	if err := h.Login(c); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthHandler_Me(t *testing.T) {
	auth := &stubAuthService{
		getUserFn: func(_ context.Context, id string) (*domain.User, error) {
			if id != "user_1" {
				t.Fatalf("unexpected id: %q", id)
			}
			return &domain.User{ID: id, Name: "Alice", Email: "alice@example.com"}, nil
		},
	}
	todos := &stubTodoService{
		statsFn: func(_ context.Context, ownerID string) (ports.TodoStats, error) {
			if ownerID != "user_1" {
				t.Fatalf("unexpected owner: %q", ownerID)
			}
			return ports.TodoStats{TotalTodos: 3, CompletedTodos: 1, PendingTodos: 2}, nil
		},
	}
	h := NewAuthHandler(auth, todos, &stubDenylist{})

	c, rec := newTestContext(t, http.MethodGet, "/api/users/me", "")
	if err := h.Me(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp struct {
		User  *domain.User    `json:"user"`
		Stats ports.TodoStats `json:"stats"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.User == nil || resp.User.Name != "Alice" {
		t.Fatalf("unexpected user: %+v", resp.User)
	}
	if resp.Stats.TotalTodos != 3 || resp.Stats.CompletedTodos != 1 || resp.Stats.PendingTodos != 2 {
		t.Fatalf("unexpected stats: %+v", resp.Stats)
	}
}

func TestAuthHandler_Me_NoIdentity(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{}, &stubTodoService{}, &stubDenylist{})

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/users/me", nil)
	c := e.NewContext(req, httptest.NewRecorder())

	err := h.Me(c)
	if code := httpCode(t, err); code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", code)
	}
}

func TestAuthHandler_Logout(t *testing.T) {
	denylist := &stubDenylist{}
	h := NewAuthHandler(&stubAuthService{}, &stubTodoService{}, denylist)

	c, rec := newTestContext(t, http.MethodPost, "/api/users/logout", "")
	c.Set("jti", "token_1")
	c.Set("token_exp", time.Now().Add(time.Hour))

	if err := h.Logout(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if !denylist.revoked["token_1"] {
		t.Fatalf("token was not revoked")
	}
	if ttl := denylist.ttls["token_1"]; ttl <= 0 || ttl > time.Hour {
		t.Fatalf("unexpected revocation ttl: %v", ttl)
	}
}

func TestAuthHandler_Logout_WithoutTokenID(t *testing.T) {
	denylist := &stubDenylist{}
	h := NewAuthHandler(&stubAuthService{}, &stubTodoService{}, denylist)

	c, rec := newTestContext(t, http.MethodPost, "/api/users/logout", "")

	if err := h.Logout(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if len(denylist.revoked) != 0 {
		t.Fatalf("nothing should be revoked without a token id")
	}
}
