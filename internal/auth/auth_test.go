package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/oauth2"

	"hireprompt-backend/internal/identity"
	sharedauth "hireprompt-backend/internal/shared/auth"
	"hireprompt-backend/internal/shared/server/middleware"
	"hireprompt-backend/internal/shared/storage/kv"
	"hireprompt-backend/internal/users"
)

type harness struct {
	router *gin.Engine
	svc    *Service
	states *kv.MemoryStore
	users  *users.Service
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	gin.SetMode(gin.TestMode)

	local := identity.NewLocal(identity.NewMemoryCredentialRepo())
	local.Cost = bcrypt.MinCost
	userSvc := users.NewService(users.NewMemoryRepo())
	issuer := sharedauth.NewIssuer("test-secret", time.Hour)
	store := kv.NewMemoryStore()
	revocations := &sharedauth.Revocations{Store: store}
	svc := NewService(local, userSvc, issuer, revocations)

	r := gin.New()
	public := r.Group("/api/v1")
	NewHandler(svc).RegisterPublicRoutes(public)
	private := r.Group("/api/v1", middleware.Auth(issuer, revocations))
	NewHandler(svc).RegisterRoutes(private)
	users.NewHandler(userSvc).RegisterRoutes(private)

	return &harness{router: r, svc: svc, states: store, users: userSvc}
}

func (h *harness) do(method, path, token string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	h.router.ServeHTTP(w, req)
	return w
}

func TestSignupLoginLogoutFlow(t *testing.T) {
	h := newHarness(t)

	w := h.do(http.MethodPost, "/api/v1/auth/signup", "", map[string]string{
		"email": "jane@example.com", "password": "correct horse", "fullName": "Jane Doe",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("signup status %d: %s", w.Code, w.Body.String())
	}
	var created users.User
	_ = json.Unmarshal(w.Body.Bytes(), &created)
	if created.Username != "jane" || created.Plan != users.PlanFree {
		t.Fatalf("unexpected user %+v", created)
	}

	w = h.do(http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email": "jane@example.com", "password": "correct horse",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("login status %d: %s", w.Code, w.Body.String())
	}
	var result LoginResult
	if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode login: %v", err)
	}
	if result.User.ID != created.ID || result.Session.AccessToken == "" {
		t.Fatalf("unexpected login result %+v", result)
	}

	if w := h.do(http.MethodGet, "/api/v1/me", result.Session.AccessToken, nil); w.Code != http.StatusOK {
		t.Fatalf("me status %d: %s", w.Code, w.Body.String())
	}
	if w := h.do(http.MethodPost, "/api/v1/auth/logout", result.Session.AccessToken, nil); w.Code != http.StatusOK {
		t.Fatalf("logout status %d: %s", w.Code, w.Body.String())
	}
	if w := h.do(http.MethodGet, "/api/v1/me", result.Session.AccessToken, nil); w.Code != http.StatusUnauthorized {
		t.Fatalf("expected revoked token to be rejected, got %d", w.Code)
	}
}

func TestSignupAndLoginErrors(t *testing.T) {
	h := newHarness(t)
	if w := h.do(http.MethodPost, "/api/v1/auth/signup", "", map[string]string{
		"email": "jane@example.com", "password": "correct horse",
	}); w.Code != http.StatusCreated {
		t.Fatalf("seed signup failed: %d", w.Code)
	}

	tests := []struct {
		name   string
		path   string
		body   map[string]string
		status int
		code   string
	}{
		{name: "short password", path: "/api/v1/auth/signup", body: map[string]string{"email": "a@example.com", "password": "short"}, status: http.StatusBadRequest, code: "validation_error"},
		{name: "bad email", path: "/api/v1/auth/signup", body: map[string]string{"email": "nope", "password": "long enough"}, status: http.StatusBadRequest, code: "validation_error"},
		{name: "duplicate", path: "/api/v1/auth/signup", body: map[string]string{"email": "jane@example.com", "password": "correct horse"}, status: http.StatusBadRequest, code: "validation_error"},
		{name: "wrong password", path: "/api/v1/auth/login", body: map[string]string{"email": "jane@example.com", "password": "nope"}, status: http.StatusUnauthorized, code: "unauthorized"},
		{name: "missing password", path: "/api/v1/auth/login", body: map[string]string{"email": "jane@example.com"}, status: http.StatusBadRequest, code: "validation_error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := h.do(http.MethodPost, tt.path, "", tt.body)
			if w.Code != tt.status {
				t.Fatalf("expected %d, got %d: %s", tt.status, w.Code, w.Body.String())
			}
			if !strings.Contains(w.Body.String(), `"code":"`+tt.code+`"`) {
				t.Fatalf("expected code %s in %s", tt.code, w.Body.String())
			}
		})
	}
}

func newGoogleHarness(t *testing.T) (*harness, *GoogleService, *httptest.Server) {
	t.Helper()
	h := newHarness(t)
	provider := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/token":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"access_token":"google-at","token_type":"Bearer","expires_in":3600}`))
		case "/userinfo":
			if r.Header.Get("Authorization") != "Bearer google-at" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			_, _ = w.Write([]byte(`{"id":"g-123","email":"jane@gmail.com","name":"Jane G","picture":"https://img.example/p.png"}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(provider.Close)

	g := NewGoogleService("client", "secret", "http://api.test/api/v1/auth/google/callback", "http://ui.test/auth/done", h.states, h.svc)
	g.oauthConfig.Endpoint = oauth2.Endpoint{AuthURL: provider.URL + "/auth", TokenURL: provider.URL + "/token"}
	g.userInfoURL = provider.URL + "/userinfo"
	g.RegisterRoutes(h.router.Group("/api/v1"))
	return h, g, provider
}

func TestGoogleStartAndCallback(t *testing.T) {
	h, _, _ := newGoogleHarness(t)

	w := h.do(http.MethodGet, "/api/v1/auth/google/start", "", nil)
	if w.Code != http.StatusFound {
		t.Fatalf("start status %d", w.Code)
	}
	loc, err := url.Parse(w.Header().Get("Location"))
	if err != nil {
		t.Fatalf("parse location: %v", err)
	}
	state := loc.Query().Get("state")
	if state == "" {
		t.Fatalf("expected state in %s", loc)
	}

	w = h.do(http.MethodGet, "/api/v1/auth/google/callback?state="+state+"&code=abc", "", nil)
	if w.Code != http.StatusFound {
		t.Fatalf("callback status %d: %s", w.Code, w.Body.String())
	}
	redirect, _ := url.Parse(w.Header().Get("Location"))
	if redirect.Host != "ui.test" || redirect.Query().Get("token") == "" {
		t.Fatalf("unexpected redirect %s", redirect)
	}

	if w := h.do(http.MethodGet, "/api/v1/me", redirect.Query().Get("token"), nil); w.Code != http.StatusOK {
		t.Fatalf("me with google token: %d", w.Code)
	} else if !strings.Contains(w.Body.String(), "https://img.example/p.png") {
		t.Fatalf("expected picture in %s", w.Body.String())
	}

	// States are single use.
	w = h.do(http.MethodGet, "/api/v1/auth/google/callback?state="+state+"&code=abc", "", nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected replayed state to fail, got %d", w.Code)
	}
}

func TestGoogleCallbackRejectsUnknownState(t *testing.T) {
	h, _, _ := newGoogleHarness(t)
	if w := h.do(http.MethodGet, "/api/v1/auth/google/callback?state=forged&code=abc", "", nil); w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if w := h.do(http.MethodGet, "/api/v1/auth/google/callback", "", nil); w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing params, got %d", w.Code)
	}
}

func TestGoogleStartNotConfigured(t *testing.T) {
	h := newHarness(t)
	g := NewGoogleService("", "", "", "", h.states, h.svc)
	g.RegisterRoutes(h.router.Group("/api/v1"))
	if w := h.do(http.MethodGet, "/api/v1/auth/google/start", "", nil); w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
}

func TestLogoutWithoutTokenID(t *testing.T) {
	h := newHarness(t)
	if err := h.svc.Logout(context.Background(), "", time.Now()); err == nil {
		t.Fatalf("expected error")
	}
}

func TestAppendToken(t *testing.T) {
	got, err := appendToken("http://ui.test/cb?x=1", "tok")
	if err != nil {
		t.Fatalf("appendToken: %v", err)
	}
	if got != "http://ui.test/cb?token=tok&x=1" {
		t.Fatalf("unexpected url %s", got)
	}
	if _, err := appendToken("", "tok"); err == nil {
		t.Fatalf("expected error for empty redirect")
	}
}
