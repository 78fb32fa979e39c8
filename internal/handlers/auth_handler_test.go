package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"icc-dashboard/internal/auth"
	"icc-dashboard/internal/backend"
	"icc-dashboard/internal/config"
	"icc-dashboard/internal/logging"
	"icc-dashboard/internal/middleware"
	"icc-dashboard/internal/models"
	"icc-dashboard/internal/services"
	"icc-dashboard/internal/session"
)

type authFixture struct {
	jwt      *auth.JWTManager
	sessions *session.Manager
	handler  *AuthHandler
	authSeen atomic.Value
}

// newAuthFixture wires an AuthHandler to a fake backend that answers login
// with status and body.
func newAuthFixture(t *testing.T, status int, body string) *authFixture {
	t.Helper()
	cfg := &config.Config{}
	cfg.Session.Secret = "auth-secret"
	cfg.Session.Issuer = "icc-dashboard"
	cfg.Session.TTLHours = 1

	f := &authFixture{
		jwt:      auth.NewJWTManager(cfg),
		sessions: session.NewManager(session.NewMemoryStore(time.Hour), session.NewBroker()),
	}
	f.authSeen.Store("")

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.authSeen.Store(r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	log := logging.Discard()
	client := backend.NewClient(srv.URL, backend.Options{
		Logger:         log,
		OnUnauthorized: ForceLogout(f.sessions, nil, log),
	})
	cookies := middleware.NewAuthMiddleware(f.jwt, f.sessions, "icc_session", false, log)
	f.handler = NewAuthHandler(services.NewAuthService(client), f.sessions, cookies, nil, log)
	return f
}

func (f *authFixture) login(t *testing.T, ac *session.AuthContext) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login",
		strings.NewReader(`{"email":"jane@icc.test","password":"secret"}`))
	ctx := session.WithAuth(req.Context(), ac)
	if ac.AccessToken != "" {
		ctx = backend.WithToken(ctx, ac.AccessToken)
	}
	rr := httptest.NewRecorder()
	f.handler.Login(rr, req.WithContext(ctx))
	return rr
}

const loginOK = `{"code":200,"message":"ok","data":{"user":{"id":5,"first_name":"Jane","email":"jane@icc.test","role":"cleaner"},"access_token":"fresh-tok","refresh_token":"ref"}}`

func TestLoginRotatesSessionID(t *testing.T) {
	f := newAuthFixture(t, http.StatusOK, loginOK)
	ctx := context.Background()

	events, cancel := f.sessions.Broker().Subscribe("pre-login-sid")
	defer cancel()

	rr := f.login(t, &session.AuthContext{SessionID: "pre-login-sid"})
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var cookie *http.Cookie
	for _, c := range rr.Result().Cookies() {
		if c.Name == "icc_session" {
			cookie = c
		}
	}
	if cookie == nil {
		t.Fatal("login must issue a new session cookie")
	}
	claims, err := f.jwt.ValidateSessionToken(cookie.Value)
	if err != nil {
		t.Fatalf("issued cookie is invalid: %v", err)
	}
	if claims.SessionID == "pre-login-sid" {
		t.Fatal("session id must change across login")
	}

	fresh, err := f.sessions.Load(ctx, claims.SessionID)
	if err != nil || fresh.AccessToken != "fresh-tok" || fresh.Role() != "cleaner" {
		t.Fatalf("new session not populated: %+v (%v)", fresh, err)
	}
	old, err := f.sessions.Load(ctx, "pre-login-sid")
	if err != nil || old.Authenticated() {
		t.Fatalf("pre-login session must stay anonymous: %+v (%v)", old, err)
	}

	select {
	case ev := <-events:
		if ev.Type != session.EventLogin {
			t.Fatalf("unexpected event %+v", ev)
		}
	case <-time.After(time.Second):
		t.Fatal("tabs on the old session were not told about the login")
	}
}

func TestFailedLoginKeepsExistingSession(t *testing.T) {
	f := newAuthFixture(t, http.StatusUnauthorized, `{"detail":"Invalid credentials"}`)
	ctx := context.Background()

	err := f.sessions.SaveLogin(ctx, "live-sid", &models.LoginData{
		User:        models.User{ID: 2, Role: "admin"},
		AccessToken: "live-tok",
	})
	if err != nil {
		t.Fatalf("SaveLogin failed: %v", err)
	}
	ac, _ := f.sessions.Load(ctx, "live-sid")

	rr := f.login(t, ac)
	if rr.Code == http.StatusOK {
		t.Fatal("login with bad credentials must fail")
	}
	if got := f.authSeen.Load().(string); got != "" {
		t.Fatalf("credential call must not carry the session token, got %q", got)
	}
	after, _ := f.sessions.Load(ctx, "live-sid")
	if after.AccessToken != "live-tok" {
		t.Fatal("a bad password must not sign the existing session out")
	}
}

func TestBackend401SignsSessionOut(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"detail":"Token expired"}`))
	}))
	defer srv.Close()

	ctx := context.Background()
	log := logging.Discard()
	sessions := session.NewManager(session.NewMemoryStore(time.Hour), session.NewBroker())
	client := backend.NewClient(srv.URL, backend.Options{
		Logger:         log,
		OnUnauthorized: ForceLogout(sessions, nil, log),
	})

	err := sessions.SaveLogin(ctx, "sid-1", &models.LoginData{
		User:        models.User{ID: 9, Role: "admin"},
		AccessToken: "tok",
	})
	if err != nil {
		t.Fatalf("SaveLogin failed: %v", err)
	}
	events, cancel := sessions.Broker().Subscribe("sid-1")
	defer cancel()

	h := NewCleanerHandler(services.NewCleanerService(client), nil, log)
	rr := httptest.NewRecorder()
	h.List(rr, signedIn(httptest.NewRequest(http.MethodGet, "/api/admin/cleaners", nil), "admin"))

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rr.Code)
	}
	var body struct {
		Data struct {
			Redirect string `json:"redirect"`
		} `json:"data"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&body); err != nil || body.Data.Redirect != auth.SignInPath {
		t.Fatalf("expected redirect to %s, got %+v (%v)", auth.SignInPath, body, err)
	}

	ac, err := sessions.Load(ctx, "sid-1")
	if err != nil || ac.Authenticated() || ac.User != nil {
		t.Fatalf("session should be cleared: %+v (%v)", ac, err)
	}

	select {
	case ev := <-events:
		if ev.Type != session.EventLogout || ev.Reason != "unauthorized" {
			t.Fatalf("unexpected event %+v", ev)
		}
	case <-time.After(time.Second):
		t.Fatal("no logout event published")
	}
}
