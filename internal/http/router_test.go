package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"icc-dashboard/internal/auth"
	"icc-dashboard/internal/composition"
	"icc-dashboard/internal/config"
	"icc-dashboard/internal/handlers"
	"icc-dashboard/internal/logging"
	"icc-dashboard/internal/middleware"
	"icc-dashboard/internal/models"
	"icc-dashboard/internal/session"
	"icc-dashboard/static"
	"icc-dashboard/templates"

	"github.com/gorilla/websocket"
)

func TestLiveSessionThroughRouter(t *testing.T) {
	cfg := &config.Config{}
	cfg.Session.Secret = "router-secret"
	cfg.Session.Issuer = "icc-dashboard"
	cfg.Session.TTLHours = 1

	log := logging.Discard()
	jwt := auth.NewJWTManager(cfg)
	sessions := session.NewManager(session.NewMemoryStore(time.Hour), session.NewBroker())
	authMiddleware := middleware.NewAuthMiddleware(jwt, sessions, "icc_session", false, log)

	pages, err := handlers.NewPageHandler(templates.FS, composition.NewResolver(), log)
	if err != nil {
		t.Fatalf("parse templates: %v", err)
	}
	router := NewRouter(Handlers{
		Live: handlers.NewLiveHandler(sessions.Broker(), nil, log),
		Page: pages,
	}, authMiddleware, static.FS, log)

	srv := httptest.NewServer(router)
	defer srv.Close()

	sid := session.NewSessionID()
	err = sessions.SaveLogin(context.Background(), sid, &models.LoginData{
		User:        models.User{ID: 4, Email: "c@icc.test", Role: "cleaner"},
		AccessToken: "tok",
	})
	if err != nil {
		t.Fatalf("SaveLogin failed: %v", err)
	}
	token, err := jwt.GenerateSessionToken(sid)
	if err != nil {
		t.Fatalf("GenerateSessionToken failed: %v", err)
	}

	header := http.Header{}
	header.Set("Cookie", "icc_session="+token)
	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/session"
	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, header)
	if err != nil {
		status := 0
		if resp != nil {
			status = resp.StatusCode
		}
		t.Fatalf("dial failed (status %d): %v", status, err)
	}
	defer conn.Close()

	// the handler subscribes right after the upgrade completes
	deadline := time.Now().Add(2 * time.Second)
	for sessions.Broker().Subscribers(sid) == 0 {
		if time.Now().After(deadline) {
			t.Fatal("live handler never subscribed")
		}
		time.Sleep(10 * time.Millisecond)
	}

	if err := sessions.Clear(context.Background(), sid, "user"); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var ev struct {
		Type   string `json:"type"`
		Reason string `json:"reason"`
	}
	if err := conn.ReadJSON(&ev); err != nil {
		t.Fatalf("read event: %v", err)
	}
	if ev.Type != session.EventLogout || ev.Reason != "user" {
		t.Fatalf("unexpected event %+v", ev)
	}
}
