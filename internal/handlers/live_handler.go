package handlers

import (
	"net/http"
	"time"

	"icc-dashboard/internal/metrics"
	"icc-dashboard/internal/middleware"
	"icc-dashboard/internal/session"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

// LiveHandler pushes session events (login, logout, user changes) to every
// open tab of a browser session.
type LiveHandler struct {
	Broker   *session.Broker
	upgrader websocket.Upgrader
	log      *logrus.Logger
}

func NewLiveHandler(broker *session.Broker, checkOrigin func(r *http.Request) bool, log *logrus.Logger) *LiveHandler {
	return &LiveHandler{
		Broker:   broker,
		upgrader: websocket.Upgrader{CheckOrigin: checkOrigin},
		log:      log,
	}
}

func (h *LiveHandler) Session(w http.ResponseWriter, r *http.Request) {
	sid := middleware.GetAuth(r).SessionID
	if sid == "" {
		http.Error(w, "no session", http.StatusUnauthorized)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.WithError(err).Debug("websocket upgrade failed")
		return
	}
	defer conn.Close()

	events, cancel := h.Broker.Subscribe(sid)
	defer cancel()

	metrics.LiveConnections.Inc()
	defer metrics.LiveConnections.Dec()

	// the reader only exists to notice the tab going away and to see pongs
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		conn.SetReadLimit(512)
		conn.SetReadDeadline(time.Now().Add(pongWait))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(pongWait))
		})
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-closed:
			return
		case <-r.Context().Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(ev); err != nil {
				return
			}
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
