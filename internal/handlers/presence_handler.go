package handlers

import (
	"net/http"

	"github.com/adilzhan-b/lingualink/internal/presence"
	jwtutil "github.com/adilzhan-b/lingualink/pkg/jwt"
	"github.com/adilzhan-b/lingualink/pkg/logger"
	"github.com/gorilla/websocket"
)

// PresenceHandler upgrades connections into the presence hub.
type PresenceHandler struct {
	Hub       *presence.Hub
	JWTSecret string
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

func NewPresenceHandler(hub *presence.Hub, jwtSecret string) *PresenceHandler {
	return &PresenceHandler{Hub: hub, JWTSecret: jwtSecret}
}

// PresenceWebSocketHandler authenticates via a token query parameter, then
// keeps the connection registered until the client disconnects. The server
// only pushes status events; incoming frames are drained and ignored.
func (h *PresenceHandler) PresenceWebSocketHandler(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		http.Error(w, "Missing token", http.StatusUnauthorized)
		return
	}

	claims, err := jwtutil.ValidateToken(token, h.JWTSecret)
	if err != nil {
		http.Error(w, "Invalid token", http.StatusUnauthorized)
		logger.Log.Warnf("Presence websocket auth failed: %v", err)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Log.Warnf("Presence websocket upgrade failed: %v", err)
		return
	}

	connID := h.Hub.Register(r.Context(), claims.UserID, conn)
	logger.Log.Infof("User %s connected to presence", claims.UserID)

	defer func() {
		h.Hub.Unregister(r.Context(), claims.UserID, connID)
		conn.Close()
		logger.Log.Infof("User %s disconnected from presence", claims.UserID)
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
