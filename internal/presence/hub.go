package presence

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FriendSource supplies the friend identities a status change is visible to.
type FriendSource interface {
	GetFriendIDs(ctx context.Context, userID primitive.ObjectID) ([]primitive.ObjectID, error)
}

// StatusEvent is pushed to a user's friends when they connect or disconnect.
type StatusEvent struct {
	Type   string `json:"type"`
	UserID string `json:"user_id"`
	Status string `json:"status"` // "online" or "offline"
}

// Hub tracks live websocket connections and relays online/offline events to
// friends only. Chat delivery is not handled here; this is purely the
// presence side of the real-time layer.
type Hub struct {
	mu      sync.Mutex
	clients map[string]map[string]*websocket.Conn // userID -> connID -> conn
	friends FriendSource
}

func NewHub(friends FriendSource) *Hub {
	return &Hub{
		clients: make(map[string]map[string]*websocket.Conn),
		friends: friends,
	}
}

// Register adds a connection for the user and announces "online" to their
// friends if this is their first open connection. It returns a connection ID
// to pass back to Unregister.
func (h *Hub) Register(ctx context.Context, userID string, conn *websocket.Conn) string {
	connID := uuid.NewString()

	h.mu.Lock()
	first := len(h.clients[userID]) == 0
	if h.clients[userID] == nil {
		h.clients[userID] = make(map[string]*websocket.Conn)
	}
	h.clients[userID][connID] = conn
	h.mu.Unlock()

	if first {
		h.broadcastStatus(ctx, userID, "online")
	}
	return connID
}

// Unregister drops a connection and announces "offline" once the user has no
// connections left.
func (h *Hub) Unregister(ctx context.Context, userID, connID string) {
	h.mu.Lock()
	last := false
	if conns, ok := h.clients[userID]; ok {
		delete(conns, connID)
		if len(conns) == 0 {
			delete(h.clients, userID)
			last = true
		}
	}
	h.mu.Unlock()

	if last {
		h.broadcastStatus(ctx, userID, "offline")
	}
}

// IsOnline reports whether the user has at least one open connection.
func (h *Hub) IsOnline(userID string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients[userID]) > 0
}

func (h *Hub) broadcastStatus(ctx context.Context, userID, status string) {
	uid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return
	}

	friendIDs, err := h.friends.GetFriendIDs(ctx, uid)
	if err != nil {
		logrus.WithError(err).Warnf("Presence: failed to load friends of %s", userID)
		return
	}

	event := StatusEvent{Type: "status", UserID: userID, Status: status}

	h.mu.Lock()
	defer h.mu.Unlock()
	for _, friendID := range friendIDs {
		for _, conn := range h.clients[friendID.Hex()] {
			if err := conn.WriteJSON(event); err != nil {
				logrus.WithError(err).Debug("Presence: failed to write status event")
			}
		}
	}
}
