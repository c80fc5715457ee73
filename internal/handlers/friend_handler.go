package handlers

import (
	"net/http"

	"github.com/adilzhan-b/lingualink/internal/services"
	"github.com/adilzhan-b/lingualink/pkg/logger"
	"github.com/adilzhan-b/lingualink/pkg/middleware"
	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FriendHandler manages HTTP endpoints related to friend requests.
type FriendHandler struct {
	Service *services.FriendService
}

// NewFriendHandler initializes a new FriendHandler.
func NewFriendHandler(service *services.FriendService) *FriendHandler {
	return &FriendHandler{Service: service}
}

// SendFriendRequestHandler allows a user to send a friend request.
func (h *FriendHandler) SendFriendRequestHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	vars := mux.Vars(r)
	recipientID, err := primitive.ObjectIDFromHex(vars["id"])
	if err != nil {
		http.Error(w, "Invalid user ID", http.StatusBadRequest)
		logger.Log.Warnf("Invalid recipient ID: %v", err)
		return
	}

	senderID, _ := primitive.ObjectIDFromHex(claims.UserID)

	request, err := h.Service.SendFriendRequest(r.Context(), senderID, recipientID)
	if err != nil {
		logger.Log.Warnf("Failed to send friend request from %s to %s: %v", claims.UserID, vars["id"], err)
		respondError(w, err)
		return
	}

	logger.Log.Infof("User %s sent a friend request to %s", claims.UserID, vars["id"])
	respondJSON(w, http.StatusCreated, request)
}

// AcceptFriendRequestHandler lets the recipient accept a pending request.
func (h *FriendHandler) AcceptFriendRequestHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	vars := mux.Vars(r)
	requestID, err := primitive.ObjectIDFromHex(vars["id"])
	if err != nil {
		http.Error(w, "Invalid request ID", http.StatusBadRequest)
		logger.Log.Warnf("Invalid friend request ID: %v", err)
		return
	}

	actorID, _ := primitive.ObjectIDFromHex(claims.UserID)

	if err := h.Service.AcceptFriendRequest(r.Context(), actorID, requestID); err != nil {
		logger.Log.Warnf("User %s failed to accept friend request %s: %v", claims.UserID, vars["id"], err)
		respondError(w, err)
		return
	}

	logger.Log.Infof("User %s accepted friend request %s", claims.UserID, vars["id"])
	respondJSON(w, http.StatusOK, map[string]string{"message": "Friend request accepted"})
}

// GetFriendRequestsHandler shows incoming pending requests and accepted
// outgoing ones.
func (h *FriendHandler) GetFriendRequestsHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	userID, _ := primitive.ObjectIDFromHex(claims.UserID)

	overview, err := h.Service.GetFriendRequests(r.Context(), userID)
	if err != nil {
		logger.Log.Errorf("Failed to get friend requests for %s: %v", claims.UserID, err)
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, overview)
}

// ReconcileFriendsHandler triggers the friend-list repair on demand, for
// recovery after a partial failure without waiting for the nightly job.
func (h *FriendHandler) ReconcileFriendsHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	repaired, err := h.Service.ReconcileFriendLists(r.Context())
	if err != nil {
		logger.Log.Errorf("Friend list reconciliation failed: %v", err)
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message":  "Friend lists reconciled",
		"repaired": repaired,
	})
}

// GetOutgoingFriendRequestsHandler shows pending requests the user sent.
func (h *FriendHandler) GetOutgoingFriendRequestsHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	userID, _ := primitive.ObjectIDFromHex(claims.UserID)

	outgoing, err := h.Service.GetOutgoingPending(r.Context(), userID)
	if err != nil {
		logger.Log.Errorf("Failed to get outgoing requests for %s: %v", claims.UserID, err)
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, outgoing)
}
