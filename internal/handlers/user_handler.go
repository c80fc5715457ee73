package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/adilzhan-b/lingualink/internal/models"
	"github.com/adilzhan-b/lingualink/internal/services"
	"github.com/adilzhan-b/lingualink/pkg/logger"
	"github.com/adilzhan-b/lingualink/pkg/middleware"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserHandler handles HTTP requests for profiles, recommendations and the
// friend list.
type UserHandler struct {
	Service *services.UserService
}

// NewUserHandler creates a new instance of UserHandler.
func NewUserHandler(service *services.UserService) *UserHandler {
	return &UserHandler{Service: service}
}

// UpdateProfileHandler applies a full profile update for the logged-in user.
func (h *UserHandler) UpdateProfileHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var upd models.ProfileUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		logger.Log.Warnf("Failed to decode profile update: %v", err)
		return
	}
	defer r.Body.Close()

	userID, _ := primitive.ObjectIDFromHex(claims.UserID)

	user, err := h.Service.UpdateProfile(r.Context(), userID, upd)
	if err != nil {
		logger.Log.Warnf("Failed to update profile for user %s: %v", claims.UserID, err)
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, user)
}

// GetRecommendedUsersHandler lists onboarded users the requester might add.
func (h *UserHandler) GetRecommendedUsersHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	userID, _ := primitive.ObjectIDFromHex(claims.UserID)

	users, err := h.Service.GetRecommendedUsers(r.Context(), userID)
	if err != nil {
		logger.Log.Errorf("Failed to fetch recommended users for %s: %v", claims.UserID, err)
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, users)
}

// GetFriendsHandler returns the logged-in user's friends.
func (h *UserHandler) GetFriendsHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	userID, _ := primitive.ObjectIDFromHex(claims.UserID)

	friends, err := h.Service.GetFriends(r.Context(), userID)
	if err != nil {
		logger.Log.Errorf("Failed to fetch friends for user %s: %v", claims.UserID, err)
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, friends)
}
