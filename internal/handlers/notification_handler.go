package handlers

import (
	"net/http"

	"github.com/adilzhan-b/lingualink/internal/services"
	"github.com/adilzhan-b/lingualink/pkg/logger"
	"github.com/adilzhan-b/lingualink/pkg/middleware"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type NotificationHandler struct {
	Service *services.NotificationService
}

func NewNotificationHandler(service *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{Service: service}
}

// GetUserNotificationsHandler returns the user's notifications, newest first.
func (h *NotificationHandler) GetUserNotificationsHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	userID, _ := primitive.ObjectIDFromHex(claims.UserID)

	notifications, err := h.Service.GetUserNotifications(r.Context(), userID)
	if err != nil {
		logger.Log.Errorf("Failed to fetch notifications for %s: %v", claims.UserID, err)
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, notifications)
}
