package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/adilzhan-b/lingualink/internal/config"
	"github.com/adilzhan-b/lingualink/internal/models"
	"github.com/adilzhan-b/lingualink/internal/services"
	jwtutil "github.com/adilzhan-b/lingualink/pkg/jwt"
	"github.com/adilzhan-b/lingualink/pkg/logger"
	"github.com/adilzhan-b/lingualink/pkg/middleware"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AuthHandler handles signup, login and onboarding.
type AuthHandler struct {
	Service *services.UserService
	Config  *config.Config
}

func NewAuthHandler(service *services.UserService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{Service: service, Config: cfg}
}

// SignupHandler registers a new account and returns a token.
func (h *AuthHandler) SignupHandler(w http.ResponseWriter, r *http.Request) {
	var body struct {
		FullName string `json:"full_name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	user, err := h.Service.RegisterUser(r.Context(), body.FullName, body.Email, body.Password)
	if err != nil {
		logger.Log.Warnf("Signup failed for %s: %v", body.Email, err)
		respondError(w, err)
		return
	}

	token, err := jwtutil.GenerateToken(user.ID.Hex(), user.Email, h.Config.JWTSecret, h.Config.TokenExpiry)
	if err != nil {
		logger.Log.Errorf("Failed to generate token: %v", err)
		http.Error(w, "Failed to generate token", http.StatusInternalServerError)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"token": token,
		"user":  user,
	})
}

// LoginHandler authenticates a user and returns a token.
func (h *AuthHandler) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var credentials struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&credentials); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	user, err := h.Service.AuthenticateUser(r.Context(), credentials.Email, credentials.Password)
	if err != nil {
		logger.Log.Warnf("Login failed for %s: %v", credentials.Email, err)
		http.Error(w, "Invalid email or password", http.StatusUnauthorized)
		return
	}

	token, err := jwtutil.GenerateToken(user.ID.Hex(), user.Email, h.Config.JWTSecret, h.Config.TokenExpiry)
	if err != nil {
		logger.Log.Errorf("Failed to generate token: %v", err)
		http.Error(w, "Failed to generate token", http.StatusInternalServerError)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"token": token,
		"user":  user,
	})
}

// OnboardingHandler completes the profile and makes the user recommendable.
func (h *AuthHandler) OnboardingHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var upd models.ProfileUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	userID, _ := primitive.ObjectIDFromHex(claims.UserID)

	user, err := h.Service.OnboardUser(r.Context(), userID, upd)
	if err != nil {
		logger.Log.Warnf("Onboarding failed for user %s: %v", claims.UserID, err)
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, user)
}
