package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/adilzhan-b/lingualink/internal/config"
	"github.com/adilzhan-b/lingualink/internal/database"
	"github.com/adilzhan-b/lingualink/internal/handlers"
	"github.com/adilzhan-b/lingualink/internal/jobs"
	"github.com/adilzhan-b/lingualink/internal/presence"
	"github.com/adilzhan-b/lingualink/internal/repository"
	cronjobs "github.com/adilzhan-b/lingualink/internal/scheduler"
	"github.com/adilzhan-b/lingualink/internal/services"
	"github.com/adilzhan-b/lingualink/pkg/logger"
	"github.com/adilzhan-b/lingualink/pkg/middleware"
	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

func main() {
	// Load configuration from .env file
	cfg := config.LoadConfig()

	logger.InitLogger()
	logger.Log.Info("Logger initialized")

	db, err := database.ConnectDB(cfg)
	if err != nil {
		log.Fatalf("Database connection error: %v", err)
	}

	// --- Repositories ---
	userRepo := repository.NewUserRepository(db)
	friendRepo := repository.NewFriendRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	// --- Services ---
	notificationService := services.NewNotificationService(notificationRepo, userRepo)
	userService := services.NewUserService(userRepo, notificationService)
	friendService := services.NewFriendService(friendRepo, userRepo)

	// --- Presence hub ---
	hub := presence.NewHub(userRepo)

	// --- Handlers ---
	authHandler := handlers.NewAuthHandler(userService, cfg)
	userHandler := handlers.NewUserHandler(userService)
	friendHandler := handlers.NewFriendHandler(friendService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)
	presenceHandler := handlers.NewPresenceHandler(hub, cfg.JWTSecret)

	router := mux.NewRouter()

	// Public auth routes
	router.HandleFunc("/api/auth/signup", authHandler.SignupHandler).Methods("POST")
	router.HandleFunc("/api/auth/login", authHandler.LoginHandler).Methods("POST")

	// Protected user routes
	userRoutes := router.PathPrefix("/api/users").Subrouter()
	userRoutes.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	userRoutes.HandleFunc("", userHandler.GetRecommendedUsersHandler).Methods("GET")
	userRoutes.HandleFunc("/friends", userHandler.GetFriendsHandler).Methods("GET")
	userRoutes.HandleFunc("/profile", userHandler.UpdateProfileHandler).Methods("PUT")
	userRoutes.HandleFunc("/notifications", notificationHandler.GetUserNotificationsHandler).Methods("GET")
	userRoutes.HandleFunc("/friend-request/{id}", friendHandler.SendFriendRequestHandler).Methods("POST")
	userRoutes.HandleFunc("/friend-request/{id}/accept", friendHandler.AcceptFriendRequestHandler).Methods("PUT")
	userRoutes.HandleFunc("/friend-requests", friendHandler.GetFriendRequestsHandler).Methods("GET")
	userRoutes.HandleFunc("/outgoing-friend-requests", friendHandler.GetOutgoingFriendRequestsHandler).Methods("GET")
	userRoutes.HandleFunc("/friends/reconcile", friendHandler.ReconcileFriendsHandler).Methods("POST")

	// Onboarding sits under /api/auth in the frontend contract
	authRoutes := router.PathPrefix("/api/auth").Subrouter()
	authRoutes.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	authRoutes.HandleFunc("/onboarding", authHandler.OnboardingHandler).Methods("POST")

	// Presence websocket (token passed as query parameter)
	router.HandleFunc("/ws/presence", presenceHandler.PresenceWebSocketHandler)

	// Apply middleware for logging
	router.Use(middleware.LoggingMiddleware)

	// Nightly friend-list repair
	reconciler := jobs.NewFriendReconciler(friendService)
	cronjobs.StartReconcileCron(reconciler)

	c := cors.New(cors.Options{
		AllowedOrigins:   []string{cfg.CORSOrigin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	handler := c.Handler(router)

	fmt.Printf("Server running on port %s\n", cfg.Port)
	log.Fatal(http.ListenAndServe(":"+cfg.Port, handler))
}
