package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"giftdraw/internal/assignment"
	"giftdraw/internal/config"
	"giftdraw/internal/database"
	"giftdraw/internal/handlers"
	"giftdraw/internal/repository"
	"giftdraw/internal/santa"
	"giftdraw/internal/security"
	"giftdraw/internal/service"
)

func main() {
	// Load .env if present; real environment wins
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded configuration from .env")
	}

	cfg := config.Load()

	// Local database only holds login sessions (supports sqlite, postgres, mysql)
	db, err := database.Open(cfg.DatabaseType, cfg.DatabaseURL, cfg.DatabasePath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	log.Printf("Database connection established (type: %s)", cfg.DatabaseType)

	if err := db.EnsureSchema(); err != nil {
		log.Fatalf("Failed to apply schema: %v", err)
	}

	// Remote Secret Santa store
	santaClient := santa.NewClient(cfg.SantaAPIBaseURL, cfg.SantaAPITimeout)
	log.Printf("Using remote store at %s", cfg.SantaAPIBaseURL)

	// Initialize repositories and services
	sessionRepo := repository.NewSessionRepository(db)
	authService := service.NewAuthService(santaClient, sessionRepo, cfg.SessionDuration)
	emailService, err := service.NewEmailService(cfg.AWSRegion, cfg.SESFromEmail, cfg.SESFromName, cfg.AppBaseURL)
	if err != nil {
		log.Fatalf("Failed to initialize email service: %v", err)
	}

	engine := assignment.NewEngine(santaClient)

	// Initialize handlers
	csrf := security.NewCSRFGenerator(cfg.SessionSecret)
	limiter := security.NewRateLimiter(10, time.Minute)
	middleware := handlers.NewMiddleware(authService, limiter, csrf)
	authHandler := handlers.NewAuthHandler(authService, csrf, cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.OAuthRedirectBase)
	partyHandler := handlers.NewPartyHandler(santaClient, emailService)
	assignmentHandler := handlers.NewAssignmentHandler(engine, santaClient)

	// Setup routes
	mux := http.NewServeMux()

	// Auth
	mux.HandleFunc("POST /api/auth/register", middleware.RateLimit(authHandler.Register))
	mux.HandleFunc("POST /api/auth/login", middleware.RateLimit(authHandler.Login))
	mux.HandleFunc("POST /api/auth/logout", authHandler.Logout)
	mux.HandleFunc("GET /api/auth/me", middleware.RequireAuth(authHandler.Me))
	mux.HandleFunc("GET /auth/google/start", authHandler.StartOAuth)
	mux.HandleFunc("GET /auth/google/callback", authHandler.OAuthCallback)

	// Account
	mux.HandleFunc("GET /api/users/account", middleware.RequireAuth(partyHandler.Account))
	mux.HandleFunc("GET /api/parties/my-parties", middleware.RequireAuth(partyHandler.MyParties))

	// Parties and roster
	mux.HandleFunc("POST /api/parties", middleware.RequireAuth(middleware.RequireCSRF(partyHandler.Create)))
	mux.HandleFunc("GET /api/parties/{id}", middleware.WithViewer(partyHandler.Get))
	mux.HandleFunc("PUT /api/parties/{id}", middleware.RequireAuth(middleware.RequireCSRF(partyHandler.Update)))
	mux.HandleFunc("DELETE /api/parties/{id}", middleware.RequireAuth(middleware.RequireCSRF(partyHandler.Delete)))
	mux.HandleFunc("POST /api/parties/{id}/participants", middleware.RequireAuth(middleware.RequireCSRF(partyHandler.AddParticipant)))
	mux.HandleFunc("DELETE /api/parties/{id}/participants/{participantId}", middleware.RequireAuth(middleware.RequireCSRF(partyHandler.RemoveParticipant)))
	mux.HandleFunc("PUT /api/participants/{participantId}/wishlist", middleware.WithViewer(middleware.RequireCSRF(partyHandler.UpdateWishlist)))
	mux.HandleFunc("POST /api/parties/{id}/invite", middleware.RequireAuth(middleware.RequireCSRF(partyHandler.Invite)))

	// Assignments
	mux.HandleFunc("GET /api/parties/{id}/assignments", middleware.WithViewer(assignmentHandler.Get))
	mux.HandleFunc("POST /api/parties/{id}/assignments/generate", middleware.WithViewer(middleware.RequireCSRF(assignmentHandler.Generate)))
	mux.HandleFunc("DELETE /api/parties/{id}/assignments", middleware.WithViewer(middleware.RequireCSRF(assignmentHandler.Delete)))
	mux.HandleFunc("POST /api/parties/{id}/assignments/reveal/{assignmentId}", middleware.WithViewer(assignmentHandler.Reveal))
	mux.HandleFunc("DELETE /api/parties/{id}/view", middleware.WithViewer(assignmentHandler.CloseView))

	// Exclusions
	mux.HandleFunc("GET /api/parties/{id}/exclusions", middleware.WithViewer(assignmentHandler.ListExclusions))
	mux.HandleFunc("POST /api/parties/{id}/exclusions", middleware.WithViewer(middleware.RequireCSRF(assignmentHandler.AddExclusion)))
	mux.HandleFunc("DELETE /api/parties/{id}/exclusions", middleware.WithViewer(middleware.RequireCSRF(assignmentHandler.RemoveExclusion)))

	// Wrap with logging middleware
	handler := handlers.Logging(mux)

	// Start server
	addr := ":" + cfg.ServerPort
	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start background session cleanup
	go cleanupExpiredSessions(authService)

	// Graceful shutdown
	go func() {
		log.Printf("Server starting on http://localhost%s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
}

// cleanupExpiredSessions periodically removes expired sessions
func cleanupExpiredSessions(authService *service.AuthService) {
	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()

	for range ticker.C {
		if err := authService.CleanupExpiredSessions(); err != nil {
			log.Printf("Error cleaning up expired sessions: %v", err)
		} else {
			log.Println("Expired sessions cleaned up")
		}
	}
}
