package main

import (
	"alcyxob/gotrain/internal/api"
	"alcyxob/gotrain/internal/config"
	"alcyxob/gotrain/internal/domain"
	"alcyxob/gotrain/internal/provider"
	"alcyxob/gotrain/internal/repository/mongo"
	"alcyxob/gotrain/internal/secret"
	"alcyxob/gotrain/internal/service"
	"alcyxob/gotrain/internal/storage"
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
)

// @title GoTrain Coach API
// @version 1.0
// @description API for goal-driven weekly training plans: activity sync, AI plan generation and the coach chat.
// @host localhost:8080
// @BasePath /api/v1
func main() {
	log.Println("Starting GoTrain Coach Server...")

	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("FATAL: Could not load config: %v", err)
	}
	log.Println("Configuration loaded.")

	// --- Database Connection ---
	dbClient, err := mongo.ConnectDB(cfg.Database.URI)
	if err != nil {
		log.Fatalf("FATAL: Could not connect to MongoDB: %v", err)
	}
	defer func() {
		log.Println("Disconnecting MongoDB...")
		if err := mongo.DisconnectDB(dbClient); err != nil {
			log.Printf("ERROR: Failed to disconnect MongoDB: %v", err)
		}
	}()
	appDB := dbClient.Database(cfg.Database.Name)
	log.Println("Database connection established.")

	// --- Initialize Repository ---
	box, err := secret.NewBox(cfg.State.SealKey)
	if err != nil {
		log.Fatalf("FATAL: Could not initialize credential sealing: %v", err)
	}
	sessionRepo := mongo.NewMongoSessionRepository(appDB, box)

	// --- Initialize Providers ---
	log.Println("Initializing providers...")
	stravaClient := provider.NewStravaClient(cfg.Strava)
	openAIClient := provider.NewOpenAIClient(cfg.OpenAI)

	var strengthSource provider.StrengthSource
	hevyClient := provider.NewHevyClient(cfg.Hevy)
	if hevyClient.Configured() {
		strengthSource = hevyClient
	} else {
		log.Println("WARN: No Hevy API key configured, strength stats disabled.")
	}

	// Export storage is optional; without a bucket the export endpoint
	// answers 503.
	var archive storage.PlanArchive
	if cfg.S3.BucketName != "" {
		archive, err = storage.NewS3Archive(cfg.S3)
		if err != nil {
			log.Fatalf("FATAL: Failed to initialize S3 archive: %v", err)
		}
	} else {
		log.Println("WARN: No S3 bucket configured, plan export disabled.")
	}

	// --- Initialize Services ---
	log.Println("Initializing services...")
	tokenManager := service.NewTokenManager(sessionRepo, stravaClient)
	planStore := service.NewPlanStore(sessionRepo)
	coachService := service.NewCoachService(service.CoachServiceOptions{
		Repo:        sessionRepo,
		Store:       planStore,
		Tokens:      tokenManager,
		OAuth:       stravaClient,
		Activities:  stravaClient,
		Strength:    strengthSource,
		Completer:   openAIClient,
		Archive:     archive,
		RedirectURI: cfg.Strava.RedirectURI,
		DefaultUnits: domain.Units{
			Distance: cfg.Units.Distance,
			Weight:   cfg.Units.Weight,
		},
		HevyPageSize: cfg.Hevy.PageSize,
	})

	// --- Initialize Gin Engine ---
	// gin.SetMode(gin.ReleaseMode) // Uncomment for production
	router := gin.Default() // Includes Logger and Recovery middleware

	// --- Setup Routes ---
	log.Println("Setting up API routes...")
	api.SetupRoutes(router, coachService)

	// --- Start HTTP Server ---
	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	log.Printf("Server starting on %s", cfg.Server.Address)

	// --- Graceful Shutdown ---
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("FATAL: ListenAndServe Error: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Fatalf("FATAL: Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting.")
}
