package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/brewboard/api/internal/config"
	"github.com/brewboard/api/internal/database"
	"github.com/brewboard/api/internal/handler"
	"github.com/brewboard/api/internal/jobs"
	"github.com/brewboard/api/internal/middleware"
	"github.com/brewboard/api/internal/model"
	"github.com/brewboard/api/internal/repository"
	"github.com/brewboard/api/internal/service"
)

func main() {
	// Initialize structured logging
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Build the metro directory
	metros, err := loadMetros(cfg)
	if err != nil {
		slog.Error("failed to load metro directory", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize database connection
	db := database.NewSurrealDB(database.Config{
		Host:      cfg.Database.Host,
		Port:      cfg.Database.Port,
		User:      cfg.Database.User,
		Password:  cfg.Database.Password,
		Namespace: cfg.Database.Namespace,
		Database:  cfg.Database.Database,
	})

	ctx := context.Background()
	if err := db.Connect(ctx); err != nil {
		slog.Error("failed to connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() { _ = db.Close() }()

	slog.Info("connected to database",
		slog.String("host", cfg.Database.Host),
		slog.String("database", cfg.Database.Database),
	)

	// Initialize repositories
	submissionRepo := repository.NewSubmissionRepository(db)
	listingRepo := repository.NewListingRepository(db)

	// Initialize event hub for the operator stream
	eventHub := service.NewEventHub()
	defer eventHub.Close()

	// Initialize services
	checkoutService := service.NewCheckoutService(service.CheckoutServiceConfig{
		Endpoint: cfg.Payments.Endpoint,
	})

	submissionService := service.NewSubmissionService(service.SubmissionServiceConfig{
		SubmissionRepo: submissionRepo,
		Checkout:       checkoutService,
		Metros:         metros,
		EventHub:       eventHub,
	})

	moderationService := service.NewModerationService(submissionRepo, eventHub)

	listingService := service.NewListingService(listingRepo, metros)

	// Initialize rate limiter
	rateLimiter := middleware.NewRateLimiter(middleware.RateLimitConfig{
		Rate:   100, // 100 requests per minute
		Window: time.Minute,
		Burst:  20, // Allow bursts up to 20
	})
	defer rateLimiter.Stop()

	// Initialize idempotency store
	idempotencyStore := middleware.NewIdempotencyStore(middleware.IdempotencyConfig{
		TTL:     24 * time.Hour,
		Cleanup: time.Hour,
	})
	defer idempotencyStore.Stop()

	// Start the pin expiry sweeper
	pinSweeper := jobs.NewPinExpirySweeper(listingRepo, cfg.Jobs.PinSweepInterval)
	pinSweeper.Start()
	defer pinSweeper.Stop()

	// Initialize handlers
	listingHandler := handler.NewListingHandler(listingService, metros)
	submissionHandler := handler.NewSubmissionHandler(submissionService)
	paymentHandler := handler.NewPaymentHandler(moderationService)
	moderationHandler := handler.NewModerationHandler(moderationService)
	eventsHandler := handler.NewEventsHandler(eventHub)

	// Create router and register routes
	mux := http.NewServeMux()

	// Health check endpoint
	mux.HandleFunc("GET /health", handler.Health)

	// Public board endpoints
	listingHandler.RegisterRoutes(mux)
	submissionHandler.RegisterRoutes(mux)

	// Payment collaborator callbacks
	paymentHandler.RegisterRoutes(mux)

	// Moderation endpoints (operator token required)
	operatorAuth := middleware.OperatorAuth(cfg.Operator.TokenHash)
	mux.Handle("GET /v1/moderation/queue", operatorAuth(http.HandlerFunc(moderationHandler.Queue)))
	mux.Handle("GET /v1/submissions/{id}", operatorAuth(http.HandlerFunc(moderationHandler.GetSubmission)))
	mux.Handle("POST /v1/submissions/{id}/approve", operatorAuth(http.HandlerFunc(moderationHandler.Approve)))
	mux.Handle("POST /v1/submissions/{id}/reject", operatorAuth(http.HandlerFunc(moderationHandler.Reject)))
	mux.Handle("POST /v1/submissions/{id}/refund-confirmation", operatorAuth(http.HandlerFunc(moderationHandler.ConfirmRefund)))
	mux.Handle("GET /v1/moderation/events", operatorAuth(http.HandlerFunc(eventsHandler.Stream)))

	// Apply global middleware
	wrapped := middleware.Chain(
		mux,
		middleware.RequestID,
		middleware.Logger,
		middleware.Recovery,
		middleware.CORS(cfg.Server.AllowedOrigins),
		middleware.RateLimit(rateLimiter),
		middleware.Idempotency(idempotencyStore),
		middleware.Compress,
	)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      wrapped,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	// Start server in goroutine
	go func() {
		slog.Info("starting server",
			slog.String("port", cfg.Server.Port),
			slog.String("env", cfg.Server.Env),
			slog.Any("metros", metros.Slugs()),
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", slog.String("error", err.Error()))
	}

	slog.Info("server exited")
}

// loadMetros builds the metro directory from METROS_JSON when set, falling
// back to the default launch directory.
func loadMetros(cfg *config.Config) (*model.MetroDirectory, error) {
	if cfg.Metros.JSON != "" {
		return model.ParseMetroDirectory(cfg.Metros.JSON)
	}
	return model.NewMetroDirectory(model.DefaultMetros())
}
