package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	grpcapi "hireflow-backend/internal/api/grpc"
	httpapi "hireflow-backend/internal/api/http"
	"hireflow-backend/internal/config"
	"hireflow-backend/internal/logger"
	"hireflow-backend/internal/repository/postgres"
	"hireflow-backend/internal/security"
	"hireflow-backend/internal/service"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	migrate := flag.Bool("migrate", false, "Apply the embedded schema before serving")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting HireFlow interview backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress(), "health_address", cfg.GetHealthAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)
	logger.Info("Email configuration", "provider", cfg.Email.Provider, "from", cfg.Email.From, "admin", cfg.Email.AdminEmail)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize Database
	db, err := postgres.Open(ctx, cfg)
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	logger.Info("Database connection established")

	if *migrate {
		if err := postgres.Migrate(ctx, db); err != nil {
			logger.Error("Failed to apply schema", "error", err)
			log.Fatalf("Failed to apply schema: %v", err)
		}
		logger.Info("Schema applied")
	}

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize Security
	tokenManager := security.NewTokenManager(cfg.JWT.Secret, cfg.AccessTokenExpiry())

	// Initialize Messaging Gateway
	gateway, err := service.NewMessagingGateway(cfg.Email)
	if err != nil {
		logger.Error("Failed to initialize messaging gateway", "error", err)
		log.Fatalf("Failed to initialize messaging gateway: %v", err)
	}

	// Initialize Services
	notifier := service.NewInterviewNotifier(
		gateway,
		store.NotificationRepository,
		store.UserRepository,
		cfg.App.PublicURL,
		cfg.Email.AdminEmail,
	)
	interviewSvc := service.NewInterviewService(
		store.InterviewRepository,
		store.JobOfferRepository,
		store.CandidatureRepository,
		store.UserRepository,
		notifier,
		service.WithUpcomingDays(cfg.App.UpcomingWindowDays),
	)
	authSvc := service.NewAuthService(store.UserRepository, tokenManager)
	noteSvc := service.NewNotificationService(store.NotificationRepository)

	// Initialize HTTP handlers
	router := httpapi.NewRouter(httpapi.Handlers{
		Interviews:    httpapi.NewInterviewHandler(interviewSvc),
		Auth:          httpapi.NewAuthHandler(authSvc),
		Notifications: httpapi.NewNotificationHandler(noteSvc),
		Health:        httpapi.NewHealthHandler(store),
	}, httpapi.NewAuthMiddleware(tokenManager))

	srv := &http.Server{
		Addr:              cfg.GetServerAddress(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	// Set up gRPC health server
	var healthSrv *grpcapi.HealthServer
	if addr := cfg.GetHealthAddress(); addr != "" {
		lis, err := net.Listen("tcp", addr)
		if err != nil {
			logger.Error("Failed to listen", "error", err, "address", addr)
			log.Fatalf("Failed to listen: %v", err)
		}
		healthSrv = grpcapi.NewHealthServer(store, 15*time.Second)
		go healthSrv.Watch(ctx)
		go func() {
			if err := healthSrv.Serve(lis); err != nil {
				logger.Error("gRPC health server error", "error", err)
			}
		}()
	}

	go func() {
		logger.Info("HTTP server listening", "address", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	// Graceful shutdown
	logger.Info("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown failed", "error", err)
	}
	if healthSrv != nil {
		healthSrv.Stop()
	}
	logger.Info("Server stopped. Goodbye!")
}
