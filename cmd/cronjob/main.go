package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"hireflow-backend/internal/config"
	"hireflow-backend/internal/jobs"
	"hireflow-backend/internal/logger"
	"hireflow-backend/internal/repository/postgres"
	"hireflow-backend/internal/scheduler"
	"hireflow-backend/internal/service"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	runOnce := flag.String("run-once", "", "Run a specific job once and exit (e.g., 'upcoming-digest', 'pending-reminders', 'all')")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting HireFlow cronjob runner...", "log_level", cfg.Log.Level)

	// Initialize Database
	logger.Info("Connecting to database...", "host", cfg.Database.Host, "port", cfg.Database.Port)
	db, err := postgres.Open(context.Background(), cfg)
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	logger.Info("Database connection established")

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize Services
	gateway, err := service.NewMessagingGateway(cfg.Email)
	if err != nil {
		logger.Error("Failed to initialize messaging gateway", "error", err)
		log.Fatalf("Failed to initialize messaging gateway: %v", err)
	}
	notifier := service.NewInterviewNotifier(gateway, store.NotificationRepository, store.UserRepository, cfg.App.PublicURL, cfg.Email.AdminEmail)
	interviewSvc := service.NewInterviewService(
		store.InterviewRepository,
		store.JobOfferRepository,
		store.CandidatureRepository,
		store.UserRepository,
		notifier,
		service.WithUpcomingDays(cfg.App.UpcomingWindowDays),
	)

	// Initialize Job Runner
	jobRunner := jobs.NewJobRunner(
		jobs.Repositories{
			Interviews: store.InterviewRepository,
			JobOffers:  store.JobOfferRepository,
			Claims:     store.JobClaimRepository,
		},
		&jobs.Services{Interview: interviewSvc, Gateway: gateway},
		cfg,
	)

	// Check if running a single job
	if *runOnce != "" {
		logger.Info("Running job once", "job", *runOnce)
		runJobOnce(jobRunner, *runOnce)
		logger.Info("Job execution completed", "job", *runOnce)
		return
	}

	// Initialize Scheduler
	cronScheduler := scheduler.NewScheduler(jobRunner)

	// Start scheduler
	cronScheduler.Start()
	logger.Info("Cronjob scheduler is running. Press Ctrl+C to stop.")

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	// Graceful shutdown
	logger.Info("Shutting down cronjob scheduler...")
	cronScheduler.Stop()
	logger.Info("Cronjob scheduler stopped. Goodbye!")
}

// runJobOnce runs a specific job once and exits
func runJobOnce(jobRunner *jobs.JobRunner, jobName string) {
	switch jobName {
	case jobs.JobUpcomingDigest:
		jobRunner.SendUpcomingDigest()
	case jobs.JobPendingReminders:
		jobRunner.SendPendingReminders()
	case "all":
		jobRunner.RunAll()
	default:
		logger.Error("Unknown job name", "job", jobName)
		fmt.Printf("Available jobs:\n")
		fmt.Printf("  - %s\n", jobs.JobUpcomingDigest)
		fmt.Printf("  - %s\n", jobs.JobPendingReminders)
		fmt.Printf("  - all\n")
		os.Exit(1)
	}
}
