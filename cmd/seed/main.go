package main

import (
	"context"
	"flag"
	"log"

	"hireflow-backend/internal/config"
	"hireflow-backend/internal/logger"
	"hireflow-backend/internal/repository/postgres"
	"hireflow-backend/internal/seed"
)

func main() {
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	seedPath := flag.String("seed", "config/seed.dev.yaml", "Path to seed data file")
	migrate := flag.Bool("migrate", true, "Apply the embedded schema first")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)

	data, err := seed.Load(*seedPath)
	if err != nil {
		log.Fatalf("Failed to read seed data: %v", err)
	}

	ctx := context.Background()
	db, err := postgres.Open(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if *migrate {
		if err := postgres.Migrate(ctx, db); err != nil {
			log.Fatalf("Failed to apply schema: %v", err)
		}
	}
	if err := seed.Apply(ctx, db, data); err != nil {
		log.Fatalf("Failed to seed data: %v", err)
	}
	logger.Info("Seed data applied", "users", len(data.Users), "job_offers", len(data.JobOffers), "candidatures", len(data.Candidatures))
}
