package main

import (
	"context"
	"flag"
	"os"

	"github.com/courseroom/backend/internal/bootstrap"
	"github.com/courseroom/backend/internal/pkg/logger"
	"github.com/courseroom/backend/internal/server"
)

func main() {
	configPath := flag.String("config", "configs/config.yaml", "path to configuration file")
	migrationsDir := flag.String("migrations", "migrations", "path to migrations directory")
	flag.Parse()

	cfg, err := bootstrap.LoadConfigAndSetupLogger(*configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		os.Exit(1)
	}

	ctx := context.Background()

	database, err := bootstrap.SetupDatabase(ctx, cfg, *migrationsDir)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to set up database")
		os.Exit(1)
	}

	deps := bootstrap.BuildDependencies(database)

	if err := bootstrap.SeedIfEnabled(ctx, cfg, deps); err != nil {
		logger.Error().Err(err).Msg("Failed to seed database")
		database.Close()
		os.Exit(1)
	}

	router := bootstrap.SetupRouter(cfg, deps)

	srv := server.New(cfg, router, database)
	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server exited with error")
		database.Close()
		os.Exit(1)
	}
}
