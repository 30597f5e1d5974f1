package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/Rrens/llm-query-gateway/internal/config"
	"github.com/Rrens/llm-query-gateway/internal/logger"
	"github.com/Rrens/llm-query-gateway/internal/repository/postgres"
)

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logCloser, err := logger.Setup(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to set up logging: %v\n", err)
		os.Exit(1)
	}
	defer logCloser.Close()

	if cfg.Database.Driver != "postgres" {
		log.Info().Str("driver", cfg.Database.Driver).Msg("Schema is applied on open; nothing to migrate")
		return
	}

	log.Info().Str("host", cfg.Database.Host).Int("port", cfg.Database.Port).Msg("Running migrations")

	if err := postgres.RunMigrations(cfg.Database.DSN()); err != nil {
		log.Fatal().Err(err).Msg("Migration failed")
	}
}
