package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/Rrens/llm-query-gateway/internal/api"
	"github.com/Rrens/llm-query-gateway/internal/config"
	"github.com/Rrens/llm-query-gateway/internal/llm"
	"github.com/Rrens/llm-query-gateway/internal/llm/gemini"
	"github.com/Rrens/llm-query-gateway/internal/llm/openai"
	"github.com/Rrens/llm-query-gateway/internal/logger"
	"github.com/Rrens/llm-query-gateway/internal/repository"
	"github.com/Rrens/llm-query-gateway/internal/repository/redis"
)

func main() {
	// Load .env file - try multiple locations
	for _, p := range []string{".env", "../.env", "../../.env"} {
		if err := godotenv.Load(p); err == nil {
			break
		}
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Setup logger
	logCloser, err := logger.Setup(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to set up logging: %v\n", err)
		os.Exit(1)
	}
	defer logCloser.Close()

	log.Info().
		Str("host", cfg.Server.Host).
		Int("port", cfg.Server.Port).
		Str("database", cfg.Database.Driver).
		Msg("Starting LLM query gateway")

	ctx := context.Background()

	// Initialize database
	store, err := repository.Open(ctx, cfg.Database, true)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer store.Close()

	deps := api.Deps{
		Users:     store.Users,
		Responses: store.Responses,
		Completer: newCompleter(cfg.LLM),
		DB:        store,
	}

	// Initialize Redis
	if cfg.Redis.Enabled {
		redisClient, err := redis.NewClient(ctx, cfg.Redis)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to Redis")
		}
		defer redisClient.Close()

		deps.RateLimiter = redis.NewRateLimiter(
			redisClient,
			cfg.Security.RateLimit.RequestsPerMinute,
			cfg.Security.RateLimit.Burst,
		)
	}

	// Create HTTP server
	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      api.NewRouter(cfg, deps),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().Msgf("Server listening on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server stopped")
}

func newCompleter(cfg config.LLMConfig) *llm.Router {
	router := llm.NewRouter(cfg.DefaultProvider, cfg.Timeout)

	log.Info().
		Str("default", cfg.DefaultProvider).
		Strs("models", cfg.Models).
		Msg("Initializing completion providers")

	// OpenAI is always registered so a missing key surfaces as a provider error
	router.RegisterProvider(openai.NewProvider(cfg.OpenAI))
	if cfg.OpenAI.APIKey == "" {
		log.Warn().Msg("OpenAI API key is empty; completions will fail")
	}

	if cfg.Gemini.APIKey != "" {
		log.Info().Msg("Registering Gemini provider")
		router.RegisterProvider(gemini.NewProvider(cfg.Gemini))
	}

	log.Info().
		Str("default", router.DefaultProvider()).
		Strs("configured", router.ListProviders()).
		Msg("Completion providers ready")

	return router
}
