package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/Rrens/llm-query-gateway/internal/apperror"
	"github.com/Rrens/llm-query-gateway/internal/config"
	"github.com/Rrens/llm-query-gateway/internal/domain"
	"github.com/Rrens/llm-query-gateway/internal/logger"
	"github.com/Rrens/llm-query-gateway/internal/repository"
	"github.com/Rrens/llm-query-gateway/internal/security"
)

type seedUser struct {
	email    string
	password string
	query    string
	model    string
	response string
}

var seedUsers = []seedUser{
	{
		email:    "user1@example.com",
		password: "user1",
		query:    "What is the meaning of life?",
		model:    "text-davinci-003",
		response: "The meaning of life is 42.",
	},
	{
		email:    "user2@example.com",
		password: "user2",
		query:    "What is the capital of France?",
		model:    "text-davinci-003",
		response: "Paris",
	},
}

func main() {
	_ = godotenv.Load()

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

	ctx := context.Background()
	store, err := repository.Open(ctx, cfg.Database, true)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer store.Close()

	if err := seed(ctx, store, security.NewPasswordHasher(0)); err != nil {
		log.Fatal().Err(err).Msg("Seeding failed")
	}
	log.Info().Int("users", len(seedUsers)).Msg("Database seeded")
}

func seed(ctx context.Context, store *repository.Store, hasher *security.PasswordHasher) error {
	for _, s := range seedUsers {
		hash, err := hasher.Hash(s.password)
		if err != nil {
			return err
		}

		user := &domain.User{Email: s.email, PasswordHash: hash}
		if err := store.Users.Create(ctx, user); err != nil {
			if errors.Is(err, apperror.ErrConflict) {
				log.Info().Str("email", s.email).Msg("User already seeded, skipping")
				continue
			}
			return fmt.Errorf("failed to create user %s: %w", s.email, err)
		}

		record := &domain.QueryResponse{
			UserID:   user.ID,
			Query:    s.query,
			Model:    s.model,
			Response: s.response,
		}
		if err := store.Responses.Create(ctx, record); err != nil {
			return err
		}
	}
	return nil
}
