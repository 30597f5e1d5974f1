package service

import (
	"context"
	"fmt"
	"slices"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog/log"

	"github.com/Rrens/llm-query-gateway/internal/apperror"
	"github.com/Rrens/llm-query-gateway/internal/config"
	"github.com/Rrens/llm-query-gateway/internal/domain"
	"github.com/Rrens/llm-query-gateway/internal/llm"
)

// QueryService runs prompts through the completion client and stores the
// results
type QueryService struct {
	responseRepo domain.QueryResponseRepository
	completer    llm.Completer
	models       []string
	maxTokens    int
	temperature  float32
}

// NewQueryService creates a new query service
func NewQueryService(
	responseRepo domain.QueryResponseRepository,
	completer llm.Completer,
	cfg config.LLMConfig,
) *QueryService {
	return &QueryService{
		responseRepo: responseRepo,
		completer:    completer,
		models:       cfg.Models,
		maxTokens:    cfg.MaxTokens,
		temperature:  cfg.Temperature,
	}
}

// Process validates the request, obtains a completion and persists the
// record owned by user
func (s *QueryService) Process(ctx context.Context, user *domain.User, req domain.QueryRequest) (*domain.QueryResponse, error) {
	startTime := time.Now()

	if err := s.validate(user, req); err != nil {
		return nil, err
	}

	text, err := s.completer.Complete(ctx, llm.CompletionRequest{
		Prompt:      req.Query,
		Model:       req.Model,
		MaxTokens:   s.maxTokens,
		Temperature: s.temperature,
	})
	if err != nil {
		log.Error().Err(err).
			Int64("user_id", user.ID).
			Str("model", req.Model).
			Msg("Completion failed")
		return nil, apperror.Query(err)
	}

	record := &domain.QueryResponse{
		UserID:   user.ID,
		Query:    req.Query,
		Model:    req.Model,
		Response: text,
	}
	if err := s.responseRepo.Create(ctx, record); err != nil {
		log.Error().Err(err).
			Int64("user_id", user.ID).
			Str("model", req.Model).
			Msg("Failed to store query response")
		return nil, apperror.Queryf("Error processing query", err)
	}

	log.Info().
		Int64("user_id", user.ID).
		Str("model", req.Model).
		Int64("query_id", record.ID).
		Dur("latency", time.Since(startTime)).
		Msg("Query processed")

	return record, nil
}

func (s *QueryService) validate(user *domain.User, req domain.QueryRequest) error {
	if req.Query == "" {
		return apperror.Validation("Query must not be empty.")
	}
	if utf8.RuneCountInString(req.Query) > domain.MaxQueryLength {
		return apperror.Validation("Query is too long.")
	}
	if !slices.Contains(s.models, req.Model) {
		return apperror.Validation(fmt.Sprintf("Unsupported model: %s", req.Model))
	}
	if req.UserID != nil && *req.UserID != user.ID {
		return apperror.Validation("user_id does not match the authenticated user")
	}
	return nil
}

// Get retrieves one stored query response
func (s *QueryService) Get(ctx context.Context, id int64) (*domain.QueryResponse, error) {
	record, err := s.responseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, apperror.NotFound("Query response not found")
	}
	return record, nil
}

// List returns stored query responses, optionally for one user
func (s *QueryService) List(ctx context.Context, filter domain.QueryResponseFilter) ([]domain.QueryResponse, error) {
	return s.responseRepo.List(ctx, filter)
}
