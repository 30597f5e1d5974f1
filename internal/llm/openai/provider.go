package openai

import (
	"context"
	"errors"
	"strings"

	goopenai "github.com/sashabaranov/go-openai"

	"github.com/Rrens/llm-query-gateway/internal/config"
	"github.com/Rrens/llm-query-gateway/internal/llm"
)

var displayName = llm.DisplayName(llm.ProviderOpenAI)

var errNotConfigured = errors.New("API key is not configured")

// Provider implements llm.Provider on the OpenAI completions endpoint
type Provider struct {
	apiKey string
	client *goopenai.Client
}

// NewProvider creates a new OpenAI provider
func NewProvider(cfg config.OpenAIConfig) *Provider {
	clientCfg := goopenai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	}
	return &Provider{
		apiKey: cfg.APIKey,
		client: goopenai.NewClientWithConfig(clientCfg),
	}
}

// Name returns the provider identifier
func (p *Provider) Name() string {
	return llm.ProviderOpenAI
}

// IsConfigured checks if provider has valid credentials
func (p *Provider) IsConfigured() bool {
	return p.apiKey != ""
}

// Supports accepts every model; the allow-list is enforced upstream
func (p *Provider) Supports(string) bool {
	return true
}

// Complete sends one completion request
func (p *Provider) Complete(ctx context.Context, req llm.CompletionRequest) (string, error) {
	if !p.IsConfigured() {
		return "", &llm.ProviderError{Provider: displayName, Cause: errNotConfigured}
	}

	resp, err := p.client.CreateCompletion(ctx, goopenai.CompletionRequest{
		Model:       req.Model,
		Prompt:      req.Prompt,
		MaxTokens:   req.MaxTokens,
		Temperature: req.Temperature,
	})
	if err != nil {
		var apiErr *goopenai.APIError
		if errors.As(err, &apiErr) {
			return "", &llm.ProviderError{Provider: displayName, Cause: errors.New(apiErr.Message)}
		}
		return "", &llm.ProviderError{Provider: displayName, Cause: err}
	}

	if len(resp.Choices) == 0 {
		return "", &llm.ProviderError{Provider: displayName, Cause: errors.New("no completion choices returned")}
	}

	text := resp.Choices[0].Text
	if strings.TrimSpace(text) == "" {
		return "", &llm.ProviderError{Provider: displayName, Cause: errors.New("empty completion")}
	}
	return text, nil
}
