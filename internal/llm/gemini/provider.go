package gemini

import (
	"context"
	"errors"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/Rrens/llm-query-gateway/internal/config"
	"github.com/Rrens/llm-query-gateway/internal/llm"
)

var displayName = llm.DisplayName(llm.ProviderGemini)

type Provider struct {
	apiKey string
}

func NewProvider(cfg config.GeminiConfig) *Provider {
	return &Provider{apiKey: cfg.APIKey}
}

func (p *Provider) Name() string {
	return llm.ProviderGemini
}

func (p *Provider) IsConfigured() bool {
	return p.apiKey != ""
}

func (p *Provider) Supports(model string) bool {
	return strings.HasPrefix(model, "gemini")
}

func (p *Provider) Complete(ctx context.Context, req llm.CompletionRequest) (string, error) {
	if !p.IsConfigured() {
		return "", &llm.ProviderError{Provider: displayName, Cause: errors.New("API key is not configured")}
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(p.apiKey))
	if err != nil {
		return "", &llm.ProviderError{Provider: displayName, Cause: err}
	}
	defer client.Close()

	model := client.GenerativeModel(req.Model)
	temperature := req.Temperature
	model.Temperature = &temperature
	if req.MaxTokens > 0 {
		maxTokens := int32(req.MaxTokens)
		model.MaxOutputTokens = &maxTokens
	}

	resp, err := model.GenerateContent(ctx, genai.Text(req.Prompt))
	if err != nil {
		return "", &llm.ProviderError{Provider: displayName, Cause: err}
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", &llm.ProviderError{Provider: displayName, Cause: errors.New("empty response")}
	}

	var output strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			output.WriteString(string(text))
		}
	}

	text := output.String()
	if strings.TrimSpace(text) == "" {
		return "", &llm.ProviderError{Provider: displayName, Cause: errors.New("empty completion")}
	}
	return text, nil
}
