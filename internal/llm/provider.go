package llm

import (
	"context"
	"fmt"
)

// Provider identifiers
const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

var displayNames = map[string]string{
	ProviderOpenAI: "OpenAI",
	ProviderGemini: "Gemini",
}

// DisplayName returns the name used in error messages for provider
func DisplayName(provider string) string {
	if name, ok := displayNames[provider]; ok {
		return name
	}
	return provider
}

// CompletionRequest contains text completion parameters
type CompletionRequest struct {
	Prompt      string
	Model       string
	MaxTokens   int
	Temperature float32
}

// Completer turns a prompt into completion text
type Completer interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}

// Provider defines the interface for completion providers
type Provider interface {
	// Name returns the provider identifier
	Name() string

	// IsConfigured checks if provider has valid credentials
	IsConfigured() bool

	// Supports reports whether the provider serves the given model
	Supports(model string) bool

	// Complete runs a single completion call
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}

// ProviderError is returned for any failure talking to an upstream provider
type ProviderError struct {
	Provider string
	Cause    error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s API error: %v", e.Provider, e.Cause)
}

func (e *ProviderError) Unwrap() error {
	return e.Cause
}
