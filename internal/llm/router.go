package llm

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

// Router manages completion providers and routes requests by model
type Router struct {
	providers       map[string]Provider
	order           []string
	defaultProvider string
	timeout         time.Duration
	mu              sync.RWMutex
}

var _ Completer = (*Router)(nil)

// NewRouter creates a new completion router. A positive timeout bounds
// every Complete call.
func NewRouter(defaultProvider string, timeout time.Duration) *Router {
	return &Router{
		providers:       make(map[string]Provider),
		defaultProvider: defaultProvider,
		timeout:         timeout,
	}
}

// RegisterProvider registers a completion provider
func (r *Router) RegisterProvider(provider Provider) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.providers[provider.Name()]; !ok {
		r.order = append(r.order, provider.Name())
	}
	r.providers[provider.Name()] = provider
}

// ProviderFor returns the provider serving model. The default provider is
// preferred, then others in registration order. When nothing claims the
// model the default provider gets it.
func (r *Router) ProviderFor(model string) (Provider, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if p, ok := r.providers[r.defaultProvider]; ok && p.Supports(model) {
		return p, nil
	}
	for _, name := range r.order {
		if p := r.providers[name]; p.Supports(model) {
			return p, nil
		}
	}
	if p, ok := r.providers[r.defaultProvider]; ok {
		return p, nil
	}
	return nil, fmt.Errorf("provider not found: %s", r.defaultProvider)
}

// Complete forwards the request to the provider serving its model
func (r *Router) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	p, err := r.ProviderFor(req.Model)
	if err != nil {
		return "", &ProviderError{Provider: DisplayName(r.defaultProvider), Cause: err}
	}

	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	text, err := p.Complete(ctx, req)
	if err != nil {
		var perr *ProviderError
		if errors.As(err, &perr) {
			return "", err
		}
		return "", &ProviderError{Provider: DisplayName(p.Name()), Cause: err}
	}
	return text, nil
}

// ListProviders returns list of configured provider names
func (r *Router) ListProviders() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var providers []string
	for _, name := range r.order {
		if r.providers[name].IsConfigured() {
			providers = append(providers, name)
		}
	}
	return providers
}

// DefaultProvider returns the default provider name
func (r *Router) DefaultProvider() string {
	return r.defaultProvider
}
