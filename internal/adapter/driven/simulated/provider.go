// Package simulated implements the AIProvider port with mocked responses.
// No network call is made: each call waits a random delay and answers with a
// canned text, provided the provider's API key is present in the credential
// store.
package simulated

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/ericfisherdev/academia/internal/domain/model"
	"github.com/ericfisherdev/academia/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.AIProvider = (*Provider)(nil)

// Provider is a simulated AI backend.
type Provider struct {
	provider model.Provider
	creds    driven.CredentialStore
	minDelay time.Duration
	maxDelay time.Duration
}

// NewProvider creates a simulated backend for provider whose calls take a
// uniform random delay in [minDelay, maxDelay].
func NewProvider(provider model.Provider, creds driven.CredentialStore, minDelay, maxDelay time.Duration) *Provider {
	if maxDelay < minDelay {
		maxDelay = minDelay
	}
	return &Provider{
		provider: provider,
		creds:    creds,
		minDelay: minDelay,
		maxDelay: maxDelay,
	}
}

// NewProviders creates one simulated backend per known provider, in dispatch
// order.
func NewProviders(creds driven.CredentialStore, minDelay, maxDelay time.Duration) []driven.AIProvider {
	providers := make([]driven.AIProvider, 0, len(model.Providers()))
	for _, p := range model.Providers() {
		providers = append(providers, NewProvider(p, creds, minDelay, maxDelay))
	}
	return providers
}

// Provider returns the backend identifier.
func (p *Provider) Provider() model.Provider {
	return p.provider
}

// Complete waits the simulated latency, then answers prompt. It fails with
// model.ErrConfiguration when the provider's API key is absent or empty.
func (p *Provider) Complete(ctx context.Context, prompt string) (string, error) {
	if err := sleepContext(ctx, p.delay()); err != nil {
		return "", err
	}

	key, err := p.creds.Get(ctx, p.provider.KeyName())
	if err != nil {
		return "", fmt.Errorf("read %s credential: %w", p.provider, err)
	}
	if key == "" {
		return "", &model.ConfigurationError{Provider: p.provider}
	}

	return fmt.Sprintf(
		"Response from %s:\n\nThis is a simulated response for: \"%s\"\n\n"+
			"In production this call would be made by a backend function that keeps your API keys private.",
		p.provider, prompt,
	), nil
}

func (p *Provider) delay() time.Duration {
	spread := p.maxDelay - p.minDelay
	if spread <= 0 {
		return p.minDelay
	}
	return p.minDelay + rand.N(spread+1)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
