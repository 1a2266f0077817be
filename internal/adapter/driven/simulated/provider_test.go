package simulated

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericfisherdev/academia/internal/domain/model"
)

type mockCredentialStore struct {
	creds map[string]string
	err   error
}

func (m *mockCredentialStore) Get(_ context.Context, keyName string) (string, error) {
	return m.creds[keyName], m.err
}
func (m *mockCredentialStore) Set(_ context.Context, keyName, value string) error {
	m.creds[keyName] = value
	return m.err
}
func (m *mockCredentialStore) All(_ context.Context) (map[string]string, error) {
	return m.creds, m.err
}

func TestProvider_CompleteConfigured(t *testing.T) {
	creds := &mockCredentialStore{creds: map[string]string{"OPENAI_API_KEY": "sk-1"}}
	p := NewProvider(model.ProviderOpenAI, creds, 0, 0)

	content, err := p.Complete(context.Background(), "what is go?")
	require.NoError(t, err)
	assert.Contains(t, content, "Response from openai:")
	assert.Contains(t, content, `"what is go?"`)
}

func TestProvider_CompleteMissingKey(t *testing.T) {
	tests := []struct {
		name  string
		creds map[string]string
	}{
		{name: "absent", creds: map[string]string{}},
		{name: "empty value", creds: map[string]string{"GEMINI_API_KEY": ""}},
		{name: "other provider only", creds: map[string]string{"OPENAI_API_KEY": "sk"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewProvider(model.ProviderGemini, &mockCredentialStore{creds: tt.creds}, 0, 0)

			_, err := p.Complete(context.Background(), "q")
			require.ErrorIs(t, err, model.ErrConfiguration)
			assert.Equal(t, "API gemini not configured", err.Error())
		})
	}
}

func TestProvider_CompleteCredentialStoreError(t *testing.T) {
	storeErr := errors.New("store offline")
	p := NewProvider(model.ProviderMaritalk, &mockCredentialStore{err: storeErr}, 0, 0)

	_, err := p.Complete(context.Background(), "q")
	require.ErrorIs(t, err, storeErr)
	assert.NotErrorIs(t, err, model.ErrConfiguration)
}

func TestProvider_CompleteHonoursCancellation(t *testing.T) {
	creds := &mockCredentialStore{creds: map[string]string{"OPENAI_API_KEY": "sk"}}
	p := NewProvider(model.ProviderOpenAI, creds, time.Hour, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.Complete(ctx, "q")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestProvider_DelayWithinRange(t *testing.T) {
	p := NewProvider(model.ProviderOpenAI, &mockCredentialStore{}, 10*time.Millisecond, 30*time.Millisecond)

	for range 100 {
		d := p.delay()
		assert.GreaterOrEqual(t, d, 10*time.Millisecond)
		assert.LessOrEqual(t, d, 30*time.Millisecond)
	}
}

func TestNewProvider_InvertedRangeClamped(t *testing.T) {
	p := NewProvider(model.ProviderOpenAI, &mockCredentialStore{}, 20*time.Millisecond, 5*time.Millisecond)
	assert.Equal(t, 20*time.Millisecond, p.delay())
}

func TestNewProviders_DispatchOrder(t *testing.T) {
	providers := NewProviders(&mockCredentialStore{}, 0, 0)

	require.Len(t, providers, 3)
	assert.Equal(t, model.ProviderOpenAI, providers[0].Provider())
	assert.Equal(t, model.ProviderMaritalk, providers[1].Provider())
	assert.Equal(t, model.ProviderGemini, providers[2].Provider())
}
