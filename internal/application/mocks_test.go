package application_test

import (
	"context"
	"errors"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/ericfisherdev/academia/internal/domain/model"
)

// --- Mock implementations ---

type mockUserStore struct {
	mu    sync.Mutex
	users []model.User
	saves int
	err   error
}

func (m *mockUserStore) LoadUsers(_ context.Context) ([]model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	return slices.Clone(m.users), nil
}

func (m *mockUserStore) SaveUsers(_ context.Context, users []model.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saves++
	m.users = slices.Clone(users)
	return nil
}

type mockHistoryStore struct {
	mu       sync.Mutex
	messages []model.Message
	saveErr  error
}

func (m *mockHistoryStore) LoadHistory(_ context.Context) ([]model.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.messages), nil
}

func (m *mockHistoryStore) SaveHistory(_ context.Context, messages []model.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	m.messages = slices.Clone(messages)
	return nil
}

type mockCredentialStore struct {
	mu     sync.Mutex
	values map[string]string
}

func newMockCredentialStore(values map[string]string) *mockCredentialStore {
	if values == nil {
		values = map[string]string{}
	}
	return &mockCredentialStore{values: values}
}

func (m *mockCredentialStore) Get(_ context.Context, keyName string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.values[keyName], nil
}

func (m *mockCredentialStore) Set(_ context.Context, keyName, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[keyName] = value
	return nil
}

func (m *mockCredentialStore) All(_ context.Context) (map[string]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return maps.Clone(m.values), nil
}

// mockProvider answers with content or fails with err after delay.
type mockProvider struct {
	provider model.Provider
	content  string
	err      error
	delay    time.Duration
	prompts  chan string
}

func (m *mockProvider) Provider() model.Provider { return m.provider }

func (m *mockProvider) Complete(ctx context.Context, prompt string) (string, error) {
	if m.prompts != nil {
		m.prompts <- prompt
	}
	if m.delay > 0 {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(m.delay):
		}
	}
	if m.err != nil {
		return "", m.err
	}
	return m.content, nil
}

type providerCall struct {
	provider model.Provider
	failed   bool
}

type mockRecorder struct {
	mu           sync.Mutex
	calls        []providerCall
	dispatches   []model.OutcomeKind
	translations []string
}

func (m *mockRecorder) RecordProviderCall(provider model.Provider, failed bool, _ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, providerCall{provider: provider, failed: failed})
}

func (m *mockRecorder) RecordDispatch(outcome model.OutcomeKind) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.dispatches = append(m.dispatches, outcome)
}

func (m *mockRecorder) RecordTranslation(code string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.translations = append(m.translations, code)
}

var errStoreDown = errors.New("store down")
