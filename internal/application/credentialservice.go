package application

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/ericfisherdev/academia/internal/domain/model"
	"github.com/ericfisherdev/academia/internal/domain/port/driven"
)

// CredentialService exposes the provider credential map to admins only.
type CredentialService struct {
	store  driven.CredentialStore
	logger *slog.Logger

	// mu serializes writes; CredentialStore.Set rewrites the whole map.
	mu sync.Mutex
}

// NewCredentialService creates a CredentialService backed by store.
func NewCredentialService(store driven.CredentialStore, logger *slog.Logger) *CredentialService {
	return &CredentialService{store: store, logger: logger}
}

// View returns one entry per provider key for admins, and a restricted view
// with no entries for everybody else.
func (s *CredentialService) View(ctx context.Context, session model.Session) (model.CredentialView, error) {
	if !session.IsAdmin {
		return model.CredentialView{Restricted: true}, nil
	}

	creds, err := s.store.All(ctx)
	if err != nil {
		return model.CredentialView{}, fmt.Errorf("load credentials: %w", err)
	}

	entries := make([]model.CredentialEntry, 0, len(model.Providers()))
	for _, p := range model.Providers() {
		value := creds[p.KeyName()]
		entries = append(entries, model.CredentialEntry{
			KeyName:    p.KeyName(),
			Label:      p.Label(),
			Value:      value,
			Configured: value != "",
		})
	}
	return model.CredentialView{Entries: entries}, nil
}

// Get returns the stored value for keyName. Non-admins get model.ErrForbidden.
func (s *CredentialService) Get(ctx context.Context, session model.Session, keyName string) (string, error) {
	if !session.IsAdmin {
		return "", fmt.Errorf("read credential: %w", model.ErrForbidden)
	}
	value, err := s.store.Get(ctx, strings.TrimSpace(keyName))
	if err != nil {
		return "", fmt.Errorf("read credential: %w", err)
	}
	return value, nil
}

// Set overwrites keyName with value and persists immediately. Non-admins get
// model.ErrForbidden.
func (s *CredentialService) Set(ctx context.Context, session model.Session, keyName, value string) error {
	if !session.IsAdmin {
		return fmt.Errorf("save credential: %w", model.ErrForbidden)
	}

	keyName = strings.TrimSpace(keyName)
	if keyName == "" {
		return model.NewValidationError("key name is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Set(ctx, keyName, value); err != nil {
		return fmt.Errorf("save credential %q: %w", keyName, err)
	}

	s.logger.Info("credential saved", "key", keyName, "by", session.Username, "configured", value != "")
	return nil
}
