package application

import (
	"context"
	"fmt"
	"sync"

	"github.com/ericfisherdev/academia/internal/domain/model"
	"github.com/ericfisherdev/academia/internal/domain/port/driven"
)

// HistoryService keeps the shared query history, newest first, capped at
// model.MaxHistory entries.
type HistoryService struct {
	store driven.HistoryStore

	// mu serializes the load-prepend-save sequence of Record.
	mu sync.Mutex
}

// NewHistoryService creates a HistoryService backed by store.
func NewHistoryService(store driven.HistoryStore) *HistoryService {
	return &HistoryService{store: store}
}

// Record prepends msg, drops entries beyond the cap and persists the list.
func (s *HistoryService) Record(ctx context.Context, msg model.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	messages, err := s.store.LoadHistory(ctx)
	if err != nil {
		return fmt.Errorf("load history: %w", err)
	}

	updated := make([]model.Message, 0, min(len(messages)+1, model.MaxHistory))
	updated = append(updated, msg)
	for _, m := range messages {
		if len(updated) == model.MaxHistory {
			break
		}
		updated = append(updated, m)
	}

	if err := s.store.SaveHistory(ctx, updated); err != nil {
		return fmt.Errorf("save history: %w", err)
	}
	return nil
}

// List returns the stored messages, newest first.
func (s *HistoryService) List(ctx context.Context) ([]model.Message, error) {
	messages, err := s.store.LoadHistory(ctx)
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}
	return messages, nil
}

// Get returns the message at index, where 0 is the newest.
func (s *HistoryService) Get(ctx context.Context, index int) (model.Message, error) {
	messages, err := s.List(ctx)
	if err != nil {
		return model.Message{}, err
	}
	if index < 0 || index >= len(messages) {
		return model.Message{}, fmt.Errorf("history item %d: %w", index, model.ErrNotFound)
	}
	return messages[index], nil
}

// Select returns the translatable text of the message at index.
func (s *HistoryService) Select(ctx context.Context, index int) (string, error) {
	msg, err := s.Get(ctx, index)
	if err != nil {
		return "", err
	}
	return msg.DerivedText(), nil
}
