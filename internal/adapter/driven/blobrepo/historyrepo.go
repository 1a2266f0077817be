package blobrepo

import (
	"context"
	"fmt"

	"github.com/ericfisherdev/academia/internal/domain/model"
	"github.com/ericfisherdev/academia/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.HistoryStore = (*HistoryRepo)(nil)

type responseInternal struct {
	Provider string `json:"provider"`
	Content  string `json:"content"`
	HasError bool   `json:"hasError"`
}

type messageInternal struct {
	Query     string             `json:"query"`
	Responses []responseInternal `json:"responses"`
	Timestamp string             `json:"timestamp"`
}

// HistoryRepo stores query history under driven.KeyHistory, newest first.
type HistoryRepo struct {
	store driven.BlobStore
}

// NewHistoryRepo creates a HistoryRepo backed by store.
func NewHistoryRepo(store driven.BlobStore) *HistoryRepo {
	return &HistoryRepo{store: store}
}

// LoadHistory returns stored messages, newest first.
func (r *HistoryRepo) LoadHistory(ctx context.Context) ([]model.Message, error) {
	var stored []messageInternal
	found, err := loadJSON(ctx, r.store, driven.KeyHistory, &stored)
	if err != nil {
		return nil, err
	}
	if !found {
		return []model.Message{}, nil
	}

	messages := make([]model.Message, 0, len(stored))
	for i, m := range stored {
		msg, err := toMessage(m)
		if err != nil {
			return nil, &model.DeserializationError{
				Key: driven.KeyHistory,
				Err: fmt.Errorf("message %d: %w", i, err),
			}
		}
		messages = append(messages, msg)
	}
	return messages, nil
}

// SaveHistory replaces the stored history.
func (r *HistoryRepo) SaveHistory(ctx context.Context, messages []model.Message) error {
	stored := make([]messageInternal, 0, len(messages))
	for _, m := range messages {
		stored = append(stored, fromMessage(m))
	}
	if err := saveJSON(ctx, r.store, driven.KeyHistory, stored); err != nil {
		return fmt.Errorf("save history: %w", err)
	}
	return nil
}

func toMessage(m messageInternal) (model.Message, error) {
	ts, err := parseTimestamp(m.Timestamp)
	if err != nil {
		return model.Message{}, err
	}

	responses := make([]model.ProviderResult, 0, len(m.Responses))
	for _, r := range m.Responses {
		provider := model.Provider(r.Provider)
		if !provider.IsValid() {
			return model.Message{}, fmt.Errorf("unknown provider %q", r.Provider)
		}
		responses = append(responses, model.ProviderResult{
			Provider: provider,
			Content:  r.Content,
			HasError: r.HasError,
		})
	}

	return model.Message{
		Query:     m.Query,
		Responses: responses,
		Timestamp: ts,
	}, nil
}

func fromMessage(m model.Message) messageInternal {
	responses := make([]responseInternal, 0, len(m.Responses))
	for _, r := range m.Responses {
		responses = append(responses, responseInternal{
			Provider: string(r.Provider),
			Content:  r.Content,
			HasError: r.HasError,
		})
	}
	return messageInternal{
		Query:     m.Query,
		Responses: responses,
		Timestamp: formatTimestamp(m.Timestamp),
	}
}
