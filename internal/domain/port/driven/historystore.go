package driven

import (
	"context"

	"github.com/ericfisherdev/academia/internal/domain/model"
)

// HistoryStore defines the driven port for query history persistence.
type HistoryStore interface {
	// LoadHistory returns stored messages, newest first.
	LoadHistory(ctx context.Context) ([]model.Message, error)

	// SaveHistory replaces the stored history.
	SaveHistory(ctx context.Context, messages []model.Message) error
}
