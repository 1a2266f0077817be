package driven

import (
	"context"

	"github.com/ericfisherdev/academia/internal/domain/model"
)

// AIProvider defines the driven port for a single AI backend.
type AIProvider interface {
	// Provider returns the backend's identifier.
	Provider() model.Provider

	// Complete answers prompt. A missing credential is reported as an error
	// wrapping model.ErrConfiguration.
	Complete(ctx context.Context, prompt string) (string, error)
}
