package driven

import (
	"context"

	"github.com/ericfisherdev/academia/internal/domain/model"
)

// UserStore defines the driven port for the account list.
type UserStore interface {
	// LoadUsers returns all users in registration order. A missing list is
	// returned as an empty slice.
	LoadUsers(ctx context.Context) ([]model.User, error)

	// SaveUsers replaces the stored account list.
	SaveUsers(ctx context.Context, users []model.User) error
}
