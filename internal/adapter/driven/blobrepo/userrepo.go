package blobrepo

import (
	"context"
	"fmt"

	"github.com/ericfisherdev/academia/internal/domain/model"
	"github.com/ericfisherdev/academia/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.UserStore = (*UserRepo)(nil)

// userInternal keeps the browser build's field names; the username is stored
// under "email".
type userInternal struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	IsAdmin  bool   `json:"isAdmin"`
}

// UserRepo stores the account list under driven.KeyUsers.
type UserRepo struct {
	store driven.BlobStore
}

// NewUserRepo creates a UserRepo backed by store.
func NewUserRepo(store driven.BlobStore) *UserRepo {
	return &UserRepo{store: store}
}

// LoadUsers returns all users in registration order.
func (r *UserRepo) LoadUsers(ctx context.Context) ([]model.User, error) {
	var stored []userInternal
	found, err := loadJSON(ctx, r.store, driven.KeyUsers, &stored)
	if err != nil {
		return nil, err
	}
	if !found {
		return []model.User{}, nil
	}

	users := make([]model.User, 0, len(stored))
	seen := make(map[string]struct{}, len(stored))
	for i, u := range stored {
		if u.Email == "" {
			return nil, &model.DeserializationError{
				Key: driven.KeyUsers,
				Err: fmt.Errorf("user %d: missing email", i),
			}
		}
		if _, dup := seen[u.Email]; dup {
			return nil, &model.DeserializationError{
				Key: driven.KeyUsers,
				Err: fmt.Errorf("user %d: duplicate email %q", i, u.Email),
			}
		}
		seen[u.Email] = struct{}{}
		users = append(users, model.User{
			Username: u.Email,
			Password: u.Password,
			IsAdmin:  u.IsAdmin,
		})
	}
	return users, nil
}

// SaveUsers replaces the stored account list.
func (r *UserRepo) SaveUsers(ctx context.Context, users []model.User) error {
	stored := make([]userInternal, 0, len(users))
	for _, u := range users {
		stored = append(stored, userInternal{
			Email:    u.Username,
			Password: u.Password,
			IsAdmin:  u.IsAdmin,
		})
	}
	if err := saveJSON(ctx, r.store, driven.KeyUsers, stored); err != nil {
		return fmt.Errorf("save users: %w", err)
	}
	return nil
}
