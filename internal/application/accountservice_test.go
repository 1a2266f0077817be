package application_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericfisherdev/academia/internal/application"
	"github.com/ericfisherdev/academia/internal/domain/model"
)

const strongPassword = "Aa1!aaaa"

func newAccountService(store *mockUserStore) *application.AccountService {
	return application.NewAccountService(store, slog.Default())
}

func TestRegister_FirstUserIsAdmin(t *testing.T) {
	store := &mockUserStore{}
	svc := newAccountService(store)
	ctx := context.Background()

	alice, err := svc.Register(ctx, "alice", strongPassword, strongPassword)
	require.NoError(t, err)
	assert.True(t, alice.IsAdmin)

	bob, err := svc.Register(ctx, "bob", strongPassword, strongPassword)
	require.NoError(t, err)
	assert.False(t, bob.IsAdmin)

	require.Len(t, store.users, 2)
	assert.Equal(t, "alice", store.users[0].Username)
	assert.True(t, store.users[0].IsAdmin)
	assert.Equal(t, "bob", store.users[1].Username)
	assert.False(t, store.users[1].IsAdmin)
}

func TestRegister_DuplicateIsConflict(t *testing.T) {
	store := &mockUserStore{}
	svc := newAccountService(store)
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice", strongPassword, strongPassword)
	require.NoError(t, err)

	_, err = svc.Register(ctx, "  alice ", strongPassword, strongPassword)
	require.ErrorIs(t, err, model.ErrConflict)
	assert.Len(t, store.users, 1)
	assert.Equal(t, 1, store.saves, "a rejected signup must not write")
}

func TestRegister_TrimsUsername(t *testing.T) {
	store := &mockUserStore{}
	svc := newAccountService(store)

	user, err := svc.Register(context.Background(), "  carol\t", strongPassword, strongPassword)
	require.NoError(t, err)
	assert.Equal(t, "carol", user.Username)
}

func TestRegister_ValidationReportsEveryProblem(t *testing.T) {
	tests := []struct {
		name         string
		username     string
		password     string
		confirmation string
		want         []string
	}{
		{
			name:         "empty username",
			username:     "   ",
			password:     strongPassword,
			confirmation: strongPassword,
			want:         []string{"username is required"},
		},
		{
			name:         "mismatched confirmation",
			username:     "dave",
			password:     strongPassword,
			confirmation: "Aa1!aaab",
			want:         []string{"passwords do not match"},
		},
		{
			name:         "short lowercase password",
			username:     "erin",
			password:     "abc",
			confirmation: "abc",
			want: []string{
				"password must be at least 8 characters",
				"password must contain at least one uppercase letter",
				"password must contain at least one number",
				"password must contain at least one special character",
			},
		},
		{
			name:         "missing special character",
			username:     "frank",
			password:     "Abcdefg1",
			confirmation: "Abcdefg1",
			want:         []string{"password must contain at least one special character"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &mockUserStore{}
			svc := newAccountService(store)

			_, err := svc.Register(context.Background(), tt.username, tt.password, tt.confirmation)
			require.ErrorIs(t, err, model.ErrValidation)

			var verr *model.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.want, verr.Problems)
			assert.Zero(t, store.saves)
		})
	}
}

func TestRegister_StoreError(t *testing.T) {
	svc := newAccountService(&mockUserStore{err: errStoreDown})

	_, err := svc.Register(context.Background(), "alice", strongPassword, strongPassword)
	require.ErrorIs(t, err, errStoreDown)
}

func TestLogin(t *testing.T) {
	store := &mockUserStore{}
	svc := newAccountService(store)
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice", strongPassword, strongPassword)
	require.NoError(t, err)
	_, err = svc.Register(ctx, "bob", strongPassword, strongPassword)
	require.NoError(t, err)

	t.Run("admin", func(t *testing.T) {
		user, err := svc.Login(ctx, "alice", strongPassword)
		require.NoError(t, err)
		assert.True(t, user.IsAdmin)
	})

	t.Run("regular user", func(t *testing.T) {
		user, err := svc.Login(ctx, " bob ", strongPassword)
		require.NoError(t, err)
		assert.False(t, user.IsAdmin)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(ctx, "alice", "wrong")
		require.ErrorIs(t, err, model.ErrUnauthorized)
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := svc.Login(ctx, "mallory", strongPassword)
		require.ErrorIs(t, err, model.ErrUnauthorized)
	})

	t.Run("empty fields", func(t *testing.T) {
		_, err := svc.Login(ctx, "", "")
		require.ErrorIs(t, err, model.ErrValidation)
	})
}
