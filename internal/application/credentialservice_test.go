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

var (
	adminSession = model.Session{Username: "alice", IsAdmin: true}
	userSession  = model.Session{Username: "bob"}
)

func TestCredentialService_ViewRestrictedForNonAdmin(t *testing.T) {
	store := newMockCredentialStore(map[string]string{"OPENAI_API_KEY": "sk-secret"})
	svc := application.NewCredentialService(store, slog.Default())

	view, err := svc.View(context.Background(), userSession)
	require.NoError(t, err)
	assert.True(t, view.Restricted)
	assert.Empty(t, view.Entries)
}

func TestCredentialService_ViewForAdmin(t *testing.T) {
	store := newMockCredentialStore(map[string]string{"MARITALK_API_KEY": "mk-1"})
	svc := application.NewCredentialService(store, slog.Default())

	view, err := svc.View(context.Background(), adminSession)
	require.NoError(t, err)
	assert.False(t, view.Restricted)

	require.Len(t, view.Entries, 3)
	assert.Equal(t, model.CredentialEntry{KeyName: "OPENAI_API_KEY", Label: "OpenAI API Key"}, view.Entries[0])
	assert.Equal(t, model.CredentialEntry{KeyName: "MARITALK_API_KEY", Label: "Maritalk API Key", Value: "mk-1", Configured: true}, view.Entries[1])
	assert.Equal(t, "GEMINI_API_KEY", view.Entries[2].KeyName)
	assert.False(t, view.Entries[2].Configured)
}

func TestCredentialService_Set(t *testing.T) {
	store := newMockCredentialStore(nil)
	svc := application.NewCredentialService(store, slog.Default())
	ctx := context.Background()

	t.Run("non-admin is forbidden", func(t *testing.T) {
		err := svc.Set(ctx, userSession, "OPENAI_API_KEY", "sk-1")
		require.ErrorIs(t, err, model.ErrForbidden)
		assert.Empty(t, store.values)
	})

	t.Run("admin overwrites", func(t *testing.T) {
		require.NoError(t, svc.Set(ctx, adminSession, "OPENAI_API_KEY", "sk-1"))
		require.NoError(t, svc.Set(ctx, adminSession, "OPENAI_API_KEY", "sk-2"))

		value, err := svc.Get(ctx, adminSession, "OPENAI_API_KEY")
		require.NoError(t, err)
		assert.Equal(t, "sk-2", value)
	})

	t.Run("empty key name", func(t *testing.T) {
		err := svc.Set(ctx, adminSession, "  ", "v")
		require.ErrorIs(t, err, model.ErrValidation)
	})

	t.Run("non-admin cannot read", func(t *testing.T) {
		_, err := svc.Get(ctx, userSession, "OPENAI_API_KEY")
		require.ErrorIs(t, err, model.ErrForbidden)
	})
}
