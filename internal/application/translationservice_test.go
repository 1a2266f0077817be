package application_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericfisherdev/academia/internal/application"
	"github.com/ericfisherdev/academia/internal/domain/model"
)

func TestTranslate(t *testing.T) {
	rec := &mockRecorder{}
	svc := application.NewTranslationService(0, rec)

	got, err := svc.Translate(context.Background(), "Hello", "pt")
	require.NoError(t, err)
	assert.Equal(t, "pt", got.Language.Code)
	assert.Equal(t,
		"[Simulated translation to Portuguese]\n\nHello\n\n(In production, use a translation backend)",
		got.Text,
	)
	assert.Equal(t, []string{"pt"}, rec.translations)
}

func TestTranslate_DefaultsToEnglish(t *testing.T) {
	svc := application.NewTranslationService(0, nil)

	got, err := svc.Translate(context.Background(), "Olá", "")
	require.NoError(t, err)
	assert.Equal(t, model.Language{Code: "en", Name: "English"}, got.Language)
}

func TestTranslate_Validation(t *testing.T) {
	svc := application.NewTranslationService(0, nil)

	_, err := svc.Translate(context.Background(), "   ", "en")
	require.ErrorIs(t, err, model.ErrValidation)

	_, err = svc.Translate(context.Background(), "Hello", "xx")
	require.ErrorIs(t, err, model.ErrValidation)
}

func TestTranslate_HonorsContext(t *testing.T) {
	svc := application.NewTranslationService(time.Second, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Translate(ctx, "Hello", "fr")
	require.ErrorIs(t, err, context.Canceled)
}

func TestLanguages(t *testing.T) {
	svc := application.NewTranslationService(0, nil)

	codes := make([]string, 0)
	for _, l := range svc.Languages() {
		codes = append(codes, l.Code)
	}
	assert.Equal(t, []string{"pt", "en", "es", "fr", "de"}, codes)
}
