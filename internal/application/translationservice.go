package application

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ericfisherdev/academia/internal/domain/model"
)

// TranslationService is a stand-in for a translation backend. It waits a
// fixed delay and wraps the text in a placeholder template.
type TranslationService struct {
	delay    time.Duration
	recorder Recorder
}

// NewTranslationService creates a TranslationService with the given delay.
func NewTranslationService(delay time.Duration, recorder Recorder) *TranslationService {
	if recorder == nil {
		recorder = NopRecorder{}
	}
	return &TranslationService{delay: delay, recorder: recorder}
}

// Translate returns the placeholder translation of text into the language
// identified by code ("" means model.DefaultLanguage). Whitespace-only text
// and unknown codes are validation errors.
func (s *TranslationService) Translate(ctx context.Context, text, code string) (model.Translation, error) {
	if strings.TrimSpace(text) == "" {
		return model.Translation{}, model.NewValidationError("no text to translate")
	}

	code = strings.ToLower(strings.TrimSpace(code))
	if code == "" {
		code = model.DefaultLanguage
	}
	lang, ok := model.LookupLanguage(code)
	if !ok {
		return model.Translation{}, model.NewValidationError(fmt.Sprintf("unsupported language %q", code))
	}

	if s.delay > 0 {
		timer := time.NewTimer(s.delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return model.Translation{}, fmt.Errorf("translate: %w", ctx.Err())
		case <-timer.C:
		}
	}

	s.recorder.RecordTranslation(lang.Code)

	return model.Translation{
		Language: lang,
		Text: fmt.Sprintf(
			"[Simulated translation to %s]\n\n%s\n\n(In production, use a translation backend)",
			lang.Name, text,
		),
	}, nil
}

// Languages returns the supported translation targets.
func (s *TranslationService) Languages() []model.Language {
	return model.Languages()
}
