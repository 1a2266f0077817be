package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMessageOutcome(t *testing.T) {
	ok := ProviderResult{Provider: ProviderOpenAI, Content: "A"}
	bad := ProviderResult{Provider: ProviderGemini, Content: "[Error gemini] API gemini not configured", HasError: true}

	tests := []struct {
		name      string
		responses []ProviderResult
		want      Outcome
		notice    string
	}{
		{
			name:      "all succeeded",
			responses: []ProviderResult{ok, ok, ok},
			want:      Outcome{Kind: OutcomeSuccess},
			notice:    "Query completed successfully!",
		},
		{
			name:      "some failed",
			responses: []ProviderResult{ok, bad, bad},
			want:      Outcome{Kind: OutcomePartialFailure, ErrorCount: 2},
			notice:    "2 API(s) failed",
		},
		{
			name:      "all failed",
			responses: []ProviderResult{bad, bad, bad},
			want:      Outcome{Kind: OutcomeTotalFailure, ErrorCount: 3},
			notice:    "All APIs failed. Check the configuration.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Message{Responses: tt.responses}.Outcome()
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.notice, got.Notice())
		})
	}
}

func TestMessageDerivedText(t *testing.T) {
	msg := Message{Responses: []ProviderResult{
		{Provider: ProviderOpenAI, Content: "X"},
		{Provider: ProviderMaritalk, Content: "boom", HasError: true},
		{Provider: ProviderGemini, Content: "Y"},
	}}
	assert.Equal(t, "X\n\nY", msg.DerivedText())

	assert.Empty(t, Message{}.DerivedText())
}

func TestProviderKeyName(t *testing.T) {
	assert.Equal(t, "OPENAI_API_KEY", ProviderOpenAI.KeyName())
	assert.Equal(t, "MARITALK_API_KEY", ProviderMaritalk.KeyName())
	assert.Equal(t, "GEMINI_API_KEY", ProviderGemini.KeyName())
	assert.False(t, Provider("claude").IsValid())
}

func TestSummarizeAttachments(t *testing.T) {
	assert.Empty(t, SummarizeAttachments(nil))
	assert.Equal(t,
		"\n\n[Attachments: 1 image(s): cat.png]",
		SummarizeAttachments([]Attachment{{Name: "cat.png", ContentType: "image/png"}}),
	)
}

func TestErrorKinds(t *testing.T) {
	verr := NewValidationError("a", "b")
	assert.ErrorIs(t, verr, ErrValidation)
	assert.Equal(t, "validation failed: a; b", verr.Error())

	cerr := &ConfigurationError{Provider: ProviderGemini}
	assert.ErrorIs(t, cerr, ErrConfiguration)
	assert.Equal(t, "API gemini not configured", cerr.Error())

	derr := &DeserializationError{Key: "academia_users", Err: errors.New("bad json")}
	assert.Equal(t, "decode academia_users: bad json", derr.Error())
}
