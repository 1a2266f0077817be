package application_test

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericfisherdev/academia/internal/adapter/driven/simulated"
	"github.com/ericfisherdev/academia/internal/application"
	"github.com/ericfisherdev/academia/internal/domain/model"
	"github.com/ericfisherdev/academia/internal/domain/port/driven"
)

func newDispatch(providers []driven.AIProvider, store *mockHistoryStore, rec application.Recorder) *application.DispatchService {
	return application.NewDispatchService(providers, application.NewHistoryService(store), rec, slog.Default())
}

func TestDispatch_NoCredentialsIsTotalFailure(t *testing.T) {
	creds := newMockCredentialStore(nil)
	store := &mockHistoryStore{}
	rec := &mockRecorder{}
	svc := newDispatch(simulated.NewProviders(creds, 0, 0), store, rec)

	result, err := svc.Dispatch(context.Background(), "what is go", nil)
	require.NoError(t, err)

	assert.Equal(t, model.OutcomeTotalFailure, result.Outcome.Kind)
	assert.Equal(t, 3, result.Outcome.ErrorCount)
	assert.Equal(t, "All APIs failed. Check the configuration.", result.Outcome.Notice())

	require.Len(t, result.Message.Responses, 3)
	for i, p := range model.Providers() {
		r := result.Message.Responses[i]
		assert.Equal(t, p, r.Provider)
		assert.True(t, r.HasError)
		assert.Equal(t, fmt.Sprintf("[Error %s] API %s not configured", p, p), r.Content)
	}

	require.Len(t, store.messages, 1, "a failed batch is still recorded")
	assert.Equal(t, "what is go", store.messages[0].Query)
	assert.Equal(t, []model.OutcomeKind{model.OutcomeTotalFailure}, rec.dispatches)
	assert.Len(t, rec.calls, 3)
}

func TestDispatch_PartialFailure(t *testing.T) {
	creds := newMockCredentialStore(map[string]string{"OPENAI_API_KEY": "sk-123"})
	store := &mockHistoryStore{}
	svc := newDispatch(simulated.NewProviders(creds, 0, 0), store, nil)

	result, err := svc.Dispatch(context.Background(), "hello", nil)
	require.NoError(t, err)

	assert.Equal(t, model.OutcomePartialFailure, result.Outcome.Kind)
	assert.Equal(t, 2, result.Outcome.ErrorCount)
	assert.Equal(t, "2 API(s) failed", result.Outcome.Notice())

	require.Len(t, result.Message.Responses, 3)
	openai := result.Message.Responses[0]
	assert.Equal(t, model.ProviderOpenAI, openai.Provider)
	assert.False(t, openai.HasError)
	assert.True(t, strings.HasPrefix(openai.Content, "Response from openai:"))
	assert.Contains(t, openai.Content, `"hello"`)

	assert.Equal(t, openai.Content, result.Message.DerivedText())
}

func TestDispatch_Success(t *testing.T) {
	providers := []driven.AIProvider{
		&mockProvider{provider: model.ProviderOpenAI, content: "A"},
		&mockProvider{provider: model.ProviderMaritalk, content: "B"},
		&mockProvider{provider: model.ProviderGemini, content: "C"},
	}
	svc := newDispatch(providers, &mockHistoryStore{}, nil)

	result, err := svc.Dispatch(context.Background(), "q", nil)
	require.NoError(t, err)
	assert.Equal(t, model.OutcomeSuccess, result.Outcome.Kind)
	assert.Equal(t, "Query completed successfully!", result.Outcome.Notice())
	assert.Equal(t, "A\n\nB\n\nC", result.Message.DerivedText())
}

func TestDispatch_TimestampHasStoredPrecision(t *testing.T) {
	store := &mockHistoryStore{}
	svc := newDispatch([]driven.AIProvider{&mockProvider{provider: model.ProviderOpenAI, content: "A"}}, store, nil)

	result, err := svc.Dispatch(context.Background(), "q", nil)
	require.NoError(t, err)

	ts := result.Message.Timestamp
	assert.Equal(t, time.UTC, ts.Location())
	assert.Zero(t, ts.Nanosecond()%int(time.Millisecond), "sub-millisecond part is dropped")
	require.Len(t, store.messages, 1)
	assert.True(t, ts.Equal(store.messages[0].Timestamp))
}

func TestDispatch_PreservesOrderRegardlessOfCompletion(t *testing.T) {
	providers := []driven.AIProvider{
		&mockProvider{provider: model.ProviderOpenAI, content: "slow", delay: 60 * time.Millisecond},
		&mockProvider{provider: model.ProviderMaritalk, content: "fastest"},
		&mockProvider{provider: model.ProviderGemini, content: "medium", delay: 20 * time.Millisecond},
	}
	svc := newDispatch(providers, &mockHistoryStore{}, nil)

	result, err := svc.Dispatch(context.Background(), "q", nil)
	require.NoError(t, err)

	got := make([]model.Provider, 0, 3)
	for _, r := range result.Message.Responses {
		got = append(got, r.Provider)
	}
	assert.Equal(t, model.Providers(), got)
	assert.Equal(t, "slow", result.Message.Responses[0].Content)
}

func TestDispatch_ProviderErrorIsIsolated(t *testing.T) {
	providers := []driven.AIProvider{
		&mockProvider{provider: model.ProviderOpenAI, err: errors.New("upstream timeout")},
		&mockProvider{provider: model.ProviderMaritalk, content: "B"},
	}
	svc := newDispatch(providers, &mockHistoryStore{}, nil)

	result, err := svc.Dispatch(context.Background(), "q", nil)
	require.NoError(t, err)
	assert.Equal(t, "[Error openai] upstream timeout", result.Message.Responses[0].Content)
	assert.Equal(t, "B", result.Message.Responses[1].Content)
	assert.Equal(t, 1, result.Outcome.ErrorCount)
}

func TestDispatch_Validation(t *testing.T) {
	image := model.Attachment{Name: "a.png", ContentType: "image/png", Size: 1024}

	tests := []struct {
		name        string
		query       string
		attachments []model.Attachment
	}{
		{name: "empty query", query: ""},
		{name: "whitespace query", query: " \n\t "},
		{name: "non-image attachment", query: "q", attachments: []model.Attachment{{Name: "a.pdf", ContentType: "application/pdf", Size: 10}}},
		{name: "oversized attachment", query: "q", attachments: []model.Attachment{{Name: "big.png", ContentType: "image/png", Size: model.MaxAttachmentSize + 1}}},
		{name: "too many attachments", query: "q", attachments: func() []model.Attachment {
			out := make([]model.Attachment, model.MaxAttachments+1)
			for i := range out {
				out[i] = image
			}
			return out
		}()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &mockHistoryStore{}
			svc := newDispatch(simulated.NewProviders(newMockCredentialStore(nil), 0, 0), store, nil)

			_, err := svc.Dispatch(context.Background(), tt.query, tt.attachments)
			require.ErrorIs(t, err, model.ErrValidation)
			assert.Empty(t, store.messages, "nothing is recorded on validation failure")
		})
	}
}

func TestDispatch_AttachmentsAreSummarizedInPrompt(t *testing.T) {
	p := &mockProvider{provider: model.ProviderOpenAI, content: "ok", prompts: make(chan string, 1)}
	store := &mockHistoryStore{}
	svc := newDispatch([]driven.AIProvider{p}, store, nil)

	attachments := []model.Attachment{
		{Name: "a.png", ContentType: "image/png", Size: 10},
		{Name: "b.jpg", ContentType: "image/jpeg", Size: 20},
	}
	_, err := svc.Dispatch(context.Background(), "describe", attachments)
	require.NoError(t, err)

	assert.Equal(t, "describe\n\n[Attachments: 2 image(s): a.png, b.jpg]", <-p.prompts)
	assert.Equal(t, "describe", store.messages[0].Query, "history keeps the bare query")
}

func TestDispatch_CancelledContextRecordsNothing(t *testing.T) {
	providers := []driven.AIProvider{
		&mockProvider{provider: model.ProviderOpenAI, content: "A", delay: time.Second},
	}
	store := &mockHistoryStore{}
	svc := newDispatch(providers, store, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := svc.Dispatch(ctx, "q", nil)
	require.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Empty(t, store.messages)
}
