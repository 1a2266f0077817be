package application

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/sourcegraph/conc/iter"

	"github.com/ericfisherdev/academia/internal/domain/model"
	"github.com/ericfisherdev/academia/internal/domain/port/driven"
)

// DispatchResult is the aggregated outcome of one query.
type DispatchResult struct {
	Message model.Message
	Outcome model.Outcome
}

// DispatchService fans a query out to every provider, joins all results and
// records the aggregated message in history.
type DispatchService struct {
	providers []driven.AIProvider
	history   *HistoryService
	recorder  Recorder
	logger    *slog.Logger
	now       func() time.Time
}

// NewDispatchService creates a DispatchService. providers are called
// concurrently and their results kept in slice order.
func NewDispatchService(
	providers []driven.AIProvider,
	history *HistoryService,
	recorder Recorder,
	logger *slog.Logger,
) *DispatchService {
	if recorder == nil {
		recorder = NopRecorder{}
	}
	return &DispatchService{
		providers: providers,
		history:   history,
		recorder:  recorder,
		logger:    logger,
		now:       time.Now,
	}
}

// Dispatch validates query and attachments, calls every provider
// concurrently, waits for all of them to settle and records the resulting
// message. A provider failure becomes an errored ProviderResult and never
// fails the batch. If ctx is done by the time the join completes, nothing is
// recorded and the context error is returned.
func (s *DispatchService) Dispatch(ctx context.Context, query string, attachments []model.Attachment) (DispatchResult, error) {
	if err := validateQuery(query, attachments); err != nil {
		return DispatchResult{}, err
	}

	prompt := query + model.SummarizeAttachments(attachments)

	responses := iter.Map(s.providers, func(p *driven.AIProvider) model.ProviderResult {
		return s.call(ctx, *p, prompt)
	})

	if err := ctx.Err(); err != nil {
		return DispatchResult{}, fmt.Errorf("dispatch abandoned: %w", err)
	}

	msg := model.Message{
		Query:     query,
		Responses: responses,
		Timestamp: s.now().UTC().Truncate(time.Millisecond),
	}
	if err := s.history.Record(ctx, msg); err != nil {
		return DispatchResult{}, fmt.Errorf("record message: %w", err)
	}

	outcome := msg.Outcome()
	s.recorder.RecordDispatch(outcome.Kind)
	s.logger.Info("query dispatched",
		"providers", len(responses),
		"errors", outcome.ErrorCount,
		"outcome", outcome.Kind,
		"attachments", len(attachments),
	)

	return DispatchResult{Message: msg, Outcome: outcome}, nil
}

// call runs one provider and captures its error as a result.
func (s *DispatchService) call(ctx context.Context, p driven.AIProvider, prompt string) model.ProviderResult {
	provider := p.Provider()
	start := time.Now()

	content, err := p.Complete(ctx, prompt)
	s.recorder.RecordProviderCall(provider, err != nil, time.Since(start))

	if err != nil {
		s.logger.Warn("provider call failed", "provider", provider, "error", err)
		return model.ProviderResult{
			Provider: provider,
			Content:  fmt.Sprintf("[Error %s] %s", provider, err.Error()),
			HasError: true,
		}
	}

	return model.ProviderResult{Provider: provider, Content: content}
}

func validateQuery(query string, attachments []model.Attachment) error {
	var problems []string
	if strings.TrimSpace(query) == "" {
		problems = append(problems, "query is required")
	}
	if len(attachments) > model.MaxAttachments {
		problems = append(problems, fmt.Sprintf("at most %d attachments are allowed", model.MaxAttachments))
	}
	for _, a := range attachments {
		if !a.IsImage() {
			problems = append(problems, fmt.Sprintf("attachment %q is not an image", a.Name))
		}
		if a.Size > model.MaxAttachmentSize {
			problems = append(problems, fmt.Sprintf("attachment %q exceeds 10 MiB", a.Name))
		}
	}
	if len(problems) > 0 {
		return model.NewValidationError(problems...)
	}
	return nil
}
