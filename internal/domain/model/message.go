package model

import (
	"strings"
	"time"
)

// MaxHistory caps the number of stored messages.
const MaxHistory = 100

// ProviderResult is the outcome of a single provider call. When HasError is
// true, Content holds the formatted error.
type ProviderResult struct {
	Provider Provider
	Content  string
	HasError bool
}

// Message is one aggregated query: the original query and one result per
// provider, in dispatch order.
type Message struct {
	Query     string
	Responses []ProviderResult
	Timestamp time.Time
}

// ErrorCount returns the number of errored responses.
func (m Message) ErrorCount() int {
	n := 0
	for _, r := range m.Responses {
		if r.HasError {
			n++
		}
	}
	return n
}

// Outcome classifies the result of a dispatch.
func (m Message) Outcome() Outcome {
	errs := m.ErrorCount()
	switch {
	case errs == len(m.Responses):
		return Outcome{Kind: OutcomeTotalFailure, ErrorCount: errs}
	case errs > 0:
		return Outcome{Kind: OutcomePartialFailure, ErrorCount: errs}
	default:
		return Outcome{Kind: OutcomeSuccess}
	}
}

// DerivedText concatenates the content of all non-error responses in
// dispatch order, separated by a blank line. It is the translation input.
func (m Message) DerivedText() string {
	parts := make([]string, 0, len(m.Responses))
	for _, r := range m.Responses {
		if !r.HasError {
			parts = append(parts, r.Content)
		}
	}
	return strings.Join(parts, "\n\n")
}
