package model

import "fmt"

// OutcomeKind is the aggregate classification of a dispatch.
type OutcomeKind string

const (
	OutcomeSuccess        OutcomeKind = "success"
	OutcomePartialFailure OutcomeKind = "partial_failure"
	OutcomeTotalFailure   OutcomeKind = "total_failure"
)

// Outcome is the aggregate result of a dispatch and the notice shown for it.
type Outcome struct {
	Kind       OutcomeKind
	ErrorCount int
}

// Notice returns the user-visible message for the outcome.
func (o Outcome) Notice() string {
	switch o.Kind {
	case OutcomeTotalFailure:
		return "All APIs failed. Check the configuration."
	case OutcomePartialFailure:
		return fmt.Sprintf("%d API(s) failed", o.ErrorCount)
	default:
		return "Query completed successfully!"
	}
}
