// Package application contains the use-case services: accounts and sessions,
// query dispatch, history, credentials and translation.
package application

import (
	"time"

	"github.com/ericfisherdev/academia/internal/domain/model"
)

// Recorder receives operational measurements from the services.
// internal/metrics provides the Prometheus implementation.
type Recorder interface {
	RecordProviderCall(provider model.Provider, failed bool, latency time.Duration)
	RecordDispatch(outcome model.OutcomeKind)
	RecordTranslation(languageCode string)
}

// NopRecorder discards all measurements.
type NopRecorder struct{}

func (NopRecorder) RecordProviderCall(model.Provider, bool, time.Duration) {}
func (NopRecorder) RecordDispatch(model.OutcomeKind)                       {}
func (NopRecorder) RecordTranslation(string)                               {}
