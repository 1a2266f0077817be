// Package bootstrap wires the application services on top of a BlobStore.
package bootstrap

import (
	"log/slog"
	"time"

	"github.com/ericfisherdev/academia/internal/adapter/driven/blobrepo"
	"github.com/ericfisherdev/academia/internal/adapter/driven/simulated"
	"github.com/ericfisherdev/academia/internal/application"
	"github.com/ericfisherdev/academia/internal/domain/port/driven"
)

// Options tunes the wired services.
type Options struct {
	StorageName      string
	SessionKey       []byte
	SessionTTL       time.Duration
	ProviderMinDelay time.Duration
	ProviderMaxDelay time.Duration
	TranslationDelay time.Duration
}

// NewServices builds every service over store. pinger backs the health
// check and may be nil; recorder may be nil.
func NewServices(
	store driven.BlobStore,
	pinger driven.Pinger,
	opts Options,
	recorder application.Recorder,
	logger *slog.Logger,
) (application.Services, error) {
	if recorder == nil {
		recorder = application.NopRecorder{}
	}

	users := blobrepo.NewUserRepo(store)
	history := blobrepo.NewHistoryRepo(store)
	creds := blobrepo.NewCredentialRepo(store)

	sessions, err := application.NewSessionManager(opts.SessionKey, opts.SessionTTL)
	if err != nil {
		return application.Services{}, err
	}

	historySvc := application.NewHistoryService(history)
	providers := simulated.NewProviders(creds, opts.ProviderMinDelay, opts.ProviderMaxDelay)

	return application.Services{
		Accounts:    application.NewAccountService(users, logger),
		Sessions:    sessions,
		Dispatch:    application.NewDispatchService(providers, historySvc, recorder, logger),
		History:     historySvc,
		Credentials: application.NewCredentialService(creds, logger),
		Translation: application.NewTranslationService(opts.TranslationDelay, recorder),
		Health:      application.NewHealthService(opts.StorageName, pinger),
	}, nil
}
