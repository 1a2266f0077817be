package application

// Services groups the use cases wired by the composition root and shared by
// the driving adapters.
type Services struct {
	Accounts    *AccountService
	Sessions    *SessionManager
	Dispatch    *DispatchService
	History     *HistoryService
	Credentials *CredentialService
	Translation *TranslationService
	Health      *HealthService
}
