package driven

import "context"

// CredentialStore defines the driven port for the provider credential map.
type CredentialStore interface {
	// Get returns the value stored for keyName. Returns ("", nil) if the key
	// is absent.
	Get(ctx context.Context, keyName string) (string, error)

	// Set stores or replaces the value for keyName.
	Set(ctx context.Context, keyName, value string) error

	// All returns a copy of the whole credential map.
	All(ctx context.Context) (map[string]string, error)
}
