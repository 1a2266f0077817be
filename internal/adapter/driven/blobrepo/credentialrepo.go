package blobrepo

import (
	"context"
	"fmt"
	"maps"

	"github.com/ericfisherdev/academia/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.CredentialStore = (*CredentialRepo)(nil)

// CredentialRepo stores the provider credential map under
// driven.KeyCredentials. Values are plaintext.
type CredentialRepo struct {
	store driven.BlobStore
}

// NewCredentialRepo creates a CredentialRepo backed by store.
func NewCredentialRepo(store driven.BlobStore) *CredentialRepo {
	return &CredentialRepo{store: store}
}

// Get returns the value for keyName, or ("", nil) if it was never set.
func (r *CredentialRepo) Get(ctx context.Context, keyName string) (string, error) {
	creds, err := r.All(ctx)
	if err != nil {
		return "", err
	}
	return creds[keyName], nil
}

// Set overwrites the value for keyName and persists the map immediately.
func (r *CredentialRepo) Set(ctx context.Context, keyName, value string) error {
	creds, err := r.All(ctx)
	if err != nil {
		return err
	}
	creds[keyName] = value
	if err := saveJSON(ctx, r.store, driven.KeyCredentials, creds); err != nil {
		return fmt.Errorf("set credential %q: %w", keyName, err)
	}
	return nil
}

// All returns a copy of the stored map. A missing map is returned empty.
func (r *CredentialRepo) All(ctx context.Context) (map[string]string, error) {
	var stored map[string]string
	found, err := loadJSON(ctx, r.store, driven.KeyCredentials, &stored)
	if err != nil {
		return nil, err
	}
	if !found || stored == nil {
		return map[string]string{}, nil
	}
	return maps.Clone(stored), nil
}
