package driven

import "context"

// Storage keys of the persisted blobs. Values are JSON documents.
const (
	KeyUsers       = "academia_users"
	KeyCredentials = "academia_api_keys"
	KeyHistory     = "academia_history"
)

// BlobStore defines the driven port for string-keyed blob persistence.
// Implementations are last-write-wins per key.
type BlobStore interface {
	// Load returns the blob stored under key, or (nil, nil) if the key
	// has never been written.
	Load(ctx context.Context, key string) ([]byte, error)

	// Save stores or replaces the blob under key.
	Save(ctx context.Context, key string, value []byte) error
}
