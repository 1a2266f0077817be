package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ericfisherdev/academia/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.BlobStore = (*BlobRepo)(nil)

// BlobRepo is the SQLite implementation of the BlobStore port interface.
// Each key is one row of the blobs table.
type BlobRepo struct {
	db *DB
}

// NewBlobRepo creates a new BlobRepo backed by the given DB.
func NewBlobRepo(db *DB) *BlobRepo {
	return &BlobRepo{db: db}
}

// Load returns the blob stored under key, or (nil, nil) if no row exists.
func (r *BlobRepo) Load(ctx context.Context, key string) ([]byte, error) {
	const query = `SELECT value FROM blobs WHERE key = ?`

	var value string
	err := r.db.Reader.QueryRowContext(ctx, query, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load blob %q: %w", key, err)
	}

	return []byte(value), nil
}

// Save stores or replaces the blob under key.
func (r *BlobRepo) Save(ctx context.Context, key string, value []byte) error {
	const query = `INSERT OR REPLACE INTO blobs (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)`

	if _, err := r.db.Writer.ExecContext(ctx, query, key, string(value)); err != nil {
		return fmt.Errorf("save blob %q: %w", key, err)
	}

	return nil
}
