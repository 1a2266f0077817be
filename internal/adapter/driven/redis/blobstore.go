// Package redis implements the BlobStore port with one redis string per key.
package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/ericfisherdev/academia/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.BlobStore = (*BlobStore)(nil)

// BlobStore stores blobs as redis strings without expiry. An optional prefix
// namespaces the keys so several deployments can share one redis database.
type BlobStore struct {
	rdb    *redis.Client
	prefix string
}

// NewBlobStore creates a BlobStore on top of rdb.
func NewBlobStore(rdb *redis.Client, prefix string) *BlobStore {
	return &BlobStore{rdb: rdb, prefix: prefix}
}

// Load returns the blob under key, or (nil, nil) when the key does not exist.
func (s *BlobStore) Load(ctx context.Context, key string) ([]byte, error) {
	value, err := s.rdb.Get(ctx, s.redisKey(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("load blob %q: %w", key, err)
	}
	return value, nil
}

// Save stores or replaces the blob under key.
func (s *BlobStore) Save(ctx context.Context, key string, value []byte) error {
	if err := s.rdb.Set(ctx, s.redisKey(key), value, 0).Err(); err != nil {
		return fmt.Errorf("save blob %q: %w", key, err)
	}
	return nil
}

// Ping verifies the redis connection.
func (s *BlobStore) Ping(ctx context.Context) error {
	if err := s.rdb.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("ping redis: %w", err)
	}
	return nil
}

func (s *BlobStore) redisKey(key string) string {
	return s.prefix + key
}
