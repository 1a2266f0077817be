// Package blobrepo implements the typed stores (users, history, credentials)
// on top of a BlobStore. Every blob is decoded into an internal schema and
// validated before it reaches the domain; mismatches fail fast with
// model.DeserializationError.
package blobrepo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ericfisherdev/academia/internal/domain/model"
	"github.com/ericfisherdev/academia/internal/domain/port/driven"
)

// timestampLayout is RFC 3339 in UTC with millisecond precision.
const timestampLayout = "2006-01-02T15:04:05.000Z"

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

func parseTimestamp(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp %q", s)
	}
	return t.UTC(), nil
}

// loadJSON decodes the blob under key into v, rejecting fields the schema
// does not know. It reports false when the key is absent or empty.
func loadJSON(ctx context.Context, store driven.BlobStore, key string, v any) (bool, error) {
	raw, err := store.Load(ctx, key)
	if err != nil {
		return false, err
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return false, nil
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return false, &model.DeserializationError{Key: key, Err: err}
	}
	return true, nil
}

func saveJSON(ctx context.Context, store driven.BlobStore, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	return store.Save(ctx, key, raw)
}
