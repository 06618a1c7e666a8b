// Package storage provides the durable key/value layer the cart and
// wishlist stores persist into. Values are whole serialized collections:
// every write replaces the previous value for its key.
package storage

import (
	"context"
	"encoding/json"
)

// Adapter is a minimal key/value contract. Get returns a nil payload when
// the key is absent.
type Adapter interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// LoadList reads and decodes the list stored under key. An absent key, a
// read error, or a malformed value all yield an empty list: stored state is
// rebuildable and must never take the caller down.
func LoadList[T any](ctx context.Context, a Adapter, key string) []T {
	raw, err := a.Get(ctx, key)
	if err != nil || len(raw) == 0 {
		return nil
	}
	var out []T
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil
	}
	return out
}

// SaveList serializes the list and replaces the value under key wholesale.
func SaveList[T any](ctx context.Context, a Adapter, key string, items []T) error {
	if items == nil {
		items = []T{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return a.Set(ctx, key, raw)
}
