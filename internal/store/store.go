package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
)

// Common errors returned by the store
var ErrKeyNotFound = errors.New("key not found")

// Store is the durable key-value contract every state-bearing component
// persists through. Values are JSON strings; writes are last-write-wins
// per key, there are no transactions across keys.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// LoadJSON reads key into v. A missing key or corrupt value leaves v at its
// fallback (whatever the caller initialized it to) and is not an error:
// state simply starts fresh, matching a terminal whose storage was wiped.
func LoadJSON(ctx context.Context, s Store, key string, v any) error {
	data, err := s.Get(ctx, key)
	if errors.Is(err, ErrKeyNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("store get %q failed: %w", key, err)
	}

	if err := json.Unmarshal([]byte(data), v); err != nil {
		log.Printf("corrupt state under %q, starting from fallback: %v", key, err)
		return nil
	}
	return nil
}

// SaveJSON serializes v under key. Failures are returned, not swallowed;
// callers decide whether to retry or proceed with in-memory state only.
func SaveJSON(ctx context.Context, s Store, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal state for %q failed: %w", key, err)
	}
	if err := s.Set(ctx, key, string(data)); err != nil {
		return fmt.Errorf("store set %q failed: %w", key, err)
	}
	return nil
}
