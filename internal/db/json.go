package db

import (
	"context"
	"encoding/json"
	"fmt"
)

// GetJSON decodes the JSON value stored under key into v.
// Returns false (and leaves v untouched) when the key is absent.
func GetJSON(ctx context.Context, kv KV, key string, v any) (bool, error) {
	raw, ok, err := kv.Get(ctx, key)
	if err != nil || !ok {
		return false, err
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		return false, fmt.Errorf("GetJSON %s: %w", key, err)
	}
	return true, nil
}

// SetJSON encodes v as JSON and stores it under key.
func SetJSON(ctx context.Context, kv KV, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("SetJSON %s: %w", key, err)
	}
	return kv.Set(ctx, key, string(b))
}
