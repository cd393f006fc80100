package kv

import "context"

// Repository is the key-value persistence port. Values are opaque strings,
// JSON documents in practice. Get returns domain.ErrNotFound for a missing key.
type Repository interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}
