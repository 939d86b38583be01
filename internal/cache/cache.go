package cache

import (
	"context"
	"time"
)

// Cache stores serialized view payloads.
type Cache interface {
	// Get returns the stored bytes and whether the key was present
	Get(ctx context.Context, key string) ([]byte, bool)

	// Set stores value under key; a zero ttl uses the store default
	Set(ctx context.Context, key string, value []byte, ttl time.Duration)

	// DeleteByPrefix removes every key starting with prefix
	DeleteByPrefix(ctx context.Context, prefix string)
}

// PrefixView namespaces cached view payloads.
const PrefixView = "view:v1:"
