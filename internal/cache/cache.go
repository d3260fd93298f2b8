// Package cache stores immutable values, such as rendered revision views, outside
// the database.
package cache

import (
	"context"
	"time"
)

// Cache is a key-value cache of JSON encodable values.
type Cache interface {
	// Get decodes the value stored under key into dst. It reports false on a miss.
	Get(ctx context.Context, key string, dst any) (bool, error)
	// Set stores v under key for ttl. A zero ttl keeps the value until evicted.
	Set(ctx context.Context, key string, v any, ttl time.Duration) error
}

var _ Cache = Nop{}

// Nop never stores anything; every Get is a miss.
type Nop struct{}

func (Nop) Get(ctx context.Context, key string, dst any) (bool, error) {
	return false, nil
}

func (Nop) Set(ctx context.Context, key string, v any, ttl time.Duration) error {
	return nil
}
