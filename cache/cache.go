// Package cache holds rendered public listings so repeated page loads do not
// hit the database. Redis backs it when configured; otherwise nothing is cached.
package cache

import (
	"context"
	"time"
)

// Cache stores opaque values by key. Implementations must be safe for
// concurrent use.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// DeletePrefix removes every key starting with prefix.
	DeletePrefix(ctx context.Context, prefix string) error
	Close() error
}

type Error string

func (e Error) Error() string {
	return string(e)
}

const ErrCacheMiss Error = "cache miss"

// PublicPrefix namespaces every key derived from public listings. Any write
// in the back office drops the whole namespace.
const PublicPrefix = "public:"

// NoopCache never stores anything.
type NoopCache struct{}

func NewNoopCache() *NoopCache { return &NoopCache{} }

func (NoopCache) Get(context.Context, string) ([]byte, error) { return nil, ErrCacheMiss }

func (NoopCache) Set(context.Context, string, []byte, time.Duration) error { return nil }

func (NoopCache) DeletePrefix(context.Context, string) error { return nil }

func (NoopCache) Close() error { return nil }
