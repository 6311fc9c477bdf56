package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog/log"
)

// GetOrSet returns the cached value under key, or calls load, stores its
// result and returns it. Cache failures are logged and never fail the call.
func GetOrSet[T any](ctx context.Context, c Cache, key string, ttl time.Duration, load func() (T, error)) (T, error) {
	if data, err := c.Get(ctx, key); err == nil {
		var value T
		if err := json.Unmarshal(data, &value); err == nil {
			return value, nil
		}
	}

	value, err := load()
	if err != nil {
		return value, err
	}

	data, err := json.Marshal(value)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("cache encode")
		return value, nil
	}
	if err := c.Set(ctx, key, data, ttl); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("cache set")
	}
	return value, nil
}
