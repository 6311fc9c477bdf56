package cache

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mapCache struct {
	mu     sync.Mutex
	values map[string][]byte
	setErr error
}

func newMapCache() *mapCache {
	return &mapCache{values: map[string][]byte{}}
}

func (m *mapCache) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if v, ok := m.values[key]; ok {
		return v, nil
	}
	return nil, ErrCacheMiss
}

func (m *mapCache) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	if m.setErr != nil {
		return m.setErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

func (m *mapCache) DeletePrefix(_ context.Context, prefix string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for k := range m.values {
		if strings.HasPrefix(k, prefix) {
			delete(m.values, k)
		}
	}
	return nil
}

func (m *mapCache) Close() error { return nil }

type listing struct {
	Names []string `json:"names"`
}

func TestGetOrSetLoadsOnceThenHits(t *testing.T) {
	ctx := context.Background()
	c := newMapCache()
	calls := 0
	load := func() (listing, error) {
		calls++
		return listing{Names: []string{"Hub Centro"}}, nil
	}

	first, err := GetOrSet(ctx, c, PublicPrefix+"hubs", time.Minute, load)
	require.NoError(t, err)
	second, err := GetOrSet(ctx, c, PublicPrefix+"hubs", time.Minute, load)
	require.NoError(t, err)

	assert.Equal(t, 1, calls)
	assert.Equal(t, first, second)

	require.NoError(t, c.DeletePrefix(ctx, PublicPrefix))
	_, err = GetOrSet(ctx, c, PublicPrefix+"hubs", time.Minute, load)
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestGetOrSetPropagatesLoadErrors(t *testing.T) {
	c := newMapCache()
	boom := errors.New("db down")

	_, err := GetOrSet(context.Background(), c, "k", time.Minute, func() (listing, error) {
		return listing{}, boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Empty(t, c.values)
}

func TestGetOrSetIgnoresCacheFailures(t *testing.T) {
	c := newMapCache()
	c.setErr = errors.New("redis unavailable")
	c.values["bad"] = []byte("{not json")

	v, err := GetOrSet(context.Background(), c, "bad", time.Minute, func() (listing, error) {
		return listing{Names: []string{"fresh"}}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"fresh"}, v.Names)
}

func TestNoopCacheAlwaysMisses(t *testing.T) {
	ctx := context.Background()
	c := NewNoopCache()

	require.NoError(t, c.Set(ctx, "k", []byte("v"), time.Minute))
	_, err := c.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrCacheMiss)
	assert.NoError(t, c.DeletePrefix(ctx, PublicPrefix))
	assert.NoError(t, c.Close())
}

func TestNewRedisCacheRequiresURL(t *testing.T) {
	_, err := NewRedisCache("", "iniva:", time.Minute)
	assert.Error(t, err)

	_, err = NewRedisCache("://bad", "iniva:", time.Minute)
	assert.Error(t, err)
}
