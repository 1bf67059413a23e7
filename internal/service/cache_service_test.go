package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/noah-isme/studyhive-api/pkg/errors"
)

type memoryCache struct {
	items  map[string][]byte
	ttls   map[string]time.Duration
	getErr error
}

func newMemoryCache() *memoryCache {
	return &memoryCache{items: map[string][]byte{}, ttls: map[string]time.Duration{}}
}

func (m *memoryCache) Get(ctx context.Context, key string, dest interface{}) error {
	if m.getErr != nil {
		return m.getErr
	}
	raw, ok := m.items[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	return json.Unmarshal(raw, dest)
}

func (m *memoryCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.items[key] = raw
	m.ttls[key] = ttl
	return nil
}

func (m *memoryCache) Delete(ctx context.Context, keys ...string) error {
	for _, k := range keys {
		delete(m.items, k)
	}
	return nil
}

func TestCacheServiceRoundTrip(t *testing.T) {
	repo := newMemoryCache()
	svc := NewCacheService(repo, NewMetricsService(), 0, nil, true)

	var out map[string]int
	hit, err := svc.Get(context.Background(), "k", &out)
	require.NoError(t, err)
	assert.False(t, hit)

	require.NoError(t, svc.Set(context.Background(), "k", map[string]int{"users": 3}, 0))
	assert.Equal(t, 30*time.Second, repo.ttls["k"])

	hit, err = svc.Get(context.Background(), "k", &out)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, 3, out["users"])

	svc.Invalidate(context.Background(), "k")
	hit, _ = svc.Get(context.Background(), "k", &out)
	assert.False(t, hit)
}

func TestCacheServiceDisabled(t *testing.T) {
	repo := newMemoryCache()
	svc := NewCacheService(repo, nil, time.Minute, nil, false)

	require.NoError(t, svc.Set(context.Background(), "k", 1, 0))
	assert.Empty(t, repo.items)

	var out int
	hit, err := svc.Get(context.Background(), "k", &out)
	assert.NoError(t, err)
	assert.False(t, hit)
}

func TestCacheServiceSurfacesBackendErrors(t *testing.T) {
	repo := newMemoryCache()
	repo.getErr = errors.New("connection refused")
	svc := NewCacheService(repo, nil, time.Minute, nil, true)

	var out int
	hit, err := svc.Get(context.Background(), "k", &out)
	assert.Error(t, err)
	assert.False(t, hit)
}
