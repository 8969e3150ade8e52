package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmt-genius/synapcity-hub/internal/cache"
	"github.com/jmt-genius/synapcity-hub/internal/config"
	"github.com/jmt-genius/synapcity-hub/internal/domain"
	"github.com/jmt-genius/synapcity-hub/internal/logger"
)

func newTestCache(t *testing.T) (*cache.LinkCache, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	c, err := cache.New(config.CacheConfig{
		Address: mr.Addr(),
		TTL:     time.Hour,
	}, logger.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	return c, mr
}

func TestCacheRoundTrip(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	image := "https://example.com/img.png"
	link := &domain.EnrichedLink{
		URL:     "https://example.com",
		Title:   "Example",
		Summary: "A short summary.",
		Image:   &image,
		Tags:    []string{"go", "testing"},
	}

	require.NoError(t, c.Set(ctx, link.URL, link))

	got, err := c.Get(ctx, link.URL)
	require.NoError(t, err)
	assert.Equal(t, link, got)
}

func TestCacheMiss(t *testing.T) {
	c, _ := newTestCache(t)

	_, err := c.Get(context.Background(), "https://never-stored.example.com")
	assert.ErrorIs(t, err, cache.ErrMiss)
}

func TestCacheExpiry(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	link := &domain.EnrichedLink{URL: "https://example.com", Title: "Example"}
	require.NoError(t, c.Set(ctx, link.URL, link))

	mr.FastForward(2 * time.Hour)

	_, err := c.Get(ctx, link.URL)
	assert.ErrorIs(t, err, cache.ErrMiss)
}

func TestCacheRequiresAddress(t *testing.T) {
	_, err := cache.New(config.CacheConfig{}, logger.NewNop())
	assert.Error(t, err)
}
