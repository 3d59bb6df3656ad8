package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPageCacheSetGet(t *testing.T) {
	cache := NewPageCache(time.Minute)
	ctx := context.Background()

	page := CachedPage{Status: 200, ContentType: "application/json", Body: []byte(`{"ok":true}`)}
	cache.Set(ctx, "/?page=1", page)

	got, ok := cache.Get(ctx, "/?page=1")
	require.True(t, ok)
	assert.Equal(t, page.Body, got.Body)
	assert.Equal(t, page.ContentType, got.ContentType)
}

func TestPageCacheKeyIncludesQuery(t *testing.T) {
	cache := NewPageCache(time.Minute)
	ctx := context.Background()

	cache.Set(ctx, "/?page=1", CachedPage{Status: 200, Body: []byte("page1")})

	_, ok := cache.Get(ctx, "/?page=2")
	assert.False(t, ok, "страницы пагинации не должны смешиваться")
}

func TestPageCacheExpiry(t *testing.T) {
	cache := NewPageCache(10 * time.Millisecond)
	ctx := context.Background()

	cache.Set(ctx, "/", CachedPage{Status: 200, Body: []byte("stale")})
	time.Sleep(20 * time.Millisecond)

	_, ok := cache.Get(ctx, "/")
	assert.False(t, ok)
}

func TestPageCacheClear(t *testing.T) {
	cache := NewPageCache(time.Minute)
	ctx := context.Background()

	cache.Set(ctx, "/", CachedPage{Status: 200, Body: []byte("cached")})
	require.NoError(t, cache.Clear(ctx))

	_, ok := cache.Get(ctx, "/")
	assert.False(t, ok)
}
