package services

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestFeedCache(t *testing.T) *FeedCache {
	t.Helper()
	c, err := NewFeedCache(16, 20*time.Second, nil)
	require.NoError(t, err)
	return c
}

func TestFeedCacheGetSet(t *testing.T) {
	c := newTestFeedCache(t)

	_, ok := c.Get(1)
	assert.False(t, ok)

	entry := FeedCacheEntry{Body: "<article>hi</article>", Page: NewPage(1, 10, 1)}
	assert.True(t, c.Set(1, entry, c.Epoch()))

	got, ok := c.Get(1)
	require.True(t, ok)
	assert.Equal(t, entry, got)

	_, ok = c.Get(2)
	assert.False(t, ok, "pages are cached independently")
}

func TestFeedCacheExpires(t *testing.T) {
	c := newTestFeedCache(t)
	now := time.Now()
	c.SetClock(func() time.Time { return now })

	c.Set(1, FeedCacheEntry{Body: "x"}, c.Epoch())
	now = now.Add(19 * time.Second)
	_, ok := c.Get(1)
	assert.True(t, ok)

	now = now.Add(2 * time.Second)
	_, ok = c.Get(1)
	assert.False(t, ok)
}

func TestFeedCacheInvalidateDropsAllPages(t *testing.T) {
	c := newTestFeedCache(t)
	epoch := c.Epoch()
	c.Set(1, FeedCacheEntry{Body: "one"}, epoch)
	c.Set(2, FeedCacheEntry{Body: "two"}, epoch)

	c.Invalidate("post created")

	_, ok := c.Get(1)
	assert.False(t, ok)
	_, ok = c.Get(2)
	assert.False(t, ok)
	assert.Equal(t, epoch+1, c.Epoch())
}

func TestFeedCacheInvalidationWinsOverStaleFill(t *testing.T) {
	c := newTestFeedCache(t)

	// 读请求在失效前开始渲染
	epoch := c.Epoch()
	c.Invalidate("post deleted")

	assert.False(t, c.Set(1, FeedCacheEntry{Body: "stale"}, epoch))
	_, ok := c.Get(1)
	assert.False(t, ok, "stale fill must not repopulate the cache")

	assert.True(t, c.Set(1, FeedCacheEntry{Body: "fresh"}, c.Epoch()))
}

func TestFeedCacheConcurrentAccess(t *testing.T) {
	c := newTestFeedCache(t)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			c.Set(i%3+1, FeedCacheEntry{Body: "x"}, c.Epoch())
			c.Get(i%3 + 1)
		}(i)
		go func() {
			defer wg.Done()
			c.Invalidate("concurrent write")
		}()
	}
	wg.Wait()

	// 最后一次失效之后没有写入，缓存必须为空
	c.Invalidate("final")
	for page := 1; page <= 3; page++ {
		_, ok := c.Get(page)
		assert.False(t, ok)
	}
}
