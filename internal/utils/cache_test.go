package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTTLCache(t *testing.T) {
	c, err := NewTTLCache[string](2)
	require.NoError(t, err)

	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	c.SetClock(func() time.Time { return now })

	c.Set("a", "alpha", time.Minute)
	got, ok := c.Get("a")
	assert.True(t, ok)
	assert.Equal(t, "alpha", got)

	now = now.Add(2 * time.Minute)
	_, ok = c.Get("a")
	assert.False(t, ok, "expired entry must not be served")
	assert.Zero(t, c.Len())
}

func TestTTLCacheEvictsLeastRecentlyUsed(t *testing.T) {
	c, err := NewTTLCache[int](2)
	require.NoError(t, err)

	c.Set("a", 1, time.Minute)
	c.Set("b", 2, time.Minute)
	c.Get("a")
	c.Set("c", 3, time.Minute)

	_, ok := c.Get("b")
	assert.False(t, ok)
	_, ok = c.Get("a")
	assert.True(t, ok)

	c.Purge()
	assert.Zero(t, c.Len())
}
