package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetEnvAsDuration(t *testing.T) {
	t.Setenv("FEED_CACHE_TTL", "45")
	assert.Equal(t, 45*time.Second, getEnvAsDuration("FEED_CACHE_TTL", time.Second))

	t.Setenv("FEED_CACHE_TTL", "2m")
	assert.Equal(t, 2*time.Minute, getEnvAsDuration("FEED_CACHE_TTL", time.Second))

	t.Setenv("FEED_CACHE_TTL", "soon")
	assert.Equal(t, time.Second, getEnvAsDuration("FEED_CACHE_TTL", time.Second))
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("POSTS_PER_PAGE", "")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("FOLLOW_GRAPH", "")

	cfg := Load()
	assert.Equal(t, 10, cfg.PostsPerPage)
	assert.Equal(t, 20*time.Second, cfg.FeedCacheTTL)
	assert.Equal(t, "sql", cfg.FollowGraph)
	assert.Equal(t, "sqlite", cfg.DBDriver)
}

func TestLoadRejectsNonPositivePageSize(t *testing.T) {
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("POSTS_PER_PAGE", "0")

	cfg := Load()
	assert.Equal(t, 10, cfg.PostsPerPage)
}
