package services

import (
	"sync"
	"testing"
	"yatube/internal/models"
	serrors "yatube/internal/services/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFollowIsIdempotent(t *testing.T) {
	env := newTestEnv(t, 10)
	a := env.user(t, "a")
	env.user(t, "b")

	for i := 0; i < 3; i++ {
		_, err := env.follows.Follow(ctx, a, "b")
		require.NoError(t, err)
	}

	var count int64
	require.NoError(t, env.db.Model(&models.Follow{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	_, err := env.follows.Unfollow(ctx, a, "b")
	require.NoError(t, err)
	_, err = env.follows.Unfollow(ctx, a, "b")
	require.NoError(t, err, "unfollowing an absent edge is a no-op")

	require.NoError(t, env.db.Model(&models.Follow{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestConcurrentFollowCreatesSingleEdge(t *testing.T) {
	env := newTestEnv(t, 10)
	a := env.user(t, "a")
	env.user(t, "b")

	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := env.follows.Follow(ctx, a, "b")
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		assert.NoError(t, err)
	}

	var count int64
	require.NoError(t, env.db.Model(&models.Follow{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestSelfFollowIsRejected(t *testing.T) {
	env := newTestEnv(t, 10)
	a := env.user(t, "a")

	_, err := env.follows.Follow(ctx, a, "a")
	assert.True(t, serrors.Is(err, serrors.ErrValidation))

	following, err := env.follows.IsFollowing(ctx, a, a)
	require.NoError(t, err)
	assert.False(t, following)
}

func TestFollowUnknownAuthor(t *testing.T) {
	env := newTestEnv(t, 10)
	a := env.user(t, "a")

	_, err := env.follows.Follow(ctx, a, "nobody")
	assert.True(t, serrors.Is(err, serrors.ErrNotFound))

	_, err = env.follows.Follow(ctx, nil, "a")
	assert.True(t, serrors.Is(err, serrors.ErrPermission))
}

func TestFollowStateAndCounts(t *testing.T) {
	env := newTestEnv(t, 10)
	a := env.user(t, "a")
	b := env.user(t, "b")
	c := env.user(t, "c")

	_, err := env.follows.Follow(ctx, a, "b")
	require.NoError(t, err)
	_, err = env.follows.Follow(ctx, c, "b")
	require.NoError(t, err)

	following, err := env.follows.IsFollowing(ctx, a, b)
	require.NoError(t, err)
	assert.True(t, following)

	following, err = env.follows.IsFollowing(ctx, b, a)
	require.NoError(t, err)
	assert.False(t, following, "edges are directed")

	following, err = env.follows.IsFollowing(ctx, nil, b)
	require.NoError(t, err)
	assert.False(t, following)

	followers, followingCount, err := env.follows.Counts(ctx, b)
	require.NoError(t, err)
	assert.Equal(t, int64(2), followers)
	assert.Zero(t, followingCount)

	targets, err := env.follows.TargetsOf(ctx, a)
	require.NoError(t, err)
	assert.Equal(t, []uint{b.ID}, targets)
}

func TestSQLFollowGraphRejectsZeroIDs(t *testing.T) {
	env := newTestEnv(t, 10)
	graph := NewSQLFollowGraph(env.db)

	assert.True(t, serrors.Is(graph.Follow(ctx, 0, 1), serrors.ErrValidation))
	assert.True(t, serrors.Is(graph.Unfollow(ctx, 1, 0), serrors.ErrValidation))
}
