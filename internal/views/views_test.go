package views_test

import (
	"strings"
	"testing"
	"time"
	"yatube/internal/models"
	"yatube/internal/services"
	"yatube/internal/views"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRendererParsesAllPages(t *testing.T) {
	r, err := views.NewRenderer()
	require.NoError(t, err)
	require.NotNil(t, r)
}

func TestPostListFragment(t *testing.T) {
	fragments, err := views.NewFragments()
	require.NoError(t, err)

	groupID := uint(3)
	posts := []models.Post{
		{
			ID:        7,
			Text:      "**hello** fragment",
			User:      models.User{Username: "leo", FirstName: "Leo"},
			GroupID:   &groupID,
			Group:     &models.Group{ID: groupID, Title: "Books", Slug: "books"},
			CreatedAt: time.Date(2024, 2, 1, 8, 30, 0, 0, time.UTC),
		},
	}
	page := services.NewPage(11, 10, 1)

	html, err := fragments.Render("post_list", map[string]interface{}{"Posts": posts, "Page": page})
	require.NoError(t, err)

	out := string(html)
	assert.Contains(t, out, "<strong>hello</strong> fragment")
	assert.Contains(t, out, `href="/posts/7"`)
	assert.Contains(t, out, `href="/group/books"`)
	assert.Contains(t, out, `href="/profile/leo"`)
	assert.Contains(t, out, "?page=2")
}

func TestPostListFragmentEmpty(t *testing.T) {
	fragments, err := views.NewFragments()
	require.NoError(t, err)

	html, err := fragments.Render("post_list", map[string]interface{}{
		"Posts": []models.Post{},
		"Page":  services.NewPage(0, 10, 1),
	})
	require.NoError(t, err)
	assert.Contains(t, string(html), "暂无帖子")
	assert.False(t, strings.Contains(string(html), "paginator"), "single page has no paginator")
}

func TestRenderUnknownFragment(t *testing.T) {
	fragments, err := views.NewFragments()
	require.NoError(t, err)

	_, err = fragments.Render("missing", nil)
	assert.Error(t, err)
}
