package handlers

import (
	"fmt"
	"net/http"
	"net/url"
	"yatube/internal/middleware"
	"yatube/internal/services"
	"yatube/internal/views"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type UserHandler struct {
	feed      *services.FeedService
	follows   *services.FollowService
	fragments *views.Fragments
	log       *zap.Logger
}

func NewUserHandler(d *Deps) *UserHandler {
	return &UserHandler{
		feed:      d.Feed,
		follows:   d.Follows,
		fragments: d.Fragments,
		log:       d.Log,
	}
}

func profilePath(username string) string {
	return fmt.Sprintf("/profile/%s", url.PathEscape(username))
}

// Profile - 用户主页 /profile/:username
func (h *UserHandler) Profile(c *gin.Context) {
	ctx := c.Request.Context()
	viewer := middleware.CurrentUser(c)

	page, err := h.feed.Query(ctx, services.AuthorFeed(c.Param("username")), viewer, pageNumber(c))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	author := page.Author

	following, err := h.follows.IsFollowing(ctx, viewer, author)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	followers, followingCount, err := h.follows.Counts(ctx, author)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	body, err := renderPostList(h.fragments, page)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	Render(c, http.StatusOK, "posts/profile.html", gin.H{
		"Title":          author.DisplayName(),
		"Author":         author,
		"IsSelf":         viewer != nil && viewer.ID == author.ID,
		"Following":      following,
		"Followers":      followers,
		"FollowingCount": followingCount,
		"Feed":           body,
		"Page":           page.Page,
	})
}

// Follow POST /profile/:username/follow
func (h *UserHandler) Follow(c *gin.Context) {
	username := c.Param("username")
	if _, err := h.follows.Follow(c.Request.Context(), middleware.CurrentUser(c), username); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.Redirect(http.StatusFound, profilePath(username))
}

// Unfollow POST /profile/:username/unfollow
func (h *UserHandler) Unfollow(c *gin.Context) {
	username := c.Param("username")
	if _, err := h.follows.Unfollow(c.Request.Context(), middleware.CurrentUser(c), username); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.Redirect(http.StatusFound, profilePath(username))
}
