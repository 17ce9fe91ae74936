package handlers

import (
	"html/template"
	"net/http"
	"yatube/internal/middleware"
	"yatube/internal/services"
	"yatube/internal/views"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type FeedHandler struct {
	feed      *services.FeedService
	cache     *services.FeedCache
	fragments *views.Fragments
	log       *zap.Logger
}

func NewFeedHandler(d *Deps) *FeedHandler {
	return &FeedHandler{
		feed:      d.Feed,
		cache:     d.FeedCache,
		fragments: d.Fragments,
		log:       d.Log,
	}
}

// renderPostList 把一页帖子渲染成与访客无关的 HTML 片段
func renderPostList(f *views.Fragments, page *services.FeedPage) (template.HTML, error) {
	return f.Render("post_list", gin.H{"Posts": page.Posts, "Page": page.Page})
}

// Index 全站信息流 /，整页片段按页码缓存
func (h *FeedHandler) Index(c *gin.Context) {
	number := pageNumber(c)

	entry, ok := h.cache.Get(number)
	if !ok {
		// 先取 epoch 再查库，查询期间发生的失效会让这次回填作废
		epoch := h.cache.Epoch()
		page, err := h.feed.Query(c.Request.Context(), services.GlobalFeed(), nil, number)
		if err != nil {
			respondError(c, h.log, err)
			return
		}
		body, err := renderPostList(h.fragments, page)
		if err != nil {
			respondError(c, h.log, err)
			return
		}
		entry = services.FeedCacheEntry{Body: body, Page: page.Page}
		h.cache.Set(number, entry, epoch)
	}

	Render(c, http.StatusOK, "posts/index.html", gin.H{
		"Title": "最新帖子",
		"Feed":  entry.Body,
		"Page":  entry.Page,
	})
}

// GroupPosts 分组信息流 /group/:slug
func (h *FeedHandler) GroupPosts(c *gin.Context) {
	page, err := h.feed.Query(c.Request.Context(), services.GroupFeed(c.Param("slug")), nil, pageNumber(c))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	body, err := renderPostList(h.fragments, page)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	Render(c, http.StatusOK, "posts/group_list.html", gin.H{
		"Title": page.Group.Title,
		"Group": page.Group,
		"Feed":  body,
		"Page":  page.Page,
	})
}

// FollowIndex 关注作者的帖子 /follow
func (h *FeedHandler) FollowIndex(c *gin.Context) {
	viewer := middleware.CurrentUser(c)
	page, err := h.feed.Query(c.Request.Context(), services.FollowFeed(), viewer, pageNumber(c))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	body, err := renderPostList(h.fragments, page)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	Render(c, http.StatusOK, "posts/follow.html", gin.H{
		"Title": "关注",
		"Feed":  body,
		"Page":  page.Page,
	})
}
