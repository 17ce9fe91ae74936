package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"yatube/internal/middleware"
	"yatube/internal/services"
	serrors "yatube/internal/services/errors"
	"yatube/internal/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// postForm 发帖/编辑表单
type postForm struct {
	Text  string `form:"text" binding:"required,notblank"`
	Group string `form:"group"`
	Image string `form:"image" binding:"max=255"`
}

func (f postForm) input() (services.PostInput, error) {
	in := services.PostInput{Text: f.Text, Image: f.Image}
	if g := strings.TrimSpace(f.Group); g != "" {
		id, ok := utils.StringToUint(g)
		if !ok {
			return in, serrors.New(serrors.ErrValidation, "所选分组不存在")
		}
		in.GroupID = &id
	}
	return in, nil
}

type commentForm struct {
	Text string `form:"text" binding:"required,notblank"`
}

type PostHandler struct {
	posts    *services.PostService
	comments *services.CommentService
	groups   *services.GroupService
	log      *zap.Logger
}

func NewPostHandler(d *Deps) *PostHandler {
	return &PostHandler{
		posts:    d.Posts,
		comments: d.Comments,
		groups:   d.Groups,
		log:      d.Log,
	}
}

func postPath(id uint) string {
	return fmt.Sprintf("/posts/%d", id)
}

// postID 解析路由中的帖子 ID，非法 ID 直接 404
func postID(c *gin.Context) (uint, bool) {
	id, ok := utils.StringToUint(c.Param("id"))
	if !ok {
		RenderError(c, http.StatusNotFound, "帖子不存在")
	}
	return id, ok
}

func (h *PostHandler) renderForm(c *gin.Context, code int, form postForm, postID uint, errMsg string) {
	groups, err := h.groups.List(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	title := "新帖子"
	if postID != 0 {
		title = "编辑帖子"
	}
	Render(c, code, "posts/create_post.html", gin.H{
		"Title":  title,
		"Form":   form,
		"Groups": groups,
		"IsEdit": postID != 0,
		"PostID": postID,
		"Error":  errMsg,
	})
}

// ShowCreate GET /create
func (h *PostHandler) ShowCreate(c *gin.Context) {
	h.renderForm(c, http.StatusOK, postForm{}, 0, "")
}

// Create POST /create，成功后跳转到作者主页
func (h *PostHandler) Create(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var form postForm
	if err := c.ShouldBind(&form); err != nil {
		h.renderForm(c, http.StatusBadRequest, form, 0, "请填写帖子内容")
		return
	}
	in, err := form.input()
	if err == nil {
		_, err = h.posts.Create(c.Request.Context(), user, in)
	}
	if err != nil {
		if serrors.Is(err, serrors.ErrValidation) {
			h.renderForm(c, http.StatusBadRequest, form, 0, errorMessage(err))
			return
		}
		respondError(c, h.log, err)
		return
	}

	c.Redirect(http.StatusFound, profilePath(user.Username))
}

// Detail GET /posts/:id
func (h *PostHandler) Detail(c *gin.Context) {
	id, ok := postID(c)
	if !ok {
		return
	}
	h.renderDetail(c, http.StatusOK, id, "", "")
}

func (h *PostHandler) renderDetail(c *gin.Context, code int, id uint, errMsg, commentText string) {
	detail, err := h.posts.Detail(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	viewer := middleware.CurrentUser(c)
	Render(c, code, "posts/post_detail.html", gin.H{
		"Title":       detail.Post.Excerpt(),
		"Detail":      detail,
		"IsAuthor":    viewer != nil && viewer.ID == detail.Post.UserID,
		"Error":       errMsg,
		"CommentText": commentText,
	})
}

// ShowEdit GET /posts/:id/edit，非作者跳回详情页
func (h *PostHandler) ShowEdit(c *gin.Context) {
	id, ok := postID(c)
	if !ok {
		return
	}
	post, err := h.posts.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	if post.UserID != middleware.CurrentUser(c).ID {
		c.Redirect(http.StatusFound, postPath(post.ID))
		return
	}

	form := postForm{Text: post.Text, Image: post.Image}
	if post.GroupID != nil {
		form.Group = fmt.Sprintf("%d", *post.GroupID)
	}
	h.renderForm(c, http.StatusOK, form, post.ID, "")
}

// Update POST /posts/:id/edit
func (h *PostHandler) Update(c *gin.Context) {
	id, ok := postID(c)
	if !ok {
		return
	}

	var form postForm
	if err := c.ShouldBind(&form); err != nil {
		h.renderForm(c, http.StatusBadRequest, form, id, "请填写帖子内容")
		return
	}
	in, err := form.input()
	if err == nil {
		_, err = h.posts.Update(c.Request.Context(), middleware.CurrentUser(c), id, in)
	}
	switch {
	case err == nil:
		c.Redirect(http.StatusFound, postPath(id))
	case serrors.Is(err, serrors.ErrPermission):
		c.Redirect(http.StatusFound, postPath(id))
	case serrors.Is(err, serrors.ErrValidation):
		h.renderForm(c, http.StatusBadRequest, form, id, errorMessage(err))
	default:
		respondError(c, h.log, err)
	}
}

// Delete POST /posts/:id/delete
func (h *PostHandler) Delete(c *gin.Context) {
	id, ok := postID(c)
	if !ok {
		return
	}
	user := middleware.CurrentUser(c)
	if err := h.posts.Delete(c.Request.Context(), user, id); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.Redirect(http.StatusFound, profilePath(user.Username))
}

// AddComment POST /posts/:id/comment
func (h *PostHandler) AddComment(c *gin.Context) {
	id, ok := postID(c)
	if !ok {
		return
	}

	var form commentForm
	if err := c.ShouldBind(&form); err != nil {
		h.renderDetail(c, http.StatusBadRequest, id, "评论内容不能为空", form.Text)
		return
	}
	if _, err := h.comments.Add(c.Request.Context(), middleware.CurrentUser(c), id, form.Text); err != nil {
		if serrors.Is(err, serrors.ErrValidation) {
			h.renderDetail(c, http.StatusBadRequest, id, errorMessage(err), form.Text)
			return
		}
		respondError(c, h.log, err)
		return
	}
	c.Redirect(http.StatusFound, postPath(id))
}

// DeleteComment POST /comments/:id/delete
func (h *PostHandler) DeleteComment(c *gin.Context) {
	id, ok := utils.StringToUint(c.Param("id"))
	if !ok {
		RenderError(c, http.StatusNotFound, "评论不存在")
		return
	}
	comment, err := h.comments.Delete(c.Request.Context(), middleware.CurrentUser(c), id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.Redirect(http.StatusFound, postPath(comment.PostID))
}
