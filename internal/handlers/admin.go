package handlers

import (
	"net/http"
	"yatube/internal/services"
	serrors "yatube/internal/services/errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AdminHandler struct {
	groups *services.GroupService
	log    *zap.Logger
}

func NewAdminHandler(d *Deps) *AdminHandler {
	return &AdminHandler{groups: d.Groups, log: d.Log}
}

func (h *AdminHandler) renderGroups(c *gin.Context, code int, form services.GroupInput, errMsg string) {
	groups, err := h.groups.List(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	Render(c, code, "groups/manage.html", gin.H{
		"Title":  "分组管理",
		"Groups": groups,
		"Form":   form,
		"Error":  errMsg,
	})
}

// Groups 分组列表与新建表单
func (h *AdminHandler) Groups(c *gin.Context) {
	h.renderGroups(c, http.StatusOK, services.GroupInput{}, "")
}

// CreateGroup 新建分组
func (h *AdminHandler) CreateGroup(c *gin.Context) {
	var form services.GroupInput
	if err := c.ShouldBind(&form); err != nil {
		h.renderGroups(c, http.StatusBadRequest, form, "请填写分组名称和 slug")
		return
	}
	if _, err := h.groups.Create(c.Request.Context(), form); err != nil {
		if serrors.Is(err, serrors.ErrValidation) {
			h.renderGroups(c, http.StatusBadRequest, form, errorMessage(err))
			return
		}
		respondError(c, h.log, err)
		return
	}
	c.Redirect(http.StatusFound, "/admin/groups")
}

// DeleteGroup 删除分组，帖子保留
func (h *AdminHandler) DeleteGroup(c *gin.Context) {
	if err := h.groups.Delete(c.Request.Context(), c.Param("slug")); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.Redirect(http.StatusFound, "/admin/groups")
}
