package handlers

import (
	"errors"
	"net/http"
	"yatube/internal/middleware"
	"yatube/internal/services"
	serrors "yatube/internal/services/errors"
	"yatube/internal/utils"
	"yatube/internal/views"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Deps 处理器共享的依赖，在启动时组装一次
type Deps struct {
	Users       *services.UserService
	Follows     *services.FollowService
	Feed        *services.FeedService
	FeedCache   *services.FeedCache
	Posts       *services.PostService
	Comments    *services.CommentService
	Groups      *services.GroupService
	Syndication *services.SyndicationService
	Fragments   *views.Fragments
	Log         *zap.Logger
}

// Render helper to inject common variables like 'current user'
func Render(c *gin.Context, code int, name string, obj gin.H) {
	if obj == nil {
		obj = gin.H{}
	}

	// Inject Current User
	if user := middleware.CurrentUser(c); user != nil {
		obj["CurrentUser"] = user
	}
	obj["CurrentPath"] = c.Request.URL.Path

	c.HTML(code, name, obj)
}

// Error helper
func RenderError(c *gin.Context, code int, message string) {
	Render(c, code, "error.html", gin.H{"Error": message, "Code": code})
}

// statusFor 服务错误码到 HTTP 状态码
func statusFor(code serrors.ErrorCode) int {
	switch code {
	case serrors.ErrNotFound:
		return http.StatusNotFound
	case serrors.ErrValidation:
		return http.StatusBadRequest
	case serrors.ErrPermission:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// respondError 按错误类型渲染错误页，存储错误不向用户暴露细节
func respondError(c *gin.Context, log *zap.Logger, err error) {
	status := statusFor(serrors.GetErrorCode(err))
	if status >= http.StatusInternalServerError {
		_ = c.Error(err)
		log.Error("Request failed", zap.String("path", c.Request.URL.Path), zap.Error(err))
		RenderError(c, status, "服务器开小差了，请稍后再试")
		return
	}
	RenderError(c, status, errorMessage(err))
}

// errorMessage 面向用户的错误描述
func errorMessage(err error) string {
	var se *serrors.ServiceError
	if errors.As(err, &se) {
		return se.Message
	}
	return err.Error()
}

// pageNumber 解析 ?page= 参数
func pageNumber(c *gin.Context) int {
	return utils.ParsePage(c.Query("page"))
}
