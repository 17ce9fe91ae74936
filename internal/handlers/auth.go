package handlers

import (
	"net/http"
	"strings"
	"yatube/internal/middleware"
	"yatube/internal/services"
	serrors "yatube/internal/services/errors"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type loginForm struct {
	Username string `form:"username" binding:"required,notblank"`
	Password string `form:"password" binding:"required"`
	Next     string `form:"next"`
}

type AuthHandler struct {
	users *services.UserService
	log   *zap.Logger
}

func NewAuthHandler(d *Deps) *AuthHandler {
	return &AuthHandler{users: d.Users, log: d.Log}
}

// safeNext 只允许站内跳转
func safeNext(next string) string {
	if strings.HasPrefix(next, "/") && !strings.HasPrefix(next, "//") {
		return next
	}
	return "/"
}

func login(c *gin.Context, userID uint) error {
	session := sessions.Default(c)
	session.Set(middleware.SessionUserKey, userID)
	return session.Save()
}

func (h *AuthHandler) ShowRegister(c *gin.Context) {
	Render(c, http.StatusOK, "users/signup.html", gin.H{"Title": "注册", "Form": services.SignupInput{}})
}

// Register 注册成功后直接登录
func (h *AuthHandler) Register(c *gin.Context) {
	var form services.SignupInput
	if err := c.ShouldBind(&form); err != nil {
		form.Password = ""
		Render(c, http.StatusBadRequest, "users/signup.html", gin.H{"Title": "注册", "Form": form, "Error": "请检查用户名、邮箱和密码（至少 8 位）"})
		return
	}

	user, err := h.users.Register(c.Request.Context(), form)
	if err != nil {
		if serrors.Is(err, serrors.ErrValidation) {
			form.Password = ""
			Render(c, http.StatusBadRequest, "users/signup.html", gin.H{"Title": "注册", "Form": form, "Error": errorMessage(err)})
			return
		}
		respondError(c, h.log, err)
		return
	}

	if err := login(c, user.ID); err != nil {
		respondError(c, h.log, serrors.Wrap(serrors.ErrStore, "保存会话失败", err))
		return
	}
	c.Redirect(http.StatusFound, "/")
}

func (h *AuthHandler) ShowLogin(c *gin.Context) {
	Render(c, http.StatusOK, "users/login.html", gin.H{"Title": "登录", "Next": c.Query("next"), "Username": ""})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var form loginForm
	if err := c.ShouldBind(&form); err != nil {
		Render(c, http.StatusBadRequest, "users/login.html", gin.H{"Title": "登录", "Next": form.Next, "Username": form.Username, "Error": "请输入用户名和密码"})
		return
	}

	user, err := h.users.Authenticate(c.Request.Context(), form.Username, form.Password)
	if err != nil {
		if serrors.Is(err, serrors.ErrValidation) {
			Render(c, http.StatusBadRequest, "users/login.html", gin.H{"Title": "登录", "Next": form.Next, "Username": form.Username, "Error": errorMessage(err)})
			return
		}
		respondError(c, h.log, err)
		return
	}

	if err := login(c, user.ID); err != nil {
		respondError(c, h.log, serrors.Wrap(serrors.ErrStore, "保存会话失败", err))
		return
	}
	h.log.Info("User logged in", zap.Uint("user_id", user.ID))
	c.Redirect(http.StatusFound, safeNext(form.Next))
}

func (h *AuthHandler) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	_ = session.Save()
	c.Redirect(http.StatusFound, "/")
}
