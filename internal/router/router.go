package router

import (
	"fmt"
	"yatube/internal/handlers"
	"yatube/internal/middleware"
	"yatube/internal/utils"
	"yatube/internal/views"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

const sessionName = "yatube_session"

// Setup 组装引擎：会话、模板、表单校验、中间件和路由
func Setup(r *gin.Engine, d *handlers.Deps, sessionSecret string) error {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := utils.RegisterValidators(v); err != nil {
			return fmt.Errorf("register validators: %w", err)
		}
	}

	renderer, err := views.NewRenderer()
	if err != nil {
		return err
	}
	r.HTMLRender = renderer

	store := cookie.NewStore([]byte(sessionSecret))
	store.Options(sessions.Options{Path: "/", MaxAge: 86400 * 30, HttpOnly: true})
	r.Use(sessions.Sessions(sessionName, store))

	r.Use(middleware.RequestLogger(d.Log))
	r.Use(middleware.LoadUser(d.Users))

	RegisterRoutes(r, d)
	return nil
}

func RegisterRoutes(r *gin.Engine, d *handlers.Deps) {
	// Handlers
	authHandler := handlers.NewAuthHandler(d)
	feedHandler := handlers.NewFeedHandler(d)
	postHandler := handlers.NewPostHandler(d)
	userHandler := handlers.NewUserHandler(d)
	rssHandler := handlers.NewRSSHandler(d)
	adminHandler := handlers.NewAdminHandler(d)

	// 公共路由 (Public Routes)
	r.GET("/", feedHandler.Index)                    // 全站信息流
	r.GET("/group/:slug", feedHandler.GroupPosts)    // 分组信息流
	r.GET("/profile/:username", userHandler.Profile) // 作者主页
	r.GET("/posts/:id", postHandler.Detail)          // 帖子详情
	r.GET("/rss.xml", rssHandler.Feed)               // RSS 订阅

	auth := r.Group("/auth")
	{
		auth.GET("/signup", authHandler.ShowRegister) // 注册页面
		auth.POST("/signup", authHandler.Register)    // 提交注册
		auth.GET("/login", authHandler.ShowLogin)     // 登录页面
		auth.POST("/login", authHandler.Login)        // 提交登录
		auth.GET("/logout", authHandler.Logout)       // 退出登录
	}

	// 受保护路由 (Protected Routes)
	authorized := r.Group("/")
	authorized.Use(middleware.AuthRequired())
	{
		authorized.GET("/follow", feedHandler.FollowIndex)                   // 关注流
		authorized.POST("/profile/:username/follow", userHandler.Follow)     // 关注
		authorized.POST("/profile/:username/unfollow", userHandler.Unfollow) // 取消关注
		authorized.GET("/create", postHandler.ShowCreate)                    // 发帖页面
		authorized.POST("/create", postHandler.Create)                       // 提交发帖
		authorized.GET("/posts/:id/edit", postHandler.ShowEdit)              // 编辑页面
		authorized.POST("/posts/:id/edit", postHandler.Update)               // 提交编辑
		authorized.POST("/posts/:id/delete", postHandler.Delete)             // 删除帖子
		authorized.POST("/posts/:id/comment", postHandler.AddComment)        // 发表评论
		authorized.POST("/comments/:id/delete", postHandler.DeleteComment)   // 删除评论
	}

	// 管理路由 (Admin Routes)
	admin := r.Group("/admin")
	admin.Use(middleware.AuthRequired(), middleware.AdminRequired())
	{
		admin.GET("/groups", adminHandler.Groups)
		admin.POST("/groups", adminHandler.CreateGroup)
		admin.POST("/groups/:slug/delete", adminHandler.DeleteGroup)
	}
}
