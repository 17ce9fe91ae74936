package main

import (
	"context"
	"log"
	"yatube/internal/config"
	"yatube/internal/db"
	"yatube/internal/handlers"
	"yatube/internal/router"
	"yatube/internal/services"
	"yatube/internal/utils"
	"yatube/internal/views"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()

	logger, err := utils.NewLogger(cfg.LogLevel)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	// Initialize Database
	conn, err := db.Open(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() { _ = db.Close(conn) }()
	if err := db.Migrate(conn); err != nil {
		logger.Fatal("Failed to migrate database", zap.Error(err))
	}
	db.SeedGroups(conn, logger)

	// 关注关系存储：默认使用数据库，可切换到 Neo4j
	var graph services.FollowGraph = services.NewSQLFollowGraph(conn)
	if cfg.FollowGraph == "neo4j" {
		neo, err := services.ConnectNeo4jFollowGraph(context.Background(), cfg.Neo4jURI, cfg.Neo4jUser, cfg.Neo4jPassword, logger)
		if err != nil {
			logger.Fatal("Failed to connect to Neo4j", zap.Error(err))
		}
		defer func() { _ = neo.Close(context.Background()) }()
		graph = neo
	}

	feedCache, err := services.NewFeedCache(cfg.FeedCacheSize, cfg.FeedCacheTTL, logger)
	if err != nil {
		logger.Fatal("Failed to create feed cache", zap.Error(err))
	}
	fragments, err := views.NewFragments()
	if err != nil {
		logger.Fatal("Failed to parse templates", zap.Error(err))
	}

	users := services.NewUserService(conn, logger)
	follows := services.NewFollowService(graph, users, logger)
	feed := services.NewFeedService(conn, follows, cfg.PostsPerPage, logger)
	comments := services.NewCommentService(conn, logger)

	deps := &handlers.Deps{
		Users:       users,
		Follows:     follows,
		Feed:        feed,
		FeedCache:   feedCache,
		Posts:       services.NewPostService(conn, comments, feedCache, logger),
		Comments:    comments,
		Groups:      services.NewGroupService(conn, feedCache, logger),
		Syndication: services.NewSyndicationService(feed, cfg.SiteURL, "Yatube"),
		Fragments:   fragments,
		Log:         logger,
	}

	// Initialize Gin
	gin.SetMode(cfg.GinMode)
	r := gin.New()
	r.Use(gin.Recovery())
	if err := router.Setup(r, deps, cfg.SessionSecret); err != nil {
		logger.Fatal("Failed to set up router", zap.Error(err))
	}

	logger.Info("Yatube server starting",
		zap.String("port", cfg.Port),
		zap.String("follow_graph", cfg.FollowGraph),
		zap.Duration("feed_cache_ttl", cfg.FeedCacheTTL))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Fatal("Server stopped", zap.Error(err))
	}
}
