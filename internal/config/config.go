package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config 应用配置，全部来自环境变量（可由 .env 提供）
type Config struct {
	Port          string
	GinMode       string
	SiteURL       string
	LogLevel      string
	SessionSecret string

	DBDriver   string // postgres | sqlite
	DBURL      string
	DBMaxConns int

	PostsPerPage  int
	FeedCacheTTL  time.Duration
	FeedCacheSize int

	FollowGraph   string // sql | neo4j
	Neo4jURI      string
	Neo4jUser     string
	Neo4jPassword string
}

// Load 读取 .env 与环境变量
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, finding env vars from system")
	}

	cfg := &Config{
		Port:          getEnv("PORT", "8080"),
		GinMode:       getEnv("GIN_MODE", "release"),
		SiteURL:       strings.TrimSuffix(getEnv("SITE_URL", "http://localhost:8080"), "/"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		SessionSecret: getEnv("SESSION_SECRET", "secret_key_change_me"),

		DBDriver:   strings.ToLower(getEnv("DB_DRIVER", "postgres")),
		DBURL:      getEnv("DATABASE_URL", "host=localhost user=postgres password=postgres dbname=yatube port=5432 sslmode=disable"),
		DBMaxConns: getEnvAsInt("DB_MAX_CONNS", 10),

		PostsPerPage:  getEnvAsInt("POSTS_PER_PAGE", 10),
		FeedCacheTTL:  getEnvAsDuration("FEED_CACHE_TTL", 20*time.Second),
		FeedCacheSize: getEnvAsInt("FEED_CACHE_SIZE", 128),

		FollowGraph:   strings.ToLower(getEnv("FOLLOW_GRAPH", "sql")),
		Neo4jURI:      getEnv("NEO4J_URI", ""),
		Neo4jUser:     getEnv("NEO4J_USER", ""),
		Neo4jPassword: getEnv("NEO4J_PASSWORD", ""),
	}

	cfg.validate()
	return cfg
}

func (c *Config) validate() {
	if c.PostsPerPage <= 0 {
		log.Printf("POSTS_PER_PAGE must be positive, got %d, using 10", c.PostsPerPage)
		c.PostsPerPage = 10
	}
	if c.FeedCacheSize <= 0 {
		c.FeedCacheSize = 128
	}
	if c.DBDriver != "postgres" && c.DBDriver != "sqlite" {
		log.Fatalf("unsupported DB_DRIVER %q", c.DBDriver)
	}
	if c.FollowGraph == "neo4j" && (c.Neo4jURI == "" || c.Neo4jUser == "" || c.Neo4jPassword == "") {
		log.Fatal("FOLLOW_GRAPH=neo4j requires NEO4J_URI, NEO4J_USER and NEO4J_PASSWORD")
	}
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// getEnvAsDuration 支持 "30s" 这样的格式，也接受纯数字（秒）
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	if secs, err := strconv.Atoi(valueStr); err == nil {
		return time.Duration(secs) * time.Second
	}
	if d, err := time.ParseDuration(valueStr); err == nil {
		return d
	}
	return defaultValue
}
