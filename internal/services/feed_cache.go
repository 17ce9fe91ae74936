package services

import (
	"fmt"
	"html/template"
	"sync"
	"time"
	"yatube/internal/utils"

	"go.uber.org/zap"
)

// FeedInvalidator 写操作在影响全站流后调用
type FeedInvalidator interface {
	Invalidate(reason string)
}

// FeedCacheEntry 缓存的首页渲染结果
type FeedCacheEntry struct {
	Body template.HTML // 已渲染的帖子列表
	Page Page
}

// FeedCache 缓存全站流（首页）各页的渲染结果。
//
// 条目在 TTL 内有效，写操作通过 Invalidate 主动失效。每次失效推进 epoch，
// 携带旧 epoch 的 Set 会被丢弃，保证失效不会被并发的旧数据回填覆盖。
// 绕过服务层直接改库的写入在 TTL 到期或显式失效前仍可能读到旧页面。
type FeedCache struct {
	mu    sync.Mutex
	store *utils.TTLCache[FeedCacheEntry]
	ttl   time.Duration
	epoch uint64
	log   *zap.Logger
}

// NewFeedCache 创建容量为 size、有效期为 ttl 的缓存
func NewFeedCache(size int, ttl time.Duration, log *zap.Logger) (*FeedCache, error) {
	store, err := utils.NewTTLCache[FeedCacheEntry](size)
	if err != nil {
		return nil, fmt.Errorf("create feed cache: %w", err)
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &FeedCache{store: store, ttl: ttl, log: log}, nil
}

func feedCacheKey(page int) string {
	return fmt.Sprintf("feed:index:page:%d", page)
}

// TTL 条目有效期
func (c *FeedCache) TTL() time.Duration {
	return c.ttl
}

// Epoch 当前失效代数，渲染前读取，写回时传给 Set
func (c *FeedCache) Epoch() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.epoch
}

// Get 读取第 page 页
func (c *FeedCache) Get(page int) (FeedCacheEntry, bool) {
	return c.store.Get(feedCacheKey(page))
}

// Set 写入第 page 页。epoch 已过期（期间发生过失效）时放弃写入并返回 false
func (c *FeedCache) Set(page int, entry FeedCacheEntry, epoch uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if epoch != c.epoch {
		c.log.Debug("Dropping stale feed cache fill", zap.Int("page", page), zap.Uint64("epoch", epoch))
		return false
	}
	c.store.Set(feedCacheKey(page), entry, c.ttl)
	return true
}

// Invalidate 清空所有缓存页。新帖会让所有页面整体后移，所以不按页失效
func (c *FeedCache) Invalidate(reason string) {
	c.mu.Lock()
	c.epoch++
	c.store.Purge()
	c.mu.Unlock()
	c.log.Debug("Feed cache invalidated", zap.String("reason", reason))
}

// SetClock 替换时间来源，仅用于测试
func (c *FeedCache) SetClock(now func() time.Time) {
	c.store.SetClock(now)
}
