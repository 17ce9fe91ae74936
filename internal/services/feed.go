package services

import (
	"context"
	"fmt"
	"yatube/internal/models"
	serrors "yatube/internal/services/errors"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SelectorKind 信息流类型
type SelectorKind int

const (
	FeedGlobal SelectorKind = iota // 全站
	FeedGroup                      // 分组
	FeedAuthor                     // 作者主页
	FeedFollow                     // 关注流
)

func (k SelectorKind) String() string {
	switch k {
	case FeedGlobal:
		return "global"
	case FeedGroup:
		return "group"
	case FeedAuthor:
		return "author"
	case FeedFollow:
		return "follow"
	default:
		return fmt.Sprintf("kind_%d", int(k))
	}
}

// Selector 选择要计算的信息流
type Selector struct {
	Kind      SelectorKind
	GroupSlug string
	Username  string
}

func GlobalFeed() Selector { return Selector{Kind: FeedGlobal} }
func GroupFeed(slug string) Selector { return Selector{Kind: FeedGroup, GroupSlug: slug} }
func AuthorFeed(username string) Selector { return Selector{Kind: FeedAuthor, Username: username} }
func FollowFeed() Selector { return Selector{Kind: FeedFollow} }

// feedOrder 严格全序：同一时间创建的帖子按 ID 倒序，保证翻页稳定
const feedOrder = "created_at DESC, id DESC"

// FeedPage 一页信息流
type FeedPage struct {
	Posts  []models.Post
	Page   Page
	Group  *models.Group // FeedGroup 时填充
	Author *models.User  // FeedAuthor 时填充
}

// FeedService 根据 Selector 和访客身份组装信息流，只读
type FeedService struct {
	db       *gorm.DB
	follows  *FollowService
	pageSize int
	log      *zap.Logger
}

func NewFeedService(db *gorm.DB, follows *FollowService, pageSize int, log *zap.Logger) *FeedService {
	return &FeedService{db: db, follows: follows, pageSize: pageSize, log: log}
}

// PageSize 每页条数
func (s *FeedService) PageSize() int {
	return s.pageSize
}

// resolved 解析后的查询范围
type resolved struct {
	scope  func(*gorm.DB) *gorm.DB
	empty  bool
	group  *models.Group
	author *models.User
}

func (s *FeedService) resolve(ctx context.Context, sel Selector, viewer *models.User) (*resolved, error) {
	switch sel.Kind {
	case FeedGlobal:
		return &resolved{scope: func(db *gorm.DB) *gorm.DB { return db }}, nil

	case FeedGroup:
		var group models.Group
		if err := s.db.WithContext(ctx).Where("slug = ?", sel.GroupSlug).First(&group).Error; err != nil {
			return nil, serrors.FromStore(err, "分组不存在")
		}
		return &resolved{
			scope: func(db *gorm.DB) *gorm.DB { return db.Where("group_id = ?", group.ID) },
			group: &group,
		}, nil

	case FeedAuthor:
		var author models.User
		if err := s.db.WithContext(ctx).Where("username = ?", sel.Username).First(&author).Error; err != nil {
			return nil, serrors.FromStore(err, "用户不存在")
		}
		return &resolved{
			scope:  func(db *gorm.DB) *gorm.DB { return db.Where("user_id = ?", author.ID) },
			author: &author,
		}, nil

	case FeedFollow:
		targets, err := s.follows.TargetsOf(ctx, viewer)
		if err != nil {
			return nil, err
		}
		if len(targets) == 0 {
			return &resolved{empty: true}, nil
		}
		return &resolved{
			scope: func(db *gorm.DB) *gorm.DB { return db.Where("user_id IN ?", targets) },
		}, nil
	}
	return nil, serrors.New(serrors.ErrValidation, fmt.Sprintf("未知的信息流类型 %s", sel.Kind))
}

// OrderedIDs 返回分页前完整的有序帖子 ID 集合
func (s *FeedService) OrderedIDs(ctx context.Context, sel Selector, viewer *models.User) ([]uint, error) {
	r, err := s.resolve(ctx, sel, viewer)
	if err != nil {
		return nil, err
	}
	ids := make([]uint, 0)
	if r.empty {
		return ids, nil
	}
	err = s.db.WithContext(ctx).Model(&models.Post{}).
		Scopes(r.scope).
		Order(feedOrder).
		Pluck("id", &ids).Error
	if err != nil {
		return nil, serrors.FromStore(err, "查询信息流失败")
	}
	return ids, nil
}

// Query 返回第 page 页。页码越界时钳制到最后一页
func (s *FeedService) Query(ctx context.Context, sel Selector, viewer *models.User, page int) (*FeedPage, error) {
	r, err := s.resolve(ctx, sel, viewer)
	if err != nil {
		return nil, err
	}

	result := &FeedPage{Posts: []models.Post{}, Group: r.group, Author: r.author}
	if r.empty {
		result.Page = NewPage(0, s.pageSize, page)
		return result, nil
	}

	var total int64
	if err := s.db.WithContext(ctx).Model(&models.Post{}).Scopes(r.scope).Count(&total).Error; err != nil {
		return nil, serrors.FromStore(err, "统计信息流失败")
	}
	result.Page = NewPage(total, s.pageSize, page)
	s.log.Debug("Feed query",
		zap.Stringer("kind", sel.Kind),
		zap.Int("requested_page", page),
		zap.Int("page", result.Page.Number),
		zap.Int64("total", total))

	err = s.db.WithContext(ctx).
		Preload("User").Preload("Group").
		Scopes(r.scope).
		Order(feedOrder).
		Limit(result.Page.Size).
		Offset(result.Page.Offset()).
		Find(&result.Posts).Error
	if err != nil {
		return nil, serrors.FromStore(err, "查询信息流失败")
	}

	if err := s.fillCommentCounts(ctx, result.Posts); err != nil {
		return nil, err
	}
	return result, nil
}

// fillCommentCounts 批量填充帖子的评论数量
func (s *FeedService) fillCommentCounts(ctx context.Context, posts []models.Post) error {
	if len(posts) == 0 {
		return nil
	}

	postIDs := make([]uint, len(posts))
	for i, p := range posts {
		postIDs[i] = p.ID
	}

	type CountResult struct {
		PostID uint
		Count  int
	}
	var results []CountResult
	err := s.db.WithContext(ctx).Model(&models.Comment{}).
		Select("post_id, COUNT(*) as count").
		Where("post_id IN ?", postIDs).
		Group("post_id").
		Scan(&results).Error
	if err != nil {
		return serrors.FromStore(err, "统计评论失败")
	}

	countMap := make(map[uint]int, len(results))
	for _, r := range results {
		countMap[r.PostID] = r.Count
	}
	for i := range posts {
		posts[i].CommentCount = countMap[posts[i].ID]
	}
	return nil
}
