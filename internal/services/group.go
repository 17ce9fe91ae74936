package services

import (
	"context"
	"regexp"
	"strings"
	"yatube/internal/db"
	"yatube/internal/models"
	serrors "yatube/internal/services/errors"
	"yatube/internal/utils"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

var slugPattern = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)

// GroupInput 创建分组的字段
type GroupInput struct {
	Title       string `form:"title" json:"title" binding:"required,notblank,max=200"`
	Slug        string `form:"slug" json:"slug" binding:"required,max=50"`
	Description string `form:"description" json:"description"`
}

type GroupService struct {
	db   *gorm.DB
	feed FeedInvalidator
	log  *zap.Logger
}

func NewGroupService(db *gorm.DB, feed FeedInvalidator, log *zap.Logger) *GroupService {
	return &GroupService{db: db, feed: feed, log: log}
}

// List 所有分组，按标题排序
func (s *GroupService) List(ctx context.Context) ([]models.Group, error) {
	groups := make([]models.Group, 0)
	if err := s.db.WithContext(ctx).Order("title ASC").Find(&groups).Error; err != nil {
		return nil, serrors.FromStore(err, "加载分组失败")
	}
	return groups, nil
}

// BySlug 按 slug 查找分组
func (s *GroupService) BySlug(ctx context.Context, slug string) (*models.Group, error) {
	var group models.Group
	if err := s.db.WithContext(ctx).Where("slug = ?", slug).First(&group).Error; err != nil {
		return nil, serrors.FromStore(err, "分组不存在")
	}
	return &group, nil
}

// Create 创建分组，slug 必须唯一
func (s *GroupService) Create(ctx context.Context, in GroupInput) (*models.Group, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Slug = strings.TrimSpace(in.Slug)
	if !utils.NotBlank(in.Title) {
		return nil, serrors.New(serrors.ErrValidation, "分组名称不能为空")
	}
	if !slugPattern.MatchString(in.Slug) {
		return nil, serrors.New(serrors.ErrValidation, "slug 只能包含字母、数字、下划线和连字符")
	}

	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Group{}).Where("slug = ?", in.Slug).Count(&count).Error; err != nil {
		return nil, serrors.FromStore(err, "创建分组失败")
	}
	if count > 0 {
		return nil, serrors.New(serrors.ErrValidation, "slug 已存在")
	}

	group := models.Group{Title: in.Title, Slug: in.Slug, Description: strings.TrimSpace(in.Description)}
	if err := s.db.WithContext(ctx).Create(&group).Error; err != nil {
		return nil, serrors.FromStore(err, "创建分组失败")
	}
	s.log.Info("Group created", zap.String("slug", group.Slug))
	return &group, nil
}

// Delete 删除分组。分组下的帖子保留，分组引用置空
func (s *GroupService) Delete(ctx context.Context, slug string) error {
	group, err := s.BySlug(ctx, slug)
	if err != nil {
		return err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := db.ApplyDeletePolicies(tx, "groups", group.ID); err != nil {
			return err
		}
		return tx.Delete(&models.Group{}, group.ID).Error
	})
	if err != nil {
		return serrors.FromStore(err, "删除分组失败")
	}

	if s.feed != nil {
		s.feed.Invalidate("group deleted")
	}
	s.log.Info("Group deleted", zap.String("slug", group.Slug))
	return nil
}
