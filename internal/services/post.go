package services

import (
	"context"
	"strings"
	"yatube/internal/db"
	"yatube/internal/models"
	serrors "yatube/internal/services/errors"
	"yatube/internal/utils"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// PostInput 创建或编辑帖子时可修改的字段
type PostInput struct {
	Text    string
	GroupID *uint
	Image   string
}

// PostDetail 帖子详情页所需数据
type PostDetail struct {
	Post            models.Post
	Comments        []models.Comment
	AuthorPostCount int64
}

// PostService 帖子的写入边界：所有影响全站流的写操作都在这里失效缓存
type PostService struct {
	db       *gorm.DB
	comments *CommentService
	feed     FeedInvalidator
	log      *zap.Logger
}

func NewPostService(db *gorm.DB, comments *CommentService, feed FeedInvalidator, log *zap.Logger) *PostService {
	return &PostService{db: db, comments: comments, feed: feed, log: log}
}

func (s *PostService) invalidate(reason string) {
	if s.feed != nil {
		s.feed.Invalidate(reason)
	}
}

func (s *PostService) validate(ctx context.Context, in *PostInput) error {
	in.Text = strings.TrimSpace(in.Text)
	if !utils.NotBlank(in.Text) {
		return serrors.New(serrors.ErrValidation, "帖子内容不能为空")
	}
	in.Image = strings.TrimSpace(in.Image)
	if in.GroupID != nil {
		var count int64
		if err := s.db.WithContext(ctx).Model(&models.Group{}).Where("id = ?", *in.GroupID).Count(&count).Error; err != nil {
			return serrors.FromStore(err, "查询分组失败")
		}
		if count == 0 {
			return serrors.New(serrors.ErrValidation, "所选分组不存在")
		}
	}
	return nil
}

// Get 按 ID 加载帖子及作者、分组
func (s *PostService) Get(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	if err := s.db.WithContext(ctx).Preload("User").Preload("Group").First(&post, id).Error; err != nil {
		return nil, serrors.FromStore(err, "帖子不存在")
	}
	return &post, nil
}

// Detail 帖子、评论及作者发帖总数
func (s *PostService) Detail(ctx context.Context, id uint) (*PostDetail, error) {
	post, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	comments, err := s.comments.ListForPost(ctx, post.ID)
	if err != nil {
		return nil, err
	}
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Post{}).Where("user_id = ?", post.UserID).Count(&count).Error; err != nil {
		return nil, serrors.FromStore(err, "统计帖子失败")
	}
	post.CommentCount = len(comments)
	return &PostDetail{Post: *post, Comments: comments, AuthorPostCount: count}, nil
}

// Create 以 author 身份发帖
func (s *PostService) Create(ctx context.Context, author *models.User, in PostInput) (*models.Post, error) {
	if author == nil {
		return nil, serrors.New(serrors.ErrPermission, "请先登录")
	}
	if err := s.validate(ctx, &in); err != nil {
		return nil, err
	}

	post := models.Post{
		Text:    in.Text,
		UserID:  author.ID,
		GroupID: in.GroupID,
		Image:   in.Image,
	}
	if err := s.db.WithContext(ctx).Create(&post).Error; err != nil {
		return nil, serrors.FromStore(err, "发布失败")
	}

	s.invalidate("post created")
	s.log.Info("Post created", zap.Uint("post_id", post.ID), zap.Uint("user_id", author.ID))
	return &post, nil
}

// Update 只有作者可以编辑；作者和创建时间不可修改
func (s *PostService) Update(ctx context.Context, actor *models.User, id uint, in PostInput) (*models.Post, error) {
	post, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if actor == nil || post.UserID != actor.ID {
		return post, serrors.New(serrors.ErrPermission, "无权编辑此帖子")
	}
	if err := s.validate(ctx, &in); err != nil {
		return post, err
	}

	err = s.db.WithContext(ctx).Model(&models.Post{}).
		Where("id = ?", post.ID).
		Updates(map[string]interface{}{
			"text":     in.Text,
			"group_id": in.GroupID,
			"image":    in.Image,
		}).Error
	if err != nil {
		return post, serrors.FromStore(err, "保存失败")
	}

	s.invalidate("post updated")
	return s.Get(ctx, id)
}

// Delete 只有作者可以删除，评论随帖子一并删除
func (s *PostService) Delete(ctx context.Context, actor *models.User, id uint) error {
	post, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if actor == nil || post.UserID != actor.ID {
		return serrors.New(serrors.ErrPermission, "无权删除此帖子")
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := db.ApplyDeletePolicies(tx, "posts", post.ID); err != nil {
			return err
		}
		return tx.Delete(&models.Post{}, post.ID).Error
	})
	if err != nil {
		return serrors.FromStore(err, "删除失败")
	}

	s.invalidate("post deleted")
	s.log.Info("Post deleted", zap.Uint("post_id", post.ID), zap.Uint("user_id", actor.ID))
	return nil
}
