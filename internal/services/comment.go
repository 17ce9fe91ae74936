package services

import (
	"context"
	"strings"
	"yatube/internal/models"
	serrors "yatube/internal/services/errors"
	"yatube/internal/utils"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type CommentService struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewCommentService(db *gorm.DB, log *zap.Logger) *CommentService {
	return &CommentService{db: db, log: log}
}

// ListForPost 按发表时间正序返回评论
func (s *CommentService) ListForPost(ctx context.Context, postID uint) ([]models.Comment, error) {
	comments := make([]models.Comment, 0)
	err := s.db.WithContext(ctx).Preload("User").
		Where("post_id = ?", postID).
		Order("created_at ASC, id ASC").
		Find(&comments).Error
	if err != nil {
		return nil, serrors.FromStore(err, "加载评论失败")
	}
	return comments, nil
}

// Add 在帖子下发表评论
func (s *CommentService) Add(ctx context.Context, author *models.User, postID uint, text string) (*models.Comment, error) {
	if author == nil {
		return nil, serrors.New(serrors.ErrPermission, "请先登录")
	}

	var post models.Post
	if err := s.db.WithContext(ctx).Select("id").First(&post, postID).Error; err != nil {
		return nil, serrors.FromStore(err, "帖子不存在")
	}

	text = strings.TrimSpace(text)
	if !utils.NotBlank(text) {
		return nil, serrors.New(serrors.ErrValidation, "评论内容不能为空")
	}

	comment := models.Comment{PostID: post.ID, UserID: author.ID, Text: text}
	if err := s.db.WithContext(ctx).Create(&comment).Error; err != nil {
		return nil, serrors.FromStore(err, "评论失败")
	}
	comment.User = *author

	s.log.Info("Comment created", zap.Uint("comment_id", comment.ID), zap.Uint("post_id", post.ID))
	return &comment, nil
}

// Delete 只有评论作者可以删除
func (s *CommentService) Delete(ctx context.Context, actor *models.User, id uint) (*models.Comment, error) {
	var comment models.Comment
	if err := s.db.WithContext(ctx).First(&comment, id).Error; err != nil {
		return nil, serrors.FromStore(err, "评论不存在")
	}
	if actor == nil || comment.UserID != actor.ID {
		return &comment, serrors.New(serrors.ErrPermission, "无权删除此评论")
	}
	if err := s.db.WithContext(ctx).Delete(&comment).Error; err != nil {
		return &comment, serrors.FromStore(err, "删除评论失败")
	}
	return &comment, nil
}
