package services

import (
	"context"
	"yatube/internal/models"
	serrors "yatube/internal/services/errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FollowGraph 维护有向关注边（follower -> author），每个有序对至多一条
type FollowGraph interface {
	// Follow 不存在时创建，已存在时不做任何事
	Follow(ctx context.Context, followerID, authorID uint) error
	// Unfollow 删除边，不存在时不做任何事
	Unfollow(ctx context.Context, followerID, authorID uint) error
	IsFollowing(ctx context.Context, followerID, authorID uint) (bool, error)
	// TargetsOf 返回 follower 关注的所有作者 ID
	TargetsOf(ctx context.Context, followerID uint) ([]uint, error)
	FollowerCount(ctx context.Context, authorID uint) (int64, error)
	FollowingCount(ctx context.Context, followerID uint) (int64, error)
}

func validateEdge(followerID, authorID uint) error {
	if followerID == 0 || authorID == 0 {
		return serrors.New(serrors.ErrValidation, "关注关系两端都必须是有效用户")
	}
	return nil
}

// SQLFollowGraph 基于 follows 表的实现
type SQLFollowGraph struct {
	db *gorm.DB
}

func NewSQLFollowGraph(db *gorm.DB) *SQLFollowGraph {
	return &SQLFollowGraph{db: db}
}

// Follow 使用 INSERT ... ON CONFLICT DO NOTHING，并发关注同一作者也不会产生重复边
func (g *SQLFollowGraph) Follow(ctx context.Context, followerID, authorID uint) error {
	if err := validateEdge(followerID, authorID); err != nil {
		return err
	}
	edge := models.Follow{UserID: followerID, AuthorID: authorID}
	err := g.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "author_id"}},
			DoNothing: true,
		}).
		Create(&edge).Error
	return serrors.FromStore(err, "关注失败")
}

func (g *SQLFollowGraph) Unfollow(ctx context.Context, followerID, authorID uint) error {
	if err := validateEdge(followerID, authorID); err != nil {
		return err
	}
	err := g.db.WithContext(ctx).
		Where("user_id = ? AND author_id = ?", followerID, authorID).
		Delete(&models.Follow{}).Error
	return serrors.FromStore(err, "取消关注失败")
}

func (g *SQLFollowGraph) IsFollowing(ctx context.Context, followerID, authorID uint) (bool, error) {
	var count int64
	err := g.db.WithContext(ctx).Model(&models.Follow{}).
		Where("user_id = ? AND author_id = ?", followerID, authorID).
		Count(&count).Error
	if err != nil {
		return false, serrors.FromStore(err, "查询关注状态失败")
	}
	return count > 0, nil
}

func (g *SQLFollowGraph) TargetsOf(ctx context.Context, followerID uint) ([]uint, error) {
	ids := make([]uint, 0)
	err := g.db.WithContext(ctx).Model(&models.Follow{}).
		Where("user_id = ?", followerID).
		Order("author_id ASC").
		Pluck("author_id", &ids).Error
	if err != nil {
		return nil, serrors.FromStore(err, "查询关注列表失败")
	}
	return ids, nil
}

func (g *SQLFollowGraph) FollowerCount(ctx context.Context, authorID uint) (int64, error) {
	var count int64
	err := g.db.WithContext(ctx).Model(&models.Follow{}).Where("author_id = ?", authorID).Count(&count).Error
	return count, serrors.FromStore(err, "统计粉丝失败")
}

func (g *SQLFollowGraph) FollowingCount(ctx context.Context, followerID uint) (int64, error) {
	var count int64
	err := g.db.WithContext(ctx).Model(&models.Follow{}).Where("user_id = ?", followerID).Count(&count).Error
	return count, serrors.FromStore(err, "统计关注失败")
}
