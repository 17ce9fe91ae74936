package services

import (
	"context"
	"yatube/internal/models"
	serrors "yatube/internal/services/errors"

	"go.uber.org/zap"
)

// FollowService 关注/取消关注的业务入口，底层图存储可替换
type FollowService struct {
	graph FollowGraph
	users *UserService
	log   *zap.Logger
}

func NewFollowService(graph FollowGraph, users *UserService, log *zap.Logger) *FollowService {
	return &FollowService{graph: graph, users: users, log: log}
}

// Follow 关注 username 对应的作者。自己关注自己视为输入错误
func (s *FollowService) Follow(ctx context.Context, follower *models.User, username string) (*models.User, error) {
	if follower == nil {
		return nil, serrors.New(serrors.ErrPermission, "请先登录")
	}
	author, err := s.users.ByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if author.ID == follower.ID {
		return author, serrors.New(serrors.ErrValidation, "不能关注自己")
	}
	if err := s.graph.Follow(ctx, follower.ID, author.ID); err != nil {
		return author, err
	}
	s.log.Info("Follow", zap.Uint("follower_id", follower.ID), zap.Uint("author_id", author.ID))
	return author, nil
}

// Unfollow 取消关注，本来就没有关注时不报错
func (s *FollowService) Unfollow(ctx context.Context, follower *models.User, username string) (*models.User, error) {
	if follower == nil {
		return nil, serrors.New(serrors.ErrPermission, "请先登录")
	}
	author, err := s.users.ByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if author.ID == follower.ID {
		return author, nil
	}
	if err := s.graph.Unfollow(ctx, follower.ID, author.ID); err != nil {
		return author, err
	}
	s.log.Info("Unfollow", zap.Uint("follower_id", follower.ID), zap.Uint("author_id", author.ID))
	return author, nil
}

// IsFollowing 匿名访客恒为 false
func (s *FollowService) IsFollowing(ctx context.Context, viewer, author *models.User) (bool, error) {
	if viewer == nil || author == nil {
		return false, nil
	}
	return s.graph.IsFollowing(ctx, viewer.ID, author.ID)
}

// TargetsOf 匿名访客返回空集合
func (s *FollowService) TargetsOf(ctx context.Context, viewer *models.User) ([]uint, error) {
	if viewer == nil {
		return []uint{}, nil
	}
	return s.graph.TargetsOf(ctx, viewer.ID)
}

// Counts 返回作者的粉丝数与关注数
func (s *FollowService) Counts(ctx context.Context, user *models.User) (followers, following int64, err error) {
	if followers, err = s.graph.FollowerCount(ctx, user.ID); err != nil {
		return 0, 0, err
	}
	if following, err = s.graph.FollowingCount(ctx, user.ID); err != nil {
		return 0, 0, err
	}
	return followers, following, nil
}
