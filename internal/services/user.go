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

type UserService struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewUserService(db *gorm.DB, log *zap.Logger) *UserService {
	return &UserService{db: db, log: log}
}

// SignupInput 注册表单
type SignupInput struct {
	Username  string `form:"username" binding:"required,notblank,max=150"`
	Email     string `form:"email" binding:"omitempty,email"`
	FirstName string `form:"first_name" binding:"max=150"`
	LastName  string `form:"last_name" binding:"max=150"`
	Password  string `form:"password" binding:"required,min=8"`
}

// ByID 按 ID 查找用户
func (s *UserService) ByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, serrors.FromStore(err, "用户不存在")
	}
	return &user, nil
}

// ByUsername 按用户名查找用户
func (s *UserService) ByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, serrors.FromStore(err, "用户不存在")
	}
	return &user, nil
}

// Register 创建新用户
func (s *UserService) Register(ctx context.Context, in SignupInput) (*models.User, error) {
	username := strings.TrimSpace(in.Username)
	if !utils.NotBlank(username) {
		return nil, serrors.New(serrors.ErrValidation, "用户名不能为空")
	}

	var count int64
	if err := s.db.WithContext(ctx).Model(&models.User{}).Where("username = ?", username).Count(&count).Error; err != nil {
		return nil, serrors.FromStore(err, "注册失败")
	}
	if count > 0 {
		return nil, serrors.New(serrors.ErrValidation, "用户名已被占用")
	}

	hash, err := utils.HashPassword(in.Password)
	if err != nil {
		return nil, serrors.Wrap(serrors.ErrStore, "密码加密失败", err)
	}

	user := models.User{
		Username:  username,
		Email:     strings.TrimSpace(in.Email),
		Password:  hash,
		FirstName: strings.TrimSpace(in.FirstName),
		LastName:  strings.TrimSpace(in.LastName),
	}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		return nil, serrors.FromStore(err, "注册失败")
	}

	s.log.Info("User registered", zap.Uint("user_id", user.ID), zap.String("username", user.Username))
	return &user, nil
}

// Authenticate 校验用户名与密码，失败统一返回 ErrValidation 避免泄露用户是否存在
func (s *UserService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.ByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if serrors.Is(err, serrors.ErrNotFound) {
			return nil, serrors.New(serrors.ErrValidation, "用户名或密码错误")
		}
		return nil, err
	}
	if !utils.CheckPassword(password, user.Password) {
		return nil, serrors.New(serrors.ErrValidation, "用户名或密码错误")
	}
	return user, nil
}
