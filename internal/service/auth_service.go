package service

import (
	"context"
	"strings"

	"shorturl-analytics/internal/model"

	"go.uber.org/zap"
)

// UserStore 账户存储
type UserStore interface {
	FindByUsername(ctx context.Context, username string) (*model.User, bool, error)
	Create(ctx context.Context, user *model.User) (bool, error)
}

// TokenIssuer 签发身份令牌
type TokenIssuer interface {
	GenerateToken(userID uint, username string) (string, error)
}

// AuthService 注册与登录
type AuthService struct {
	users  UserStore
	tokens TokenIssuer
	logger *zap.SugaredLogger
}

func NewAuthService(users UserStore, tokens TokenIssuer, logger *zap.SugaredLogger) *AuthService {
	return &AuthService{users: users, tokens: tokens, logger: logger.Named("auth_service")}
}

// Register 创建账户, public 为匿名保留名
func (s *AuthService) Register(ctx context.Context, username, password, confirm string) (*model.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" || len(username) > 50 {
		return nil, ErrUsernameInvalid
	}
	if strings.EqualFold(username, model.PublicOwner) {
		return nil, ErrUsernameTaken
	}
	if password != confirm {
		return nil, ErrPasswordMismatch
	}

	if _, exists, err := s.users.FindByUsername(ctx, username); err != nil {
		return nil, err
	} else if exists {
		return nil, ErrUsernameTaken
	}

	user := &model.User{Username: username}
	if err := user.SetPassword(password); err != nil {
		s.logger.Errorf("密码加密失败: %v", err)
		return nil, err
	}
	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}
	if !created {
		return nil, ErrUsernameTaken
	}
	s.logger.Infow("账户创建成功", "username", username)
	return user, nil
}

// Login 校验密码并签发令牌
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	user, ok, err := s.users.FindByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		return "", err
	}
	if !ok {
		return "", ErrUnknownUser
	}
	if !user.CheckPassword(password) {
		return "", ErrWrongPassword
	}
	token, err := s.tokens.GenerateToken(user.ID, user.Username)
	if err != nil {
		s.logger.Errorf("生成令牌失败: %v", err)
		return "", err
	}
	return token, nil
}
