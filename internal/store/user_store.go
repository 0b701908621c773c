package store

import (
	"context"
	"errors"

	"shorturl-analytics/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// UserStore 用户存储
type UserStore struct {
	db *gorm.DB
}

func NewUserStore(db *gorm.DB) *UserStore {
	return &UserStore{db: db}
}

// FindByUsername 按用户名查找
func (s *UserStore) FindByUsername(ctx context.Context, username string) (*model.User, bool, error) {
	var user model.User
	err := s.db.WithContext(ctx).Where("username = ?", username).Take(&user).Error
	if isNotFound(err) || (err == nil && user.Username != username) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, storageErr("find user", err)
	}
	return &user, true, nil
}

// Create 插入用户, 用户名已存在时返回 false
func (s *UserStore) Create(ctx context.Context, user *model.User) (bool, error) {
	res := s.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(user)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
			return false, nil
		}
		return false, storageErr("create user", res.Error)
	}
	return res.RowsAffected > 0, nil
}
