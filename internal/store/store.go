// Package store 基于 GORM 的持久化层
//
// 查询结果"不存在"通过 (零值, false, nil) 表达, 只有驱动或 I/O 失败才返回 ErrStorage.
package store

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// ErrStorage 存储层失败
var ErrStorage = errors.New("存储层错误")

func storageErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrStorage, op, err)
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
