// Package testutil 测试用的数据库和日志辅助函数
package testutil

import (
	"fmt"
	"strings"
	"testing"

	"shorturl-analytics/pkg/database"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// NewDB 为每个测试创建独立的内存数据库并完成迁移
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("无法连接到内存数据库: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("获取连接池失败: %v", err)
	}
	// 共享缓存模式下单连接可避免 "database table is locked"
	sqlDB.SetMaxOpenConns(1)

	if err := database.Migrate(db); err != nil {
		t.Fatalf("数据库迁移失败: %v", err)
	}

	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}
