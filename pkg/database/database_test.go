package database

import (
	"context"
	"path/filepath"
	"testing"

	"shorturl-analytics/internal/config"
	"shorturl-analytics/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestDialector(t *testing.T) {
	for _, driver := range []string{"mysql", "postgres", "sqlite"} {
		cfg := config.Default().Database
		cfg.Driver = driver
		d, err := Dialector(cfg)
		require.NoError(t, err, driver)
		assert.Equal(t, driver, d.Name())
	}

	cfg := config.Default().Database
	cfg.Driver = "oracle"
	_, err := Dialector(cfg)
	assert.Error(t, err)
}

func TestOpenAndMigrate(t *testing.T) {
	cfg := config.Default().Database
	cfg.Name = filepath.Join(t.TempDir(), "test.db")

	db, err := Open(context.Background(), cfg, zap.NewNop().Sugar())
	require.NoError(t, err)
	sqlDB, _ := db.DB()
	defer sqlDB.Close()

	require.NoError(t, Migrate(db))
	// 第二次执行不应报错
	require.NoError(t, Migrate(db))

	assert.True(t, db.Migrator().HasTable(&model.User{}))
	assert.True(t, db.Migrator().HasTable(&model.ShortLink{}))
	assert.True(t, db.Migrator().HasTable(&model.ClickRecord{}))
	assert.True(t, db.Migrator().HasIndex(&model.ShortLink{}, "uk_short_links_owner_url"))
}

func TestTableOptions(t *testing.T) {
	assert.Contains(t, tableOptions("mysql"), "COLLATE=utf8mb4_bin")
	assert.Empty(t, tableOptions("postgres"))
	assert.Empty(t, tableOptions("sqlite"))
}
