package main

import (
	"context"
	"time"

	"shorturl-analytics/internal/analytics"
	"shorturl-analytics/internal/cache"
	"shorturl-analytics/internal/config"
	"shorturl-analytics/internal/service"
	"shorturl-analytics/internal/shortcode"
	"shorturl-analytics/internal/store"
	"shorturl-analytics/internal/urlcheck"
	"shorturl-analytics/pkg/database"
	auth "shorturl-analytics/pkg/jwt"
	"shorturl-analytics/pkg/redis"

	redisClient "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// app 各子命令共用的依赖
type app struct {
	db      *gorm.DB
	rdb     *redisClient.Client
	linkSvc *service.LinkService
	authSvc *service.AuthService
	tokens  *auth.TokenManager
	logger  *zap.SugaredLogger
}

// newApp 连接数据库和缓存并组装服务, skipURLCheck 为 true 时不校验提交的 URL
func newApp(ctx context.Context, cfg *config.Config, skipURLCheck bool) (*app, error) {
	log := zap.S()

	db, err := database.Open(ctx, cfg.Database, log)
	if err != nil {
		return nil, err
	}
	log.Infow("✅ 数据库连接成功", "driver", cfg.Database.Driver)

	rdb, err := redis.NewRedisClient(cfg.Cache)
	if err != nil {
		log.Warnf("缓存连接失败, 使用进程内缓存: %v", err)
		rdb = nil
	} else if rdb != nil {
		log.Info("✅ 缓存连接成功")
	}

	links := store.NewLinkStore(db, cache.New(rdb, time.Duration(cfg.Cache.TTLMinutes)*time.Minute), log)
	recorder := analytics.NewRecorder(links)
	generator := shortcode.NewGenerator(links, log,
		shortcode.WithLength(cfg.Shortener.AliasLength),
		shortcode.WithMaxRetries(cfg.Shortener.MaxRetries),
	)

	var checker service.URLChecker = urlcheck.NewHeadChecker(
		time.Duration(cfg.Shortener.ValidationTimeout)*time.Second, cfg.Shortener.DefaultScheme)
	if skipURLCheck || cfg.Shortener.SkipURLCheck {
		checker = urlcheck.AllowAll{}
	}

	linkSvc := service.NewLinkService(links, generator, recorder, checker, service.Options{
		BaseURL:       cfg.Shortener.BaseURL,
		DefaultScheme: cfg.Shortener.DefaultScheme,
	}, log)

	tokens := auth.NewManager(cfg.Auth.Secret, cfg.Auth.Issuer, cfg.Auth.ExpirationHours)
	authSvc := service.NewAuthService(store.NewUserStore(db), tokens, log)

	return &app{
		db:      db,
		rdb:     rdb,
		linkSvc: linkSvc,
		authSvc: authSvc,
		tokens:  tokens,
		logger:  log,
	}, nil
}

func (a *app) Close() {
	if a.rdb != nil {
		if err := a.rdb.Close(); err != nil {
			a.logger.Errorf("关闭 Redis 连接失败: %v", err)
		}
	}
	if sqlDB, err := a.db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			a.logger.Errorf("关闭数据库连接失败: %v", err)
		}
	}
}
