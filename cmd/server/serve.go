package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "shorturl-analytics/docs"
	"shorturl-analytics/internal/config"
	"shorturl-analytics/internal/handler"
	"shorturl-analytics/internal/middleware"
	"shorturl-analytics/pkg/database"
	"shorturl-analytics/pkg/logger"
	"shorturl-analytics/web"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "启动 HTTP 服务",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		a, err := newApp(ctx, cfg, false)
		if err != nil {
			return err
		}
		defer a.Close()

		if cfg.Auth.Secret == config.PlaceholderSecret {
			a.logger.Warnf("⚠️ auth.secret 仍是示例值, 请通过 %s 设置", config.SecretEnv)
		}

		if err := database.Migrate(a.db); err != nil {
			return err
		}
		a.logger.Info("✅ 数据库迁移成功")

		if cfg.App.Mode == "production" {
			gin.SetMode(gin.ReleaseMode)
		}

		tmpl, err := web.Templates()
		if err != nil {
			return fmt.Errorf("模板解析失败: %w", err)
		}

		router := gin.New()
		router.Use(middleware.GinZapRecovery(logger.Logger, true))
		router.Use(middleware.GinZapLogger(logger.Logger))

		handler.RegisterRoutes(router,
			handler.Assets{Templates: tmpl, Static: http.FS(web.Static())},
			middleware.Identity(a.tokens, cfg.Auth.CookieName),
			handler.NewShortLinkHandler(a.linkSvc, a.logger),
			handler.NewAuthHandler(a.authSvc, a.tokens, cfg.Auth.CookieName, cfg.Auth.SecureCookie, a.logger),
		)

		server := &http.Server{
			Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
			Handler:      router,
			ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
			WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		}

		errCh := make(chan error, 1)
		go func() {
			a.logger.Infof("🚀 服务启动成功, 访问 http://localhost:%d", cfg.Server.Port)
			a.logger.Infof("📚 Swagger 文档地址: http://localhost:%d/swagger/index.html", cfg.Server.Port)
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
			close(errCh)
		}()

		select {
		case err := <-errCh:
			if err != nil {
				return fmt.Errorf("服务启动失败: %w", err)
			}
			return nil
		case <-ctx.Done():
		}

		a.logger.Info("收到退出信号, 正在关闭服务")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	},
}
