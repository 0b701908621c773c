package main

import (
	"fmt"
	"os"

	"shorturl-analytics/internal/config"
	"shorturl-analytics/pkg/logger"

	"github.com/spf13/cobra"
)

// @title 短链接与点击统计 API
// @version 1.0
// @description 按用户隔离的短链接服务, 记录每次跳转的来源和浏览器。
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization

var (
	configPath string
	cfg        *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "shorturl",
	Short: "带点击统计的短链接服务",
	Long: `按用户隔离命名空间的短链接服务。

子命令:
  serve    启动 HTTP 服务
  migrate  初始化数据库表结构
  create   在命令行创建短链
  stats    查看短码的点击统计`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return fmt.Errorf("配置加载失败: %w", err)
		}
		logger.InitLogger(cfg.Log)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger.Logger != nil {
			_ = logger.Logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "configs/config.yaml", "配置文件路径")
	rootCmd.AddCommand(serveCmd, migrateCmd, createCmd, statsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
