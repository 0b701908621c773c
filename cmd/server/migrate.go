package main

import (
	"fmt"

	"shorturl-analytics/pkg/database"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "初始化数据库表结构, 可重复执行",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context(), cfg, true)
		if err != nil {
			return err
		}
		defer a.Close()

		if err := database.Migrate(a.db); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "数据库迁移完成")
		return nil
	},
}
