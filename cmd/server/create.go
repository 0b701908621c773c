package main

import (
	"fmt"

	"shorturl-analytics/internal/model"

	"github.com/spf13/cobra"
)

var (
	createURL        string
	createOwner      string
	createNoValidate bool
)

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "为长链接创建短链",
	Long: `为长链接创建短链, 同一 owner 重复提交同一 URL 返回已有短码。

示例:
  shorturl create --url="https://go.dev/doc" --owner=alice`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context(), cfg, createNoValidate)
		if err != nil {
			return err
		}
		defer a.Close()

		sub, err := a.linkSvc.Submit(cmd.Context(), createOwner, createURL)
		if err != nil {
			return fmt.Errorf("创建短链失败: %w", err)
		}

		out := cmd.OutOrStdout()
		if sub.Created {
			fmt.Fprintln(out, "短链创建成功:")
		} else {
			fmt.Fprintln(out, "短链已存在:")
		}
		fmt.Fprintf(out, "短码: %s\n", sub.Alias)
		fmt.Fprintf(out, "完整地址: %s\n", sub.ShortURL)
		fmt.Fprintf(out, "点击次数: %d\n", sub.Clicks)
		return nil
	},
}

func init() {
	createCmd.Flags().StringVar(&createURL, "url", "", "要缩短的长链接")
	createCmd.Flags().StringVar(&createOwner, "owner", model.PublicOwner, "短链归属的用户名")
	createCmd.Flags().BoolVar(&createNoValidate, "no-validate", false, "跳过 URL 可达性检查")
	_ = createCmd.MarkFlagRequired("url")
}
