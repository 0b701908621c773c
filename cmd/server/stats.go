package main

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"shorturl-analytics/internal/service"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats <alias>",
	Short: "查看短码的点击统计",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context(), cfg, true)
		if err != nil {
			return err
		}
		defer a.Close()

		alias := args[0]
		sum, err := a.linkSvc.Clicks(cmd.Context(), alias)
		if errors.Is(err, service.ErrNotFound) {
			return fmt.Errorf("短码 %q 不存在", alias)
		}
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "短链: %s\n", a.linkSvc.ShortURL(alias))
		fmt.Fprintf(out, "点击次数: %d\n", sum.Count)
		if len(sum.Events) == 0 {
			return nil
		}

		w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "#\t时间\t浏览器\t来源")
		for _, e := range sum.Events {
			ref := "-"
			if e.PrevURL != nil {
				ref = *e.PrevURL
			}
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", e.Index, e.Date, e.Browser, ref)
		}
		return w.Flush()
	},
}
