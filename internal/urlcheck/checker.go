// Package urlcheck 通过 HEAD 请求确认提交的 URL 可访问
package urlcheck

import (
	"context"
	"net/http"
	"strings"
	"time"
)

// Normalize 缺少协议时补全默认协议
func Normalize(raw, scheme string) string {
	lower := strings.ToLower(raw)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		return raw
	}
	return scheme + "://" + raw
}

// HeadChecker 用 HEAD 请求判断 URL 是否可达, 2xx 和 3xx 视为可达
type HeadChecker struct {
	client *http.Client
	scheme string
}

func NewHeadChecker(timeout time.Duration, scheme string) *HeadChecker {
	return &HeadChecker{
		client: &http.Client{
			Timeout: timeout,
			// 3xx 本身即视为可达, 不跟随跳转
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		scheme: scheme,
	}
}

// Reachable 返回 URL 是否可达
func (c *HeadChecker) Reachable(ctx context.Context, raw string) bool {
	if strings.TrimSpace(raw) == "" {
		return false
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, Normalize(raw, c.scheme), nil)
	if err != nil {
		return false
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode >= 200 && resp.StatusCode < 400
}

// AllowAll 跳过检查, 用于离线环境和命令行
type AllowAll struct{}

func (AllowAll) Reachable(_ context.Context, raw string) bool {
	return strings.TrimSpace(raw) != ""
}
