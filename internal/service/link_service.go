// Package service 短链提交、解析和账户的业务逻辑
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"shorturl-analytics/internal/analytics"
	"shorturl-analytics/internal/metrics"
	"shorturl-analytics/internal/model"
	"shorturl-analytics/internal/shortcode"
	"shorturl-analytics/internal/store"
	"shorturl-analytics/internal/urlcheck"

	"go.uber.org/zap"
)

// LinkStore 提交和解析需要的存储能力
type LinkStore interface {
	FindAlias(ctx context.Context, owner, url string) (string, bool, error)
	FindTarget(ctx context.Context, alias string) (*store.Target, bool, error)
	Create(ctx context.Context, owner, url, alias string) (bool, error)
	ClickCount(ctx context.Context, alias string) (int64, bool, error)
	ListByOwner(ctx context.Context, owner string) ([]model.ShortLink, error)
}

// URLChecker 外部 URL 校验
type URLChecker interface {
	Reachable(ctx context.Context, url string) bool
}

// AliasGenerator 短码生成
type AliasGenerator interface {
	Generate(ctx context.Context, owner string) (string, error)
}

// ClickRecorder 点击记录
type ClickRecorder interface {
	Record(ctx context.Context, alias string, click analytics.Click) error
	Aggregate(ctx context.Context, alias string) (*analytics.Summary, bool, error)
}

// Options 链接服务配置
type Options struct {
	BaseURL       string
	DefaultScheme string
	// 插入时短码冲突的最大重新生成次数
	MaxInsertAttempts int
}

// LinkService 解析服务
type LinkService struct {
	links     LinkStore
	generator AliasGenerator
	recorder  ClickRecorder
	checker   URLChecker
	opts      Options
	logger    *zap.SugaredLogger
}

// Submission 提交结果
type Submission struct {
	Alias    string `json:"alias"`
	ShortURL string `json:"short_url"`
	Clicks   int64  `json:"clicks"`
	Created  bool   `json:"created"`
}

// LinkView 列表展示项
type LinkView struct {
	URL      string `json:"url"`
	ShortURL string `json:"short_url"`
	Alias    string `json:"alias"`
	Clicks   int64  `json:"clicks"`
}

func NewLinkService(links LinkStore, generator AliasGenerator, recorder ClickRecorder, checker URLChecker, opts Options, logger *zap.SugaredLogger) *LinkService {
	if opts.DefaultScheme == "" {
		opts.DefaultScheme = "https"
	}
	if opts.MaxInsertAttempts <= 0 {
		opts.MaxInsertAttempts = 3
	}
	return &LinkService{
		links:     links,
		generator: generator,
		recorder:  recorder,
		checker:   checker,
		opts:      opts,
		logger:    logger.Named("link_service"),
	}
}

// Submit 为 owner 返回 url 的短码, 已存在时复用
func (s *LinkService) Submit(ctx context.Context, owner, rawURL string) (*Submission, error) {
	url := strings.TrimSpace(rawURL)
	if url == "" || !s.checker.Reachable(ctx, url) {
		return nil, ErrInvalidURL
	}

	alias, created, err := s.aliasFor(ctx, owner, url)
	if err != nil {
		return nil, err
	}

	clicks, _, err := s.links.ClickCount(ctx, alias)
	if err != nil {
		return nil, err
	}
	return &Submission{
		Alias:    alias,
		ShortURL: s.ShortURL(alias),
		Clicks:   clicks,
		Created:  created,
	}, nil
}

func (s *LinkService) aliasFor(ctx context.Context, owner, url string) (string, bool, error) {
	for attempt := 0; attempt < s.opts.MaxInsertAttempts; attempt++ {
		if alias, ok, err := s.links.FindAlias(ctx, owner, url); err != nil {
			return "", false, err
		} else if ok {
			return alias, false, nil
		}

		alias, err := s.generator.Generate(ctx, owner)
		if err != nil {
			return "", false, fmt.Errorf("生成短码失败: %w", err)
		}
		created, err := s.links.Create(ctx, owner, url, alias)
		if err != nil {
			return "", false, err
		}
		if created {
			metrics.LinksCreated.Inc()
			s.logger.Infow("创建短链", "owner", owner, "alias", alias)
			return alias, true, nil
		}

		// 未插入: 要么并发请求已为同一 URL 建链, 要么短码被抢占, 下一轮重新判断
		metrics.AliasCollisions.Inc()
		s.logger.Debugw("插入冲突, 重试", "owner", owner, "alias", alias, "attempt", attempt+1)
	}
	return "", false, shortcode.ErrExhausted
}

// Visit 解析短码并记录点击, 点击记录失败不影响跳转
func (s *LinkService) Visit(ctx context.Context, alias string, click analytics.Click) (string, error) {
	if !shortcode.IsValid(alias) {
		metrics.Redirects.WithLabelValues("not_found").Inc()
		return "", ErrNotFound
	}
	target, ok, err := s.links.FindTarget(ctx, alias)
	if err != nil {
		metrics.Redirects.WithLabelValues("error").Inc()
		return "", err
	}
	if !ok {
		metrics.Redirects.WithLabelValues("not_found").Inc()
		return "", ErrNotFound
	}

	if click.At.IsZero() {
		click.At = time.Now()
	}
	if err := s.recorder.Record(ctx, alias, click); err != nil {
		metrics.ClickRecordFailures.Inc()
		s.logger.Errorw("记录点击失败", "alias", alias, "error", err)
	}

	metrics.Redirects.WithLabelValues("found").Inc()
	return urlcheck.Normalize(target.URL, s.opts.DefaultScheme), nil
}

// List 返回 owner 的全部短链
func (s *LinkService) List(ctx context.Context, owner string) ([]LinkView, error) {
	links, err := s.links.ListByOwner(ctx, owner)
	if err != nil {
		return nil, err
	}
	views := make([]LinkView, len(links))
	for i, l := range links {
		views[i] = LinkView{
			URL:      l.OriginalURL,
			ShortURL: s.ShortURL(l.ShortCode),
			Alias:    l.ShortCode,
			Clicks:   l.ClickCount,
		}
	}
	return views, nil
}

// Clicks 返回短码的点击汇总
func (s *LinkService) Clicks(ctx context.Context, alias string) (*analytics.Summary, error) {
	if !shortcode.IsValid(alias) {
		return nil, ErrNotFound
	}
	sum, ok, err := s.recorder.Aggregate(ctx, alias)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotFound
	}
	return sum, nil
}

// ShortURL 拼接完整短链地址
func (s *LinkService) ShortURL(alias string) string {
	return strings.TrimSuffix(s.opts.BaseURL, "/") + "/" + alias
}

// IsNotFound 判断是否为短码不存在
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
