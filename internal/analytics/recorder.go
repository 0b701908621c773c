// Package analytics 记录并汇总短链点击
package analytics

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"shorturl-analytics/internal/model"

	"github.com/mssola/useragent"
)

// ErrUnknownAlias 记录点击时短码不存在
var ErrUnknownAlias = errors.New("短码不存在")

// DateLayout 点击时间的展示格式
const DateLayout = "2006-01-02 15:04:05"

// Store 点击记录需要的存储能力
type Store interface {
	IDFor(ctx context.Context, alias string) (uint, bool, error)
	ClickCount(ctx context.Context, alias string) (int64, bool, error)
	AppendClick(ctx context.Context, rec *model.ClickRecord) error
	ListClicks(ctx context.Context, linkID uint) ([]model.ClickRecord, error)
}

// Click 一次访问的上下文
type Click struct {
	Referrer  string
	UserAgent string
	At        time.Time
}

// Event 对外暴露的单条点击
type Event struct {
	Index   int       `json:"-"`
	PrevURL *string   `json:"prev_url"`
	Date    string    `json:"date"`
	Browser string    `json:"browser"`
	At      time.Time `json:"-"`
}

// Summary 点击汇总
type Summary struct {
	Alias  string
	Count  int64
	Events []Event
}

// Recorder 点击记录器
type Recorder struct {
	store Store
}

func NewRecorder(store Store) *Recorder {
	return &Recorder{store: store}
}

// Record 追加一条点击并累加计数, 两次写入在同一事务中
func (r *Recorder) Record(ctx context.Context, alias string, click Click) error {
	id, ok, err := r.store.IDFor(ctx, alias)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownAlias, alias)
	}

	at := click.At
	if at.IsZero() {
		at = time.Now()
	}
	rec := &model.ClickRecord{
		ShortLinkID: id,
		Browser:     BrowserLabel(click.UserAgent),
		UserAgent:   click.UserAgent,
		ClickedAt:   at,
	}
	if click.Referrer != "" {
		ref := click.Referrer
		rec.Referer = &ref
	}
	return r.store.AppendClick(ctx, rec)
}

// Aggregate 返回当前计数和完整点击历史, 短码不存在时 ok 为 false
func (r *Recorder) Aggregate(ctx context.Context, alias string) (*Summary, bool, error) {
	id, ok, err := r.store.IDFor(ctx, alias)
	if err != nil || !ok {
		return nil, ok, err
	}
	count, ok, err := r.store.ClickCount(ctx, alias)
	if err != nil || !ok {
		return nil, ok, err
	}
	records, err := r.store.ListClicks(ctx, id)
	if err != nil {
		return nil, false, err
	}

	events := make([]Event, len(records))
	for i, rec := range records {
		events[i] = Event{
			Index:   i,
			PrevURL: rec.Referer,
			Date:    rec.ClickedAt.Format(DateLayout),
			Browser: rec.Browser,
			At:      rec.ClickedAt,
		}
	}
	return &Summary{Alias: alias, Count: count, Events: events}, true, nil
}

// BrowserLabel 从 User-Agent 提取 "名称 版本"
func BrowserLabel(ua string) string {
	if strings.TrimSpace(ua) == "" {
		return ""
	}
	name, version := useragent.New(ua).Browser()
	if version == "" {
		return name
	}
	return name + " " + version
}
