package store

import (
	"context"
	"encoding/json"
	"time"

	"shorturl-analytics/internal/cache"
	"shorturl-analytics/internal/model"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Target 反向查找结果
type Target struct {
	LinkID uint   `json:"id"`
	URL    string `json:"url"`
	Owner  string `json:"owner"`
}

// LinkStore 短链存储, 短码全局唯一, (owner, url) 唯一
type LinkStore struct {
	db     *gorm.DB
	cache  cache.Cache
	logger *zap.SugaredLogger
}

// NewLinkStore 创建短链存储, cache 可为 nil
func NewLinkStore(db *gorm.DB, c cache.Cache, logger *zap.SugaredLogger) *LinkStore {
	return &LinkStore{db: db, cache: c, logger: logger.Named("link_store")}
}

// FindAlias 按 (owner, url) 查找短码
func (s *LinkStore) FindAlias(ctx context.Context, owner, url string) (string, bool, error) {
	var link model.ShortLink
	err := s.db.WithContext(ctx).
		Select("short_code").
		Where("owner = ? AND url_hash = ?", owner, model.HashURL(url)).
		Take(&link).Error
	if isNotFound(err) {
		return "", false, nil
	}
	if err != nil {
		return "", false, storageErr("find alias", err)
	}
	return link.ShortCode, true, nil
}

// FindTarget 按短码查找目标地址, 查找范围是全局
// 列排序规则不区分大小写时, 大小写不一致的行视为不存在
func (s *LinkStore) FindTarget(ctx context.Context, alias string) (*Target, bool, error) {
	if t, ok := s.cachedTarget(ctx, alias); ok {
		return t, true, nil
	}

	var link model.ShortLink
	err := s.db.WithContext(ctx).
		Select("id", "owner", "original_url", "short_code").
		Where("short_code = ?", alias).
		Take(&link).Error
	if isNotFound(err) || (err == nil && link.ShortCode != alias) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, storageErr("find target", err)
	}

	t := &Target{LinkID: link.ID, URL: link.OriginalURL, Owner: link.Owner}
	s.storeTarget(ctx, alias, t)
	return t, true, nil
}

// AliasExists 供短码生成器检查冲突, 短码全局唯一所以忽略 owner
func (s *LinkStore) AliasExists(ctx context.Context, _ string, alias string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.ShortLink{}).Where("short_code = ?", alias).Count(&count).Error
	if err != nil {
		return false, storageErr("alias exists", err)
	}
	return count > 0, nil
}

// Create 插入新短链, (owner, url) 或短码已存在时不做任何修改
// 返回值表示是否真正插入了一行
func (s *LinkStore) Create(ctx context.Context, owner, url, alias string) (bool, error) {
	link := model.ShortLink{
		Owner:       owner,
		URLHash:     model.HashURL(url),
		OriginalURL: url,
		ShortCode:   alias,
	}
	res := s.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&link)
	if res.Error != nil {
		return false, storageErr("create link", res.Error)
	}
	return res.RowsAffected > 0, nil
}

// IncrementClicks 点击数加一, 短码不存在时无操作
func (s *LinkStore) IncrementClicks(ctx context.Context, alias string) error {
	id, ok, err := s.IDFor(ctx, alias)
	if err != nil || !ok {
		return err
	}
	err = s.db.WithContext(ctx).Model(&model.ShortLink{}).
		Where("id = ?", id).
		UpdateColumn("click_count", gorm.Expr("click_count + ?", 1)).Error
	if err != nil {
		return storageErr("increment clicks", err)
	}
	return nil
}

// ClickCount 返回短码的点击数
func (s *LinkStore) ClickCount(ctx context.Context, alias string) (int64, bool, error) {
	var link model.ShortLink
	err := s.db.WithContext(ctx).Select("click_count", "short_code").Where("short_code = ?", alias).Take(&link).Error
	if isNotFound(err) || (err == nil && link.ShortCode != alias) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, storageErr("click count", err)
	}
	return link.ClickCount, true, nil
}

// IDFor 返回短码对应的内部 ID
func (s *LinkStore) IDFor(ctx context.Context, alias string) (uint, bool, error) {
	t, ok, err := s.FindTarget(ctx, alias)
	if err != nil || !ok {
		return 0, ok, err
	}
	return t.LinkID, true, nil
}

// ListByOwner 返回 owner 的全部短链, 按创建顺序
func (s *LinkStore) ListByOwner(ctx context.Context, owner string) ([]model.ShortLink, error) {
	var links []model.ShortLink
	if err := s.db.WithContext(ctx).Where("owner = ?", owner).Order("id").Find(&links).Error; err != nil {
		return nil, storageErr("list links", err)
	}
	return links, nil
}

// AppendClick 在同一事务内写入点击记录并累加计数
func (s *LinkStore) AppendClick(ctx context.Context, rec *model.ClickRecord) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(rec).Error; err != nil {
			return err
		}
		res := tx.Model(&model.ShortLink{}).
			Where("id = ?", rec.ShortLinkID).
			UpdateColumn("click_count", gorm.Expr("click_count + ?", 1))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err != nil {
		return storageErr("append click", err)
	}
	return nil
}

// ListClicks 返回短链的全部点击记录, 按时间先后
func (s *LinkStore) ListClicks(ctx context.Context, linkID uint) ([]model.ClickRecord, error) {
	var records []model.ClickRecord
	err := s.db.WithContext(ctx).
		Where("short_link_id = ?", linkID).
		Order("clicked_at, id").
		Find(&records).Error
	if err != nil {
		return nil, storageErr("list clicks", err)
	}
	return records, nil
}

// 短链创建后不会修改或删除, 缓存无需失效
func (s *LinkStore) cachedTarget(ctx context.Context, alias string) (*Target, bool) {
	if s.cache == nil {
		return nil, false
	}
	ctx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()

	raw, ok, err := s.cache.Get(ctx, alias)
	if err != nil {
		s.logger.Warnf("读取缓存失败: %v", err)
		return nil, false
	}
	if !ok {
		return nil, false
	}
	var t Target
	if err := json.Unmarshal([]byte(raw), &t); err != nil {
		s.logger.Warnf("缓存内容无法解析 %s: %v", alias, err)
		return nil, false
	}
	return &t, true
}

func (s *LinkStore) storeTarget(ctx context.Context, alias string, t *Target) {
	if s.cache == nil {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()

	raw, err := json.Marshal(t)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, alias, string(raw)); err != nil {
		s.logger.Warnf("写入缓存失败: %v", err)
	}
}
