package model

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

const (
	// PublicOwner 匿名提交使用的伪用户
	PublicOwner = "public"
	// ShortCodeSize short_code 列宽, 短码长度上限
	ShortCodeSize = 10
)

// ShortLink 短链接模型
// (owner, url_hash) 唯一保证同一用户同一 URL 只有一条记录, short_code 全局唯一
type ShortLink struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	Owner       string    `gorm:"size:50;not null;uniqueIndex:uk_short_links_owner_url,priority:1;index" json:"owner"`
	URLHash     string    `gorm:"size:64;not null;uniqueIndex:uk_short_links_owner_url,priority:2" json:"-"`
	OriginalURL string    `gorm:"type:text;not null" json:"original_url"`
	ShortCode   string    `gorm:"size:10;uniqueIndex;not null" json:"short_code"`
	ClickCount  int64     `gorm:"default:0;not null" json:"click_count"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName 指定表名
func (ShortLink) TableName() string {
	return "short_links"
}

// HashURL 计算 URL 的唯一索引键, TEXT 列在 MySQL 上无法直接建唯一索引
func HashURL(url string) string {
	sum := sha256.Sum256([]byte(url))
	return hex.EncodeToString(sum[:])
}
