package model

import (
	"time"
)

// ClickRecord 单次访问记录, 创建后不再修改
type ClickRecord struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	ShortLinkID uint      `gorm:"not null;index" json:"short_link_id"`
	ShortLink   ShortLink `gorm:"foreignKey:ShortLinkID;constraint:OnDelete:RESTRICT" json:"-"`
	Referer     *string   `gorm:"type:text" json:"referer"`
	Browser     string    `gorm:"size:100" json:"browser"`
	UserAgent   string    `gorm:"type:text" json:"user_agent"`
	ClickedAt   time.Time `gorm:"not null;index" json:"clicked_at"`
}

func (ClickRecord) TableName() string {
	return "click_records"
}
