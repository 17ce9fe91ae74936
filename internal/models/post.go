package models

import (
	"time"

	"gorm.io/gorm"
)

type Post struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Text      string    `gorm:"type:text;not null" json:"text"`
	UserID    uint      `gorm:"not null;index" json:"user_id"` // 作者，创建后不可变
	User      User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user"`
	GroupID   *uint     `gorm:"index" json:"group_id"` // 可为空，删除分组时置空
	Group     *Group    `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"group"`
	Image     string    `gorm:"size:255" json:"image"` // 图片引用，存储由外部负责
	CreatedAt time.Time `gorm:"index" json:"created_at"`

	// 非数据库字段，用于查询时填充
	CommentCount int `gorm:"-" json:"comment_count"`
}

// BeforeCreate 创建时间统一存为 UTC，sqlite 按文本比较时顺序才与时间一致
func (p *Post) BeforeCreate(tx *gorm.DB) error {
	p.CreatedAt = p.CreatedAt.UTC()
	return nil
}

// Excerpt 返回正文前 15 个字符，用于日志和标题
func (p *Post) Excerpt() string {
	runes := []rune(p.Text)
	if len(runes) > 15 {
		return string(runes[:15])
	}
	return p.Text
}
