// Package entity 定义领域实体
package entity

import (
	"time"
)

// Episode 章节实体，从属于一部小说
type Episode struct {
	ID          int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	NovelID     int64     `json:"novel_id" gorm:"index;not null"`
	Title       string    `json:"title" gorm:"type:varchar(255);not null"`
	Content     string    `json:"content,omitempty" gorm:"type:text"`
	IsLocked    bool      `json:"is_locked" gorm:"not null;default:false"`
	Price       int       `json:"price" gorm:"not null;default:0"` // 仅在锁定时有意义
	ReleaseDate time.Time `json:"release_date" gorm:"index;not null"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`

	Comments []*Comment `json:"comments,omitempty" gorm:"foreignKey:EpisodeID;constraint:OnDelete:CASCADE"`
}

// TableName 指定表名
func (Episode) TableName() string {
	return "episodes"
}

// Readable 检查内容对指定用户是否可读
// 锁定章节仅作者本人和管理员可直接阅读，解锁支付由外部系统处理
func (e *Episode) Readable(user *User, novelAuthorID int64) bool {
	if !e.IsLocked {
		return true
	}
	if user == nil {
		return false
	}
	return user.ID == novelAuthorID || user.IsAdmin()
}
