// Package entity 定义领域实体
package entity

import (
	"time"

	"github.com/lib/pq"
)

// NovelStatus 小说连载状态
type NovelStatus string

const (
	NovelStatusOngoing   NovelStatus = "ongoing"
	NovelStatusCompleted NovelStatus = "completed"
)

// Novel 小说实体
type Novel struct {
	ID          int64          `json:"id" gorm:"primaryKey;autoIncrement"`
	Title       string         `json:"title" gorm:"type:varchar(255);not null"`
	Description string         `json:"description,omitempty" gorm:"type:text"`
	CoverImage  string         `json:"cover_image,omitempty" gorm:"type:varchar(512)"`
	Tags        pq.StringArray `json:"tags" gorm:"type:text[]"`
	Status      NovelStatus    `json:"status" gorm:"type:varchar(20);not null;default:'ongoing'"`
	Views       int64          `json:"views" gorm:"not null;default:0"`
	Likes       int64          `json:"likes" gorm:"not null;default:0"`
	Rating      float64        `json:"rating" gorm:"type:numeric(3,2);not null;default:0"`
	AuthorID    int64          `json:"author_id" gorm:"index;not null"`
	Author      *User          `json:"author,omitempty" gorm:"foreignKey:AuthorID"`
	LastUpdate  time.Time      `json:"last_update" gorm:"autoUpdateTime"`
	CreatedAt   time.Time      `json:"created_at" gorm:"autoCreateTime"`

	Episodes []*Episode `json:"episodes,omitempty" gorm:"foreignKey:NovelID;constraint:OnDelete:CASCADE"`
	Reviews  []*Review  `json:"reviews,omitempty" gorm:"foreignKey:NovelID;constraint:OnDelete:CASCADE"`
}

// TableName 指定表名
func (Novel) TableName() string {
	return "novels"
}

// HasTag 检查小说是否带有指定标签
func (n *Novel) HasTag(tag string) bool {
	for _, t := range n.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Touch 更新最后更新时间
func (n *Novel) Touch() {
	n.LastUpdate = time.Now()
}
