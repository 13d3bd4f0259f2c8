// Package entity 定义领域实体
package entity

import (
	"time"
)

// Comment 评论实体，从属于一个章节
// ParentID 为空表示顶层评论，否则为对另一条评论的回复
type Comment struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	EpisodeID int64     `json:"episode_id" gorm:"index;not null"`
	UserID    int64     `json:"user_id" gorm:"index;not null"`
	User      *User     `json:"user,omitempty" gorm:"foreignKey:UserID"`
	ParentID  *int64    `json:"parent_id,omitempty" gorm:"index"`
	Content   string    `json:"content" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// TableName 指定表名
func (Comment) TableName() string {
	return "comments"
}

// IsReply 检查评论是否为回复
func (c *Comment) IsReply() bool {
	return c.ParentID != nil
}
