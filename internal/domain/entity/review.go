// Package entity 定义领域实体
package entity

import (
	"time"
)

// Review 书评实体，从属于一部小说
type Review struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	NovelID   int64     `json:"novel_id" gorm:"index;not null"`
	UserID    int64     `json:"user_id" gorm:"index;not null"`
	User      *User     `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Rating    int       `json:"rating" gorm:"not null"` // 1-5
	Comment   string    `json:"comment,omitempty" gorm:"type:text"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// TableName 指定表名
func (Review) TableName() string {
	return "reviews"
}

// ValidRating 检查评分是否在允许区间内
func (r *Review) ValidRating() bool {
	return r.Rating >= 1 && r.Rating <= 5
}
