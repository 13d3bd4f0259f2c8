// Package dto 提供 HTTP 层数据传输对象
package dto

import (
	"time"

	"novel-nest-api/internal/domain/entity"
)

// CreateReviewRequest 创建书评请求
type CreateReviewRequest struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment" binding:"max=4096"`
}

// ReviewDTO 书评信息
type ReviewDTO struct {
	ID        int64     `json:"id"`
	NovelID   int64     `json:"novel_id"`
	UserID    int64     `json:"user_id"`
	Username  string    `json:"username,omitempty"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// ToReviewDTO 将领域实体转换为 DTO
func ToReviewDTO(r *entity.Review) *ReviewDTO {
	if r == nil {
		return nil
	}
	d := &ReviewDTO{
		ID:        r.ID,
		NovelID:   r.NovelID,
		UserID:    r.UserID,
		Rating:    r.Rating,
		Comment:   r.Comment,
		CreatedAt: r.CreatedAt,
	}
	if r.User != nil {
		d.Username = r.User.Username
	}
	return d
}

// ToReviewDTOs 批量转换
func ToReviewDTOs(reviews []*entity.Review) []*ReviewDTO {
	out := make([]*ReviewDTO, 0, len(reviews))
	for _, r := range reviews {
		out = append(out, ToReviewDTO(r))
	}
	return out
}
