// Package dto 提供 HTTP 层数据传输对象
package dto

import (
	"time"

	"novel-nest-api/internal/domain/entity"
)

// CreateNovelRequest 创建小说请求
type CreateNovelRequest struct {
	Title       string   `json:"title" binding:"required,max=255"`
	Description string   `json:"description" binding:"max=4096"`
	CoverImage  string   `json:"cover_image" binding:"omitempty,url"`
	Tags        []string `json:"tags" binding:"max=10,dive,max=32"`
}

// UpdateNovelRequest 更新小说请求
type UpdateNovelRequest struct {
	Title       *string   `json:"title" binding:"omitempty,max=255"`
	Description *string   `json:"description" binding:"omitempty,max=4096"`
	CoverImage  *string   `json:"cover_image" binding:"omitempty,url"`
	Tags        *[]string `json:"tags" binding:"omitempty,max=10,dive,max=32"`
	Status      *string   `json:"status" binding:"omitempty,oneof=ongoing completed"`
}

// NovelDTO 小说信息
type NovelDTO struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	CoverImage  string    `json:"cover_image,omitempty"`
	Tags        []string  `json:"tags"`
	Status      string    `json:"status"`
	Views       int64     `json:"views"`
	Likes       int64     `json:"likes"`
	Rating      float64   `json:"rating"`
	AuthorID    int64     `json:"author_id"`
	AuthorName  string    `json:"author_name,omitempty"`
	LastUpdate  time.Time `json:"last_update"`
}

// NovelDetailDTO 小说详情，含章节目录
type NovelDetailDTO struct {
	NovelDTO
	Episodes []*EpisodeSummaryDTO `json:"episodes"`
}

// ToNovelDTO 将领域实体转换为 DTO
func ToNovelDTO(n *entity.Novel) *NovelDTO {
	if n == nil {
		return nil
	}
	d := &NovelDTO{
		ID:          n.ID,
		Title:       n.Title,
		Description: n.Description,
		CoverImage:  n.CoverImage,
		Tags:        n.Tags,
		Status:      string(n.Status),
		Views:       n.Views,
		Likes:       n.Likes,
		Rating:      n.Rating,
		AuthorID:    n.AuthorID,
		LastUpdate:  n.LastUpdate,
	}
	if n.Author != nil {
		d.AuthorName = n.Author.Username
	}
	if d.Tags == nil {
		d.Tags = []string{}
	}
	return d
}

// ToNovelDTOs 批量转换
func ToNovelDTOs(novels []*entity.Novel) []*NovelDTO {
	out := make([]*NovelDTO, 0, len(novels))
	for _, n := range novels {
		out = append(out, ToNovelDTO(n))
	}
	return out
}
