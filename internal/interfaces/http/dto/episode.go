// Package dto 提供 HTTP 层数据传输对象
package dto

import (
	"time"

	"novel-nest-api/internal/domain/entity"
)

// CreateEpisodeRequest 创建章节请求
type CreateEpisodeRequest struct {
	Title       string     `json:"title" binding:"required,max=255"`
	Content     string     `json:"content" binding:"required"`
	IsLocked    bool       `json:"is_locked"`
	Price       int        `json:"price" binding:"min=0"`
	ReleaseDate *time.Time `json:"release_date"`
}

// UpdateEpisodeRequest 更新章节请求
type UpdateEpisodeRequest struct {
	Title    *string `json:"title" binding:"omitempty,max=255"`
	Content  *string `json:"content"`
	IsLocked *bool   `json:"is_locked"`
	Price    *int    `json:"price" binding:"omitempty,min=0"`
}

// EpisodeSummaryDTO 章节目录条目，不含正文
type EpisodeSummaryDTO struct {
	ID          int64     `json:"id"`
	NovelID     int64     `json:"novel_id"`
	Title       string    `json:"title"`
	IsLocked    bool      `json:"is_locked"`
	Price       int       `json:"price,omitempty"`
	ReleaseDate time.Time `json:"release_date"`
}

// EpisodeDTO 章节详情
// 锁定且无权阅读时正文为空，Readable 指示请求者能否阅读
type EpisodeDTO struct {
	EpisodeSummaryDTO
	Content  string `json:"content,omitempty"`
	Readable bool   `json:"readable"`
}

// ToEpisodeSummaryDTO 将领域实体转换为目录条目
func ToEpisodeSummaryDTO(e *entity.Episode) *EpisodeSummaryDTO {
	if e == nil {
		return nil
	}
	return &EpisodeSummaryDTO{
		ID:          e.ID,
		NovelID:     e.NovelID,
		Title:       e.Title,
		IsLocked:    e.IsLocked,
		Price:       e.Price,
		ReleaseDate: e.ReleaseDate,
	}
}

// ToEpisodeSummaryDTOs 批量转换目录条目
func ToEpisodeSummaryDTOs(episodes []*entity.Episode) []*EpisodeSummaryDTO {
	out := make([]*EpisodeSummaryDTO, 0, len(episodes))
	for _, e := range episodes {
		out = append(out, ToEpisodeSummaryDTO(e))
	}
	return out
}

// ToEpisodeDTO 将领域实体转换为章节详情
func ToEpisodeDTO(e *entity.Episode, readable bool) *EpisodeDTO {
	if e == nil {
		return nil
	}
	d := &EpisodeDTO{
		EpisodeSummaryDTO: *ToEpisodeSummaryDTO(e),
		Readable:          readable,
	}
	if readable {
		d.Content = e.Content
	}
	return d
}
