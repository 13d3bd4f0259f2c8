// Package dto 提供 HTTP 层数据传输对象
package dto

import (
	"time"

	"novel-nest-api/internal/domain/entity"
	"novel-nest-api/internal/domain/service"
)

// CreateCommentRequest 创建评论请求
// ParentID 非空时表示对已有评论的回复
type CreateCommentRequest struct {
	Content  string `json:"content" binding:"required,max=2048"`
	ParentID *int64 `json:"parent_id" binding:"omitempty,min=1"`
}

// CommentDTO 评论节点，回复递归嵌套
type CommentDTO struct {
	ID        int64         `json:"id"`
	EpisodeID int64         `json:"episode_id"`
	UserID    int64         `json:"user_id"`
	Username  string        `json:"username,omitempty"`
	ParentID  *int64        `json:"parent_id,omitempty"`
	Content   string        `json:"content"`
	CreatedAt time.Time     `json:"created_at"`
	Replies   []*CommentDTO `json:"replies"`
}

// ToCommentDTO 将平铺评论转换为无回复的 DTO
func ToCommentDTO(c *entity.Comment) *CommentDTO {
	if c == nil {
		return nil
	}
	d := &CommentDTO{
		ID:        c.ID,
		EpisodeID: c.EpisodeID,
		UserID:    c.UserID,
		ParentID:  c.ParentID,
		Content:   c.Content,
		CreatedAt: c.CreatedAt,
		Replies:   []*CommentDTO{},
	}
	if c.User != nil {
		d.Username = c.User.Username
	}
	return d
}

// ToCommentTreeDTOs 将评论树转换为嵌套 DTO 森林
func ToCommentTreeDTOs(threads []*service.CommentThread) []*CommentDTO {
	out := make([]*CommentDTO, 0, len(threads))
	for _, t := range threads {
		out = append(out, toCommentTreeDTO(t))
	}
	return out
}

func toCommentTreeDTO(t *service.CommentThread) *CommentDTO {
	if t == nil {
		return nil
	}
	d := ToCommentDTO(t.Comment)
	for _, r := range t.Replies {
		d.Replies = append(d.Replies, toCommentTreeDTO(r))
	}
	return d
}
