// Package repository 定义数据访问层接口
package repository

import (
	"context"

	"novel-nest-api/internal/domain/entity"
)

// CommentRepository 评论仓储接口
type CommentRepository interface {
	// Create 创建评论
	Create(ctx context.Context, comment *entity.Comment) error

	// ListByEpisode 指定章节的扁平评论列表，按创建时间升序
	// 树状组织由领域服务完成
	ListByEpisode(ctx context.Context, episodeID int64) ([]*entity.Comment, error)

	// GetByID 根据 ID 获取评论
	GetByID(ctx context.Context, id int64) (*entity.Comment, error)

	// Delete 删除评论
	Delete(ctx context.Context, id int64) error
}
