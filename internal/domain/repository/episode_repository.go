// Package repository 定义数据访问层接口
package repository

import (
	"context"

	"novel-nest-api/internal/domain/entity"
)

// EpisodeRepository 章节仓储接口
type EpisodeRepository interface {
	// Create 创建章节
	Create(ctx context.Context, episode *entity.Episode) error

	// GetByNovelAndID 获取属于指定小说的章节
	// 章节存在但属于其他小说时同样返回 (nil, nil)
	GetByNovelAndID(ctx context.Context, novelID, episodeID int64) (*entity.Episode, error)

	// ListByNovel 指定小说的全部章节，按发布时间升序
	ListByNovel(ctx context.Context, novelID int64) ([]*entity.Episode, error)

	// Update 更新章节
	Update(ctx context.Context, episode *entity.Episode) error

	// Delete 删除章节，级联删除其评论
	Delete(ctx context.Context, id int64) error
}
