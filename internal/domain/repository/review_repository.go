// Package repository 定义数据访问层接口
package repository

import (
	"context"

	"novel-nest-api/internal/domain/entity"
)

// ReviewRepository 书评仓储接口
type ReviewRepository interface {
	// Create 创建书评
	Create(ctx context.Context, review *entity.Review) error

	// ListByNovel 指定小说的全部书评，按创建时间降序
	ListByNovel(ctx context.Context, novelID int64) ([]*entity.Review, error)

	// Delete 删除书评
	Delete(ctx context.Context, id int64) error
}
