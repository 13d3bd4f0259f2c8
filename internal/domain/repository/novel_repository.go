// Package repository 定义数据访问层接口
package repository

import (
	"context"

	"novel-nest-api/internal/domain/entity"
)

// NovelRepository 小说仓储接口
type NovelRepository interface {
	// Create 创建小说
	Create(ctx context.Context, novel *entity.Novel) error

	// GetByID 根据 ID 获取小说，缺失时返回 (nil, nil)
	GetByID(ctx context.Context, id int64) (*entity.Novel, error)

	// Update 更新小说
	Update(ctx context.Context, novel *entity.Novel) error

	// Delete 删除小说，级联删除章节、书评及章节评论
	Delete(ctx context.Context, id int64) error

	// ListRecommended 推荐书单：按点赞数降序的有界子集
	ListRecommended(ctx context.Context, limit int) ([]*entity.Novel, error)

	// ListByTag 按标签筛选的有界书单，按点赞数降序
	ListByTag(ctx context.Context, tag string, limit int) ([]*entity.Novel, error)

	// ListByAuthor 指定作者的全部小说，无结果时返回空切片
	ListByAuthor(ctx context.Context, authorID int64) ([]*entity.Novel, error)

	// ListAll 分页获取全部小说，按最后更新时间降序
	ListAll(ctx context.Context, pagination Pagination) (*PagedResult[*entity.Novel], error)

	// IncrementViews 浏览数 +1（单调递增）
	IncrementViews(ctx context.Context, id int64) error

	// IncrementLikes 点赞数 +1（单调递增）
	IncrementLikes(ctx context.Context, id int64) error

	// RecomputeRating 根据书评重新计算平均评分
	RecomputeRating(ctx context.Context, id int64) error
}
