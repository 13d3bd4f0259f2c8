package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"novel-nest-api/internal/domain/entity"
	"novel-nest-api/internal/domain/repository"
)

// NovelRepository 小说仓储实现
type NovelRepository struct {
	client *Client
}

// NewNovelRepository 创建小说仓储
func NewNovelRepository(client *Client) *NovelRepository {
	return &NovelRepository{client: client}
}

// Create 创建小说
func (r *NovelRepository) Create(ctx context.Context, novel *entity.Novel) error {
	ctx, span := tracer.Start(ctx, "postgres.NovelRepository.Create")
	defer span.End()

	db := getDB(ctx, r.client.db)
	if err := db.Create(novel).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to create novel: %w", err)
	}
	return nil
}

// GetByID 根据 ID 获取小说，预加载作者信息
func (r *NovelRepository) GetByID(ctx context.Context, id int64) (*entity.Novel, error) {
	ctx, span := tracer.Start(ctx, "postgres.NovelRepository.GetByID")
	defer span.End()

	db := getDB(ctx, r.client.db)
	var novel entity.Novel
	if err := db.Preload("Author").First(&novel, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		span.RecordError(err)
		return nil, fmt.Errorf("failed to get novel: %w", err)
	}
	return &novel, nil
}

// Update 更新小说
func (r *NovelRepository) Update(ctx context.Context, novel *entity.Novel) error {
	ctx, span := tracer.Start(ctx, "postgres.NovelRepository.Update")
	defer span.End()

	db := getDB(ctx, r.client.db)
	if err := db.Save(novel).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to update novel: %w", err)
	}
	return nil
}

// Delete 删除小说，章节和书评由外键级联删除
func (r *NovelRepository) Delete(ctx context.Context, id int64) error {
	ctx, span := tracer.Start(ctx, "postgres.NovelRepository.Delete")
	defer span.End()

	db := getDB(ctx, r.client.db)
	if err := db.Delete(&entity.Novel{}, "id = ?", id).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to delete novel: %w", err)
	}
	return nil
}

// ListRecommended 按点赞数降序返回推荐榜单
func (r *NovelRepository) ListRecommended(ctx context.Context, limit int) ([]*entity.Novel, error) {
	ctx, span := tracer.Start(ctx, "postgres.NovelRepository.ListRecommended")
	defer span.End()

	db := getDB(ctx, r.client.db)
	var novels []*entity.Novel
	if err := db.Preload("Author").
		Order("likes DESC, id ASC").
		Limit(limit).
		Find(&novels).Error; err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to list recommended novels: %w", err)
	}
	return novels, nil
}

// ListByTag 返回带指定标签的小说，按点赞数降序
func (r *NovelRepository) ListByTag(ctx context.Context, tag string, limit int) ([]*entity.Novel, error) {
	ctx, span := tracer.Start(ctx, "postgres.NovelRepository.ListByTag")
	defer span.End()

	db := getDB(ctx, r.client.db)
	var novels []*entity.Novel
	if err := db.Preload("Author").
		Where("? = ANY(tags)", tag).
		Order("likes DESC, id ASC").
		Limit(limit).
		Find(&novels).Error; err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to list novels by tag: %w", err)
	}
	return novels, nil
}

// ListByAuthor 返回指定作者的所有小说，无结果时返回空切片而非错误
func (r *NovelRepository) ListByAuthor(ctx context.Context, authorID int64) ([]*entity.Novel, error) {
	ctx, span := tracer.Start(ctx, "postgres.NovelRepository.ListByAuthor")
	defer span.End()

	db := getDB(ctx, r.client.db)
	var novels []*entity.Novel
	if err := db.Where("author_id = ?", authorID).
		Order("last_update DESC, id ASC").
		Find(&novels).Error; err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to list novels by author: %w", err)
	}
	return novels, nil
}

// ListAll 分页返回全部小说，按最近更新时间降序
func (r *NovelRepository) ListAll(ctx context.Context, page repository.Pagination) (*repository.PagedResult[*entity.Novel], error) {
	ctx, span := tracer.Start(ctx, "postgres.NovelRepository.ListAll")
	defer span.End()

	db := getDB(ctx, r.client.db)

	var total int64
	if err := db.Model(&entity.Novel{}).Count(&total).Error; err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to count novels: %w", err)
	}

	var novels []*entity.Novel
	if err := db.Preload("Author").
		Order("last_update DESC, id ASC").
		Offset(page.Offset()).
		Limit(page.PageSize).
		Find(&novels).Error; err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to list novels: %w", err)
	}
	return repository.NewPagedResult(novels, total, page), nil
}

// IncrementViews 浏览量加一，直接在数据库侧累加避免读改写竞争
func (r *NovelRepository) IncrementViews(ctx context.Context, id int64) error {
	ctx, span := tracer.Start(ctx, "postgres.NovelRepository.IncrementViews")
	defer span.End()

	db := getDB(ctx, r.client.db)
	if err := db.Model(&entity.Novel{}).
		Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + 1")).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to increment views: %w", err)
	}
	return nil
}

// IncrementLikes 点赞数加一
func (r *NovelRepository) IncrementLikes(ctx context.Context, id int64) error {
	ctx, span := tracer.Start(ctx, "postgres.NovelRepository.IncrementLikes")
	defer span.End()

	db := getDB(ctx, r.client.db)
	if err := db.Model(&entity.Novel{}).
		Where("id = ?", id).
		UpdateColumn("likes", gorm.Expr("likes + 1")).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to increment likes: %w", err)
	}
	return nil
}

// RecomputeRating 根据书评重新计算均分，无书评时归零
func (r *NovelRepository) RecomputeRating(ctx context.Context, id int64) error {
	ctx, span := tracer.Start(ctx, "postgres.NovelRepository.RecomputeRating")
	defer span.End()

	db := getDB(ctx, r.client.db)
	if err := db.Model(&entity.Novel{}).
		Where("id = ?", id).
		UpdateColumn("rating", gorm.Expr(
			"(SELECT COALESCE(AVG(rating), 0) FROM reviews WHERE novel_id = ?)", id,
		)).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to recompute rating: %w", err)
	}
	return nil
}
