package postgres

import (
	"context"
	"fmt"

	"novel-nest-api/internal/domain/entity"
)

// ReviewRepository 书评仓储实现
type ReviewRepository struct {
	client *Client
}

// NewReviewRepository 创建书评仓储
func NewReviewRepository(client *Client) *ReviewRepository {
	return &ReviewRepository{client: client}
}

// Create 创建书评
func (r *ReviewRepository) Create(ctx context.Context, review *entity.Review) error {
	ctx, span := tracer.Start(ctx, "postgres.ReviewRepository.Create")
	defer span.End()

	db := getDB(ctx, r.client.db)
	if err := db.Create(review).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to create review: %w", err)
	}
	return nil
}

// ListByNovel 按创建时间降序返回小说书评
func (r *ReviewRepository) ListByNovel(ctx context.Context, novelID int64) ([]*entity.Review, error) {
	ctx, span := tracer.Start(ctx, "postgres.ReviewRepository.ListByNovel")
	defer span.End()

	db := getDB(ctx, r.client.db)
	var reviews []*entity.Review
	if err := db.Preload("User").
		Where("novel_id = ?", novelID).
		Order("created_at DESC, id DESC").
		Find(&reviews).Error; err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	return reviews, nil
}

// Delete 删除书评
func (r *ReviewRepository) Delete(ctx context.Context, id int64) error {
	ctx, span := tracer.Start(ctx, "postgres.ReviewRepository.Delete")
	defer span.End()

	db := getDB(ctx, r.client.db)
	if err := db.Delete(&entity.Review{}, "id = ?", id).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to delete review: %w", err)
	}
	return nil
}
