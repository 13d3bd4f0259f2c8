package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"novel-nest-api/internal/domain/entity"
)

// CommentRepository 评论仓储实现
type CommentRepository struct {
	client *Client
}

// NewCommentRepository 创建评论仓储
func NewCommentRepository(client *Client) *CommentRepository {
	return &CommentRepository{client: client}
}

// Create 创建评论或回复
func (r *CommentRepository) Create(ctx context.Context, comment *entity.Comment) error {
	ctx, span := tracer.Start(ctx, "postgres.CommentRepository.Create")
	defer span.End()

	db := getDB(ctx, r.client.db)
	if err := db.Create(comment).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to create comment: %w", err)
	}
	return nil
}

// ListByEpisode 按创建时间升序返回章节全部评论，含顶层评论和回复的平铺列表
func (r *CommentRepository) ListByEpisode(ctx context.Context, episodeID int64) ([]*entity.Comment, error) {
	ctx, span := tracer.Start(ctx, "postgres.CommentRepository.ListByEpisode")
	defer span.End()

	db := getDB(ctx, r.client.db)
	var comments []*entity.Comment
	if err := db.Preload("User").
		Where("episode_id = ?", episodeID).
		Order("created_at ASC, id ASC").
		Find(&comments).Error; err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	return comments, nil
}

// GetByID 根据 ID 获取评论
func (r *CommentRepository) GetByID(ctx context.Context, id int64) (*entity.Comment, error) {
	ctx, span := tracer.Start(ctx, "postgres.CommentRepository.GetByID")
	defer span.End()

	db := getDB(ctx, r.client.db)
	var comment entity.Comment
	if err := db.First(&comment, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		span.RecordError(err)
		return nil, fmt.Errorf("failed to get comment: %w", err)
	}
	return &comment, nil
}

// Delete 删除评论
func (r *CommentRepository) Delete(ctx context.Context, id int64) error {
	ctx, span := tracer.Start(ctx, "postgres.CommentRepository.Delete")
	defer span.End()

	db := getDB(ctx, r.client.db)
	if err := db.Delete(&entity.Comment{}, "id = ?", id).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to delete comment: %w", err)
	}
	return nil
}
