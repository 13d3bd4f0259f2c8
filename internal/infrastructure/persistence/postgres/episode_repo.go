package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"novel-nest-api/internal/domain/entity"
)

// EpisodeRepository 章节仓储实现
type EpisodeRepository struct {
	client *Client
}

// NewEpisodeRepository 创建章节仓储
func NewEpisodeRepository(client *Client) *EpisodeRepository {
	return &EpisodeRepository{client: client}
}

// Create 创建章节
func (r *EpisodeRepository) Create(ctx context.Context, episode *entity.Episode) error {
	ctx, span := tracer.Start(ctx, "postgres.EpisodeRepository.Create")
	defer span.End()

	db := getDB(ctx, r.client.db)
	if err := db.Create(episode).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to create episode: %w", err)
	}
	return nil
}

// GetByNovelAndID 定位某本小说下的章节，章节存在但属于别的小说时同样视为不存在
func (r *EpisodeRepository) GetByNovelAndID(ctx context.Context, novelID, episodeID int64) (*entity.Episode, error) {
	ctx, span := tracer.Start(ctx, "postgres.EpisodeRepository.GetByNovelAndID")
	defer span.End()

	db := getDB(ctx, r.client.db)
	var episode entity.Episode
	if err := db.First(&episode, "id = ? AND novel_id = ?", episodeID, novelID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		span.RecordError(err)
		return nil, fmt.Errorf("failed to get episode: %w", err)
	}
	return &episode, nil
}

// ListByNovel 按发布时间升序返回小说全部章节
func (r *EpisodeRepository) ListByNovel(ctx context.Context, novelID int64) ([]*entity.Episode, error) {
	ctx, span := tracer.Start(ctx, "postgres.EpisodeRepository.ListByNovel")
	defer span.End()

	db := getDB(ctx, r.client.db)
	var episodes []*entity.Episode
	if err := db.Where("novel_id = ?", novelID).
		Order("release_date ASC, id ASC").
		Find(&episodes).Error; err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to list episodes: %w", err)
	}
	return episodes, nil
}

// Update 更新章节
func (r *EpisodeRepository) Update(ctx context.Context, episode *entity.Episode) error {
	ctx, span := tracer.Start(ctx, "postgres.EpisodeRepository.Update")
	defer span.End()

	db := getDB(ctx, r.client.db)
	if err := db.Save(episode).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to update episode: %w", err)
	}
	return nil
}

// Delete 删除章节，评论由外键级联删除
func (r *EpisodeRepository) Delete(ctx context.Context, id int64) error {
	ctx, span := tracer.Start(ctx, "postgres.EpisodeRepository.Delete")
	defer span.End()

	db := getDB(ctx, r.client.db)
	if err := db.Delete(&entity.Episode{}, "id = ?", id).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to delete episode: %w", err)
	}
	return nil
}
