package memory

import (
	"context"
	"sort"
	"time"

	"novel-nest-api/internal/domain/entity"
)

// CommentRepository 评论仓储的内存实现
type CommentRepository struct {
	store *Store
}

// NewCommentRepository 创建内存评论仓储
func NewCommentRepository(store *Store) *CommentRepository {
	return &CommentRepository{store: store}
}

// Create 创建评论或回复
func (r *CommentRepository) Create(ctx context.Context, comment *entity.Comment) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	r.store.nextCommentID++
	comment.ID = r.store.nextCommentID
	if comment.CreatedAt.IsZero() {
		comment.CreatedAt = time.Now()
	}
	r.store.comments[comment.ID] = cloneComment(comment)
	return nil
}

// ListByEpisode 按创建时间升序返回章节全部评论的平铺列表
func (r *CommentRepository) ListByEpisode(ctx context.Context, episodeID int64) ([]*entity.Comment, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	comments := make([]*entity.Comment, 0)
	for _, c := range r.store.comments {
		if c.EpisodeID != episodeID {
			continue
		}
		cc := cloneComment(c)
		cc.User = cloneUser(r.store.users[cc.UserID])
		comments = append(comments, cc)
	}
	sort.Slice(comments, func(i, j int) bool {
		if !comments[i].CreatedAt.Equal(comments[j].CreatedAt) {
			return comments[i].CreatedAt.Before(comments[j].CreatedAt)
		}
		return comments[i].ID < comments[j].ID
	})
	return comments, nil
}

// GetByID 根据 ID 获取评论
func (r *CommentRepository) GetByID(ctx context.Context, id int64) (*entity.Comment, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	return cloneComment(r.store.comments[id]), nil
}

// Delete 删除评论
func (r *CommentRepository) Delete(ctx context.Context, id int64) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	delete(r.store.comments, id)
	return nil
}
