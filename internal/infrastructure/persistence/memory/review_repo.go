package memory

import (
	"context"
	"sort"
	"time"

	"novel-nest-api/internal/domain/entity"
)

// ReviewRepository 书评仓储的内存实现
type ReviewRepository struct {
	store *Store
}

// NewReviewRepository 创建内存书评仓储
func NewReviewRepository(store *Store) *ReviewRepository {
	return &ReviewRepository{store: store}
}

// Create 创建书评
func (r *ReviewRepository) Create(ctx context.Context, review *entity.Review) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	r.store.nextReviewID++
	review.ID = r.store.nextReviewID
	if review.CreatedAt.IsZero() {
		review.CreatedAt = time.Now()
	}
	r.store.reviews[review.ID] = cloneReview(review)
	return nil
}

// ListByNovel 按创建时间降序返回小说书评，附带评论者信息
func (r *ReviewRepository) ListByNovel(ctx context.Context, novelID int64) ([]*entity.Review, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	reviews := make([]*entity.Review, 0)
	for _, rev := range r.store.reviews {
		if rev.NovelID != novelID {
			continue
		}
		c := cloneReview(rev)
		c.User = cloneUser(r.store.users[c.UserID])
		reviews = append(reviews, c)
	}
	sort.Slice(reviews, func(i, j int) bool {
		if !reviews[i].CreatedAt.Equal(reviews[j].CreatedAt) {
			return reviews[i].CreatedAt.After(reviews[j].CreatedAt)
		}
		return reviews[i].ID > reviews[j].ID
	})
	return reviews, nil
}

// Delete 删除书评
func (r *ReviewRepository) Delete(ctx context.Context, id int64) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	delete(r.store.reviews, id)
	return nil
}
