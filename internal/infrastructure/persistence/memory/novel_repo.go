package memory

import (
	"context"
	"sort"

	"novel-nest-api/internal/domain/entity"
	"novel-nest-api/internal/domain/repository"
)

// NovelRepository 小说仓储的内存实现
type NovelRepository struct {
	store *Store
}

// NewNovelRepository 创建内存小说仓储
func NewNovelRepository(store *Store) *NovelRepository {
	return &NovelRepository{store: store}
}

// Create 创建小说
func (r *NovelRepository) Create(ctx context.Context, novel *entity.Novel) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	r.store.nextNovelID++
	novel.ID = r.store.nextNovelID
	r.store.novels[novel.ID] = cloneNovel(novel)
	return nil
}

// GetByID 根据 ID 获取小说，附带作者信息
func (r *NovelRepository) GetByID(ctx context.Context, id int64) (*entity.Novel, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	return r.withAuthor(cloneNovel(r.store.novels[id])), nil
}

// Update 更新小说
func (r *NovelRepository) Update(ctx context.Context, novel *entity.Novel) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.novels[novel.ID]; ok {
		r.store.novels[novel.ID] = cloneNovel(novel)
	}
	return nil
}

// Delete 删除小说及其章节、书评和章节评论
func (r *NovelRepository) Delete(ctx context.Context, id int64) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	delete(r.store.novels, id)
	for eid, e := range r.store.episodes {
		if e.NovelID != id {
			continue
		}
		delete(r.store.episodes, eid)
		for cid, c := range r.store.comments {
			if c.EpisodeID == eid {
				delete(r.store.comments, cid)
			}
		}
	}
	for rid, rev := range r.store.reviews {
		if rev.NovelID == id {
			delete(r.store.reviews, rid)
		}
	}
	return nil
}

// ListRecommended 按点赞数降序返回推荐榜单
func (r *NovelRepository) ListRecommended(ctx context.Context, limit int) ([]*entity.Novel, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	novels := r.collect(func(*entity.Novel) bool { return true })
	sortByLikes(novels)
	return truncate(novels, limit), nil
}

// ListByTag 按点赞数降序返回带指定标签的小说
func (r *NovelRepository) ListByTag(ctx context.Context, tag string, limit int) ([]*entity.Novel, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	novels := r.collect(func(n *entity.Novel) bool { return n.HasTag(tag) })
	sortByLikes(novels)
	return truncate(novels, limit), nil
}

// ListByAuthor 返回指定作者的全部小说，无结果时返回空切片
func (r *NovelRepository) ListByAuthor(ctx context.Context, authorID int64) ([]*entity.Novel, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	novels := r.collect(func(n *entity.Novel) bool { return n.AuthorID == authorID })
	sortByLastUpdate(novels)
	return novels, nil
}

// ListAll 分页返回全部小说，按最后更新时间降序
func (r *NovelRepository) ListAll(ctx context.Context, page repository.Pagination) (*repository.PagedResult[*entity.Novel], error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	novels := r.collect(func(*entity.Novel) bool { return true })
	sortByLastUpdate(novels)

	total := int64(len(novels))
	start := page.Offset()
	if start > len(novels) {
		start = len(novels)
	}
	end := start + page.PageSize
	if end > len(novels) {
		end = len(novels)
	}
	return repository.NewPagedResult(novels[start:end], total, page), nil
}

// IncrementViews 浏览量加一
func (r *NovelRepository) IncrementViews(ctx context.Context, id int64) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if n, ok := r.store.novels[id]; ok {
		n.Views++
	}
	return nil
}

// IncrementLikes 点赞数加一
func (r *NovelRepository) IncrementLikes(ctx context.Context, id int64) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if n, ok := r.store.novels[id]; ok {
		n.Likes++
	}
	return nil
}

// RecomputeRating 根据书评重新计算均分，无书评时归零
func (r *NovelRepository) RecomputeRating(ctx context.Context, id int64) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	n, ok := r.store.novels[id]
	if !ok {
		return nil
	}
	var sum, count int
	for _, rev := range r.store.reviews {
		if rev.NovelID == id {
			sum += rev.Rating
			count++
		}
	}
	if count == 0 {
		n.Rating = 0
		return nil
	}
	n.Rating = float64(sum) / float64(count)
	return nil
}

// collect 复制满足条件的小说并附带作者，调用方需持有读锁
func (r *NovelRepository) collect(keep func(*entity.Novel) bool) []*entity.Novel {
	novels := make([]*entity.Novel, 0)
	for _, n := range r.store.novels {
		if keep(n) {
			novels = append(novels, r.withAuthor(cloneNovel(n)))
		}
	}
	return novels
}

func (r *NovelRepository) withAuthor(n *entity.Novel) *entity.Novel {
	if n == nil {
		return nil
	}
	n.Author = cloneUser(r.store.users[n.AuthorID])
	return n
}

func sortByLikes(novels []*entity.Novel) {
	sort.Slice(novels, func(i, j int) bool {
		if novels[i].Likes != novels[j].Likes {
			return novels[i].Likes > novels[j].Likes
		}
		return novels[i].ID < novels[j].ID
	})
}

func sortByLastUpdate(novels []*entity.Novel) {
	sort.Slice(novels, func(i, j int) bool {
		if !novels[i].LastUpdate.Equal(novels[j].LastUpdate) {
			return novels[i].LastUpdate.After(novels[j].LastUpdate)
		}
		return novels[i].ID < novels[j].ID
	})
}

func truncate(novels []*entity.Novel, limit int) []*entity.Novel {
	if limit > 0 && len(novels) > limit {
		return novels[:limit]
	}
	return novels
}
