package memory

import (
	"context"
	"sort"

	"novel-nest-api/internal/domain/entity"
)

// EpisodeRepository 章节仓储的内存实现
type EpisodeRepository struct {
	store *Store
}

// NewEpisodeRepository 创建内存章节仓储
func NewEpisodeRepository(store *Store) *EpisodeRepository {
	return &EpisodeRepository{store: store}
}

// Create 创建章节
func (r *EpisodeRepository) Create(ctx context.Context, episode *entity.Episode) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	r.store.nextEpisodeID++
	episode.ID = r.store.nextEpisodeID
	r.store.episodes[episode.ID] = cloneEpisode(episode)
	return nil
}

// GetByNovelAndID 定位某本小说下的章节
// 章节存在但属于别的小说时同样返回 (nil, nil)
func (r *EpisodeRepository) GetByNovelAndID(ctx context.Context, novelID, episodeID int64) (*entity.Episode, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	e, ok := r.store.episodes[episodeID]
	if !ok || e.NovelID != novelID {
		return nil, nil
	}
	return cloneEpisode(e), nil
}

// ListByNovel 按发布时间升序返回小说全部章节
func (r *EpisodeRepository) ListByNovel(ctx context.Context, novelID int64) ([]*entity.Episode, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	episodes := make([]*entity.Episode, 0)
	for _, e := range r.store.episodes {
		if e.NovelID == novelID {
			episodes = append(episodes, cloneEpisode(e))
		}
	}
	sort.Slice(episodes, func(i, j int) bool {
		if !episodes[i].ReleaseDate.Equal(episodes[j].ReleaseDate) {
			return episodes[i].ReleaseDate.Before(episodes[j].ReleaseDate)
		}
		return episodes[i].ID < episodes[j].ID
	})
	return episodes, nil
}

// Update 更新章节
func (r *EpisodeRepository) Update(ctx context.Context, episode *entity.Episode) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.episodes[episode.ID]; ok {
		r.store.episodes[episode.ID] = cloneEpisode(episode)
	}
	return nil
}

// Delete 删除章节及其评论
func (r *EpisodeRepository) Delete(ctx context.Context, id int64) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	delete(r.store.episodes, id)
	for cid, c := range r.store.comments {
		if c.EpisodeID == id {
			delete(r.store.comments, cid)
		}
	}
	return nil
}
