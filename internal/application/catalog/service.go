// Package catalog 提供书单聚合服务
// 推荐榜单与标签书单经 Redis 缓存，读路径用 singleflight 防止击穿
package catalog

import (
	"context"
	"encoding/json"
	"time"

	"novel-nest-api/internal/domain/entity"
	"novel-nest-api/internal/domain/repository"
	"novel-nest-api/pkg/logger"
)

// FeedCache 书单缓存接口
type FeedCache interface {
	GetOrLoadSafe(ctx context.Context, key string, ttl time.Duration, loader func() (interface{}, error)) ([]byte, error)
	InvalidateFeeds(ctx context.Context) error
}

// Keys 书单缓存键
type Keys struct {
	Recommended string
	Tag         func(tag string) string
}

// Service 书单服务
type Service struct {
	novels   repository.NovelRepository
	cache    FeedCache
	keys     Keys
	feedTTL  time.Duration
	feedSize int
}

// NewService 创建书单服务
// cache 为 nil 时直接回源，便于 memory 模式运行
func NewService(novels repository.NovelRepository, cache FeedCache, keys Keys, feedTTL time.Duration, feedSize int) *Service {
	if feedTTL <= 0 {
		feedTTL = time.Minute
	}
	if feedSize <= 0 {
		feedSize = 8
	}
	return &Service{
		novels:   novels,
		cache:    cache,
		keys:     keys,
		feedTTL:  feedTTL,
		feedSize: feedSize,
	}
}

// FeedSize 书单条数
func (s *Service) FeedSize() int {
	return s.feedSize
}

// Recommended 推荐书单：按点赞数降序的有界子集
func (s *Service) Recommended(ctx context.Context) ([]*entity.Novel, error) {
	if s.cache == nil {
		return s.novels.ListRecommended(ctx, s.feedSize)
	}
	return s.cached(ctx, s.keys.Recommended, func() (interface{}, error) {
		return s.novels.ListRecommended(ctx, s.feedSize)
	})
}

// ByTag 标签书单：带指定标签的小说，按点赞数降序
func (s *Service) ByTag(ctx context.Context, tag string) ([]*entity.Novel, error) {
	if s.cache == nil {
		return s.novels.ListByTag(ctx, tag, s.feedSize)
	}
	return s.cached(ctx, s.keys.Tag(tag), func() (interface{}, error) {
		return s.novels.ListByTag(ctx, tag, s.feedSize)
	})
}

// Invalidate 使全部书单缓存失效
// 小说发布、点赞或更新后调用
func (s *Service) Invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateFeeds(ctx); err != nil {
		// 缓存失效失败只影响新鲜度，不阻塞写路径
		logger.Warn(ctx, "failed to invalidate feed cache", "error", err.Error())
	}
}

func (s *Service) cached(ctx context.Context, key string, loader func() (interface{}, error)) ([]*entity.Novel, error) {
	bytes, err := s.cache.GetOrLoadSafe(ctx, key, s.feedTTL, loader)
	if err != nil {
		return nil, err
	}
	var novels []*entity.Novel
	if err := json.Unmarshal(bytes, &novels); err != nil {
		return nil, err
	}
	return novels, nil
}
