package catalog_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"novel-nest-api/internal/application/catalog"
	"novel-nest-api/internal/infrastructure/persistence/memory"
)

// fakeFeedCache 记录调用的内存缓存，回源结果按键保存
type fakeFeedCache struct {
	entries     map[string][]byte
	loads       int
	invalidated int
}

func newFakeFeedCache() *fakeFeedCache {
	return &fakeFeedCache{entries: map[string][]byte{}}
}

func (f *fakeFeedCache) GetOrLoadSafe(ctx context.Context, key string, ttl time.Duration, loader func() (interface{}, error)) ([]byte, error) {
	if raw, ok := f.entries[key]; ok {
		return raw, nil
	}
	f.loads++
	value, err := loader()
	if err != nil {
		return nil, err
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return nil, err
	}
	f.entries[key] = raw
	return raw, nil
}

func (f *fakeFeedCache) InvalidateFeeds(ctx context.Context) error {
	f.invalidated++
	f.entries = map[string][]byte{}
	return nil
}

func testKeys() catalog.Keys {
	return catalog.Keys{
		Recommended: "feed:recommended",
		Tag:         func(tag string) string { return "feed:tag:" + tag },
	}
}

func TestRecommended_BoundedAndOrdered(t *testing.T) {
	t.Parallel()

	novels := memory.NewNovelRepository(memory.NewStoreWithFixtures())
	svc := catalog.NewService(novels, nil, testKeys(), time.Minute, 2)

	feed, err := svc.Recommended(context.Background())
	require.NoError(t, err)
	require.Len(t, feed, 2)
	require.Equal(t, "Signal Decay", feed[0].Title)
	require.Equal(t, "Ashes of the Ninth Gate", feed[1].Title)
}

func TestRecommended_SecondReadServedFromCache(t *testing.T) {
	t.Parallel()

	novels := memory.NewNovelRepository(memory.NewStoreWithFixtures())
	cache := newFakeFeedCache()
	svc := catalog.NewService(novels, cache, testKeys(), time.Minute, 8)
	ctx := context.Background()

	first, err := svc.Recommended(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, cache.loads)

	second, err := svc.Recommended(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, cache.loads)
	require.Equal(t, len(first), len(second))
	require.Equal(t, first[0].ID, second[0].ID)
}

func TestByTag_UsesPerTagKeys(t *testing.T) {
	t.Parallel()

	novels := memory.NewNovelRepository(memory.NewStoreWithFixtures())
	cache := newFakeFeedCache()
	svc := catalog.NewService(novels, cache, testKeys(), time.Minute, 8)
	ctx := context.Background()

	fantasy, err := svc.ByTag(ctx, "Fantasy")
	require.NoError(t, err)
	require.Len(t, fantasy, 3)

	scifi, err := svc.ByTag(ctx, "SciFi")
	require.NoError(t, err)
	require.Len(t, scifi, 1)

	require.Contains(t, cache.entries, "feed:tag:Fantasy")
	require.Contains(t, cache.entries, "feed:tag:SciFi")
	require.Equal(t, 2, cache.loads)
}

func TestInvalidate_DropsCachedFeeds(t *testing.T) {
	t.Parallel()

	store := memory.NewStoreWithFixtures()
	novels := memory.NewNovelRepository(store)
	cache := newFakeFeedCache()
	svc := catalog.NewService(novels, cache, testKeys(), time.Minute, 8)
	ctx := context.Background()

	_, err := svc.Recommended(ctx)
	require.NoError(t, err)

	// 点赞后失效缓存，下一次读取回源拿到新排序
	require.NoError(t, novels.IncrementLikes(ctx, 1))
	svc.Invalidate(ctx)
	require.Equal(t, 1, cache.invalidated)

	feed, err := svc.Recommended(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, cache.loads)
	require.Equal(t, int64(390), feed[1].Likes)
}

func TestInvalidate_NilCacheIsNoop(t *testing.T) {
	t.Parallel()

	novels := memory.NewNovelRepository(memory.NewStoreWithFixtures())
	svc := catalog.NewService(novels, nil, catalog.Keys{}, time.Minute, 8)

	// 不应崩溃
	svc.Invalidate(context.Background())
}
