package memory

import (
	"context"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/require"

	"novel-nest-api/internal/domain/entity"
	"novel-nest-api/internal/domain/repository"
)

func TestUserRepository_CreateAssignsMonotonicIDs(t *testing.T) {
	t.Parallel()

	store := NewStoreWithFixtures()
	repo := NewUserRepository(store)
	ctx := context.Background()

	first := entity.NewUser("nadia", "nadia@novelnest.dev")
	require.NoError(t, repo.Create(ctx, first))
	second := entity.NewUser("omar", "omar@novelnest.dev")
	require.NoError(t, repo.Create(ctx, second))

	// 固定数据占用 1..5，新 ID 在其后单调递增
	require.Equal(t, int64(6), first.ID)
	require.Equal(t, int64(7), second.ID)
}

func TestUserRepository_LookupsReturnNilNilWhenMissing(t *testing.T) {
	t.Parallel()

	repo := NewUserRepository(NewStoreWithFixtures())
	ctx := context.Background()

	u, err := repo.GetByID(ctx, 999)
	require.NoError(t, err)
	require.Nil(t, u)

	u, err = repo.GetByEmail(ctx, "ghost@novelnest.dev")
	require.NoError(t, err)
	require.Nil(t, u)

	u, err = repo.GetByUsername(ctx, "ghost")
	require.NoError(t, err)
	require.Nil(t, u)
}

func TestUserRepository_ReturnsCopies(t *testing.T) {
	t.Parallel()

	repo := NewUserRepository(NewStoreWithFixtures())
	ctx := context.Background()

	u, err := repo.GetByUsername(ctx, "mira")
	require.NoError(t, err)
	require.NotNil(t, u)

	// 修改返回值不应污染存储
	u.Bio = "mutated"
	again, err := repo.GetByUsername(ctx, "mira")
	require.NoError(t, err)
	require.NotEqual(t, "mutated", again.Bio)
}

func TestUserRepository_UpdateProfile(t *testing.T) {
	t.Parallel()

	repo := NewUserRepository(NewStoreWithFixtures())
	ctx := context.Background()

	require.NoError(t, repo.UpdateProfile(ctx, 1, "https://cdn.novelnest.dev/a.png", "new bio"))

	u, err := repo.GetByID(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, "https://cdn.novelnest.dev/a.png", u.ProfilePicture)
	require.Equal(t, "new bio", u.Bio)
}

func TestNovelRepository_ListRecommendedOrdersByLikes(t *testing.T) {
	t.Parallel()

	repo := NewNovelRepository(NewStoreWithFixtures())
	ctx := context.Background()

	novels, err := repo.ListRecommended(ctx, 3)
	require.NoError(t, err)
	require.Len(t, novels, 3)
	require.Equal(t, "Signal Decay", novels[0].Title)
	require.Equal(t, "Ashes of the Ninth Gate", novels[1].Title)
	require.Equal(t, "The Clockwork Orchard", novels[2].Title)
	// 作者信息随书单一并返回
	require.NotNil(t, novels[1].Author)
	require.Equal(t, "elias", novels[1].Author.Username)
}

func TestNovelRepository_ListByTagFiltersAndOrders(t *testing.T) {
	t.Parallel()

	repo := NewNovelRepository(NewStoreWithFixtures())
	ctx := context.Background()

	novels, err := repo.ListByTag(ctx, "Fantasy", 10)
	require.NoError(t, err)
	require.Len(t, novels, 3)
	require.Equal(t, int64(1), novels[0].ID)
	require.Equal(t, int64(2), novels[1].ID)
	require.Equal(t, int64(4), novels[2].ID)

	none, err := repo.ListByTag(ctx, "Romance", 10)
	require.NoError(t, err)
	require.Empty(t, none)
}

func TestNovelRepository_ListByAuthor(t *testing.T) {
	t.Parallel()

	repo := NewNovelRepository(NewStoreWithFixtures())
	ctx := context.Background()

	novels, err := repo.ListByAuthor(ctx, 2)
	require.NoError(t, err)
	require.Len(t, novels, 2)

	none, err := repo.ListByAuthor(ctx, 999)
	require.NoError(t, err)
	require.NotNil(t, none)
	require.Empty(t, none)
}

func TestNovelRepository_ListAllPagination(t *testing.T) {
	t.Parallel()

	repo := NewNovelRepository(NewStoreWithFixtures())
	ctx := context.Background()

	page, err := repo.ListAll(ctx, repository.NewPagination(1, 3))
	require.NoError(t, err)
	require.Equal(t, int64(4), page.Total)
	require.Equal(t, 2, page.TotalPages)
	require.Len(t, page.Items, 3)
	// 按最后更新时间降序
	require.Equal(t, int64(1), page.Items[0].ID)

	last, err := repo.ListAll(ctx, repository.NewPagination(2, 3))
	require.NoError(t, err)
	require.Len(t, last.Items, 1)

	empty, err := repo.ListAll(ctx, repository.NewPagination(5, 3))
	require.NoError(t, err)
	require.Empty(t, empty.Items)
}

func TestNovelRepository_Counters(t *testing.T) {
	t.Parallel()

	repo := NewNovelRepository(NewStoreWithFixtures())
	ctx := context.Background()

	before, err := repo.GetByID(ctx, 1)
	require.NoError(t, err)

	require.NoError(t, repo.IncrementViews(ctx, 1))
	require.NoError(t, repo.IncrementLikes(ctx, 1))
	require.NoError(t, repo.IncrementLikes(ctx, 1))

	after, err := repo.GetByID(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, before.Views+1, after.Views)
	require.Equal(t, before.Likes+2, after.Likes)
}

func TestNovelRepository_RecomputeRating(t *testing.T) {
	t.Parallel()

	store := NewStoreWithFixtures()
	novels := NewNovelRepository(store)
	reviews := NewReviewRepository(store)
	ctx := context.Background()

	// 小说 1 已有 5 与 4 两条书评，再加一条 3
	require.NoError(t, reviews.Create(ctx, &entity.Review{
		NovelID: 1, UserID: 5, Rating: 3, Comment: "中规中矩", CreatedAt: time.Now(),
	}))
	require.NoError(t, novels.RecomputeRating(ctx, 1))

	n, err := novels.GetByID(ctx, 1)
	require.NoError(t, err)
	require.InDelta(t, 4.0, n.Rating, 0.001)
}

func TestNovelRepository_RecomputeRatingWithoutReviews(t *testing.T) {
	t.Parallel()

	store := NewStoreWithFixtures()
	novels := NewNovelRepository(store)
	ctx := context.Background()

	// 小说 2 没有任何书评，评分归零
	require.NoError(t, novels.RecomputeRating(ctx, 2))
	n, err := novels.GetByID(ctx, 2)
	require.NoError(t, err)
	require.Zero(t, n.Rating)
}

func TestNovelRepository_DeleteCascades(t *testing.T) {
	t.Parallel()

	store := NewStoreWithFixtures()
	novels := NewNovelRepository(store)
	episodes := NewEpisodeRepository(store)
	reviews := NewReviewRepository(store)
	comments := NewCommentRepository(store)
	ctx := context.Background()

	require.NoError(t, novels.Delete(ctx, 1))

	n, err := novels.GetByID(ctx, 1)
	require.NoError(t, err)
	require.Nil(t, n)

	eps, err := episodes.ListByNovel(ctx, 1)
	require.NoError(t, err)
	require.Empty(t, eps)

	rs, err := reviews.ListByNovel(ctx, 1)
	require.NoError(t, err)
	require.Empty(t, rs)

	// 章节 1 的评论随章节一并删除
	cs, err := comments.ListByEpisode(ctx, 1)
	require.NoError(t, err)
	require.Empty(t, cs)

	// 其他小说不受影响
	other, err := episodes.ListByNovel(ctx, 2)
	require.NoError(t, err)
	require.Len(t, other, 2)
}

func TestNovelRepository_CreateAssignsID(t *testing.T) {
	t.Parallel()

	repo := NewNovelRepository(NewStoreWithFixtures())
	ctx := context.Background()

	n := &entity.Novel{
		Title: "Ninth Tide", Description: "潮汐之下的王座",
		Tags: pq.StringArray{"Fantasy"}, Status: entity.NovelStatusOngoing,
		AuthorID: 2, LastUpdate: time.Now(),
	}
	require.NoError(t, repo.Create(ctx, n))
	require.Equal(t, int64(5), n.ID)

	got, err := repo.GetByID(ctx, 5)
	require.NoError(t, err)
	require.Equal(t, "Ninth Tide", got.Title)
}

func TestEpisodeRepository_ListByNovelOrdersByReleaseDate(t *testing.T) {
	t.Parallel()

	repo := NewEpisodeRepository(NewStoreWithFixtures())
	ctx := context.Background()

	eps, err := repo.ListByNovel(ctx, 1)
	require.NoError(t, err)
	require.Len(t, eps, 3)
	require.True(t, eps[0].ReleaseDate.Before(eps[1].ReleaseDate))
	require.True(t, eps[1].ReleaseDate.Before(eps[2].ReleaseDate))
	require.Equal(t, int64(1), eps[0].ID)
	require.True(t, eps[2].IsLocked)
}

func TestEpisodeRepository_GetByNovelAndID(t *testing.T) {
	t.Parallel()

	repo := NewEpisodeRepository(NewStoreWithFixtures())
	ctx := context.Background()

	e, err := repo.GetByNovelAndID(ctx, 1, 2)
	require.NoError(t, err)
	require.NotNil(t, e)
	require.Equal(t, "第二章 无名旅人", e.Title)

	// 章节存在但属于其他小说
	e, err = repo.GetByNovelAndID(ctx, 2, 2)
	require.NoError(t, err)
	require.Nil(t, e)

	e, err = repo.GetByNovelAndID(ctx, 1, 999)
	require.NoError(t, err)
	require.Nil(t, e)
}

func TestEpisodeRepository_DeleteCascadesComments(t *testing.T) {
	t.Parallel()

	store := NewStoreWithFixtures()
	episodes := NewEpisodeRepository(store)
	comments := NewCommentRepository(store)
	ctx := context.Background()

	require.NoError(t, episodes.Delete(ctx, 1))

	cs, err := comments.ListByEpisode(ctx, 1)
	require.NoError(t, err)
	require.Empty(t, cs)

	// 其他章节的评论保留
	cs, err = comments.ListByEpisode(ctx, 6)
	require.NoError(t, err)
	require.Len(t, cs, 1)
}

func TestReviewRepository_ListByNovelNewestFirst(t *testing.T) {
	t.Parallel()

	repo := NewReviewRepository(NewStoreWithFixtures())
	ctx := context.Background()

	rs, err := repo.ListByNovel(ctx, 1)
	require.NoError(t, err)
	require.Len(t, rs, 2)
	require.True(t, rs[0].CreatedAt.After(rs[1].CreatedAt))
	// 书评携带作者信息
	require.NotNil(t, rs[0].User)
}

func TestCommentRepository_ListByEpisodeOldestFirst(t *testing.T) {
	t.Parallel()

	repo := NewCommentRepository(NewStoreWithFixtures())
	ctx := context.Background()

	cs, err := repo.ListByEpisode(ctx, 1)
	require.NoError(t, err)
	require.Len(t, cs, 3)
	require.True(t, cs[0].CreatedAt.Before(cs[1].CreatedAt))
	require.True(t, cs[1].CreatedAt.Before(cs[2].CreatedAt))
	require.NotNil(t, cs[1].ParentID)
	require.Equal(t, int64(1), *cs[1].ParentID)
}

func TestCommentRepository_CreateAndGet(t *testing.T) {
	t.Parallel()

	repo := NewCommentRepository(NewStoreWithFixtures())
	ctx := context.Background()

	c := &entity.Comment{EpisodeID: 2, UserID: 1, Content: "第二章伏笔更多", CreatedAt: time.Now()}
	require.NoError(t, repo.Create(ctx, c))
	require.Equal(t, int64(5), c.ID)

	got, err := repo.GetByID(ctx, c.ID)
	require.NoError(t, err)
	require.Equal(t, "第二章伏笔更多", got.Content)

	missing, err := repo.GetByID(ctx, 999)
	require.NoError(t, err)
	require.Nil(t, missing)
}

func TestTransactor_RunsFunctionDirectly(t *testing.T) {
	t.Parallel()

	tx := NewTransactor()
	called := false
	err := tx.WithTransaction(context.Background(), func(ctx context.Context) error {
		called = true
		return nil
	})
	require.NoError(t, err)
	require.True(t, called)
}
