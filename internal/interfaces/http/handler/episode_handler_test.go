package handler_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"novel-nest-api/internal/interfaces/http/dto"
	"novel-nest-api/pkg/errors"
)

func TestListEpisodesEndpoint_CatalogOrderWithoutContent(t *testing.T) {
	t.Parallel()
	app := newTestApp(t)

	w := app.do(t, http.MethodGet, "/v1/novels/1/episodes", nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	var episodes []*dto.EpisodeSummaryDTO
	decodeData(t, w, &episodes)
	require.Len(t, episodes, 3)
	require.Equal(t, "第一章 灰烬中的钥匙", episodes[0].Title)
	require.True(t, episodes[2].IsLocked)
	require.Equal(t, 120, episodes[2].Price)
}

func TestGetEpisodeEndpoint_UnlockedReadableByAnyone(t *testing.T) {
	t.Parallel()
	app := newTestApp(t)

	w := app.do(t, http.MethodGet, "/v1/novels/1/episodes/1", nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	var episode dto.EpisodeDTO
	decodeData(t, w, &episode)
	require.True(t, episode.Readable)
	require.NotEmpty(t, episode.Content)
}

func TestGetEpisodeEndpoint_LockedContentHidden(t *testing.T) {
	t.Parallel()
	app := newTestApp(t)

	// 匿名读者拿不到锁定章节正文
	w := app.do(t, http.MethodGet, "/v1/novels/1/episodes/3", nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	var episode dto.EpisodeDTO
	decodeData(t, w, &episode)
	require.False(t, episode.Readable)
	require.Empty(t, episode.Content)
	require.True(t, episode.IsLocked)

	// 普通读者同样不可读
	reader := app.login(t, "mira@novelnest.dev")
	w = app.do(t, http.MethodGet, "/v1/novels/1/episodes/3", nil, reader.AccessToken)
	decodeData(t, w, &episode)
	require.False(t, episode.Readable)
	require.Empty(t, episode.Content)
}

func TestGetEpisodeEndpoint_AuthorAndAdminReadLocked(t *testing.T) {
	t.Parallel()
	app := newTestApp(t)

	// 作者可读自己小说的锁定章节
	author := app.login(t, "elias@novelnest.dev")
	w := app.do(t, http.MethodGet, "/v1/novels/1/episodes/3", nil, author.AccessToken)
	require.Equal(t, http.StatusOK, w.Code)

	var episode dto.EpisodeDTO
	decodeData(t, w, &episode)
	require.True(t, episode.Readable)
	require.NotEmpty(t, episode.Content)

	// 管理员可读任意锁定章节
	admin := app.login(t, "admin@novelnest.dev")
	w = app.do(t, http.MethodGet, "/v1/novels/1/episodes/3", nil, admin.AccessToken)
	decodeData(t, w, &episode)
	require.True(t, episode.Readable)
}

func TestGetEpisodeEndpoint_CrossNovelIsNotFound(t *testing.T) {
	t.Parallel()
	app := newTestApp(t)

	// 章节 4 属于小说 2，不能从小说 1 的路径访问
	w := app.do(t, http.MethodGet, "/v1/novels/1/episodes/4", nil, "")
	require.Equal(t, http.StatusNotFound, w.Code)
	require.Equal(t, string(errors.CodeEpisodeNotFound), decodeError(t, w).ErrorCode)

	w = app.do(t, http.MethodGet, "/v1/novels/999/episodes/1", nil, "")
	require.Equal(t, http.StatusNotFound, w.Code)
	require.Equal(t, string(errors.CodeNovelNotFound), decodeError(t, w).ErrorCode)
}
