package handler_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"novel-nest-api/internal/interfaces/http/dto"
	"novel-nest-api/pkg/errors"
)

func TestListNovelsEndpoint_Paginates(t *testing.T) {
	t.Parallel()
	app := newTestApp(t)

	w := app.do(t, http.MethodGet, "/v1/novels?page=1&page_size=3", nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	var novels []*dto.NovelDTO
	decodeData(t, w, &novels)
	require.Len(t, novels, 3)

	meta := decodeMeta(t, w)
	require.Equal(t, 4, meta.Total)
	require.Equal(t, 2, meta.TotalPages)

	// 按最后更新时间降序
	require.Equal(t, "Ashes of the Ninth Gate", novels[0].Title)
	require.Equal(t, "elias", novels[0].AuthorName)
}

func TestRecommendedEndpoint_OrdersByLikes(t *testing.T) {
	t.Parallel()
	app := newTestApp(t)

	w := app.do(t, http.MethodGet, "/v1/novels/recommended", nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	var novels []*dto.NovelDTO
	decodeData(t, w, &novels)
	require.Len(t, novels, 4)
	require.Equal(t, "Signal Decay", novels[0].Title)
	require.Equal(t, "Ashes of the Ninth Gate", novels[1].Title)
}

func TestFantasyEndpoint_FiltersByTag(t *testing.T) {
	t.Parallel()
	app := newTestApp(t)

	w := app.do(t, http.MethodGet, "/v1/novels/fantasy", nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	var novels []*dto.NovelDTO
	decodeData(t, w, &novels)
	require.Len(t, novels, 3)
	for _, n := range novels {
		require.Contains(t, n.Tags, "Fantasy")
	}
}

func TestTagEndpoint_UnknownTagReturnsEmptyList(t *testing.T) {
	t.Parallel()
	app := newTestApp(t)

	w := app.do(t, http.MethodGet, "/v1/novels/tags/Romance", nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	var novels []*dto.NovelDTO
	decodeData(t, w, &novels)
	require.NotNil(t, novels)
	require.Empty(t, novels)
}

func TestGetNovelEndpoint_ReturnsDetailAndCountsView(t *testing.T) {
	t.Parallel()
	app := newTestApp(t)

	w := app.do(t, http.MethodGet, "/v1/novels/1", nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	var detail dto.NovelDetailDTO
	decodeData(t, w, &detail)
	require.Equal(t, "Ashes of the Ninth Gate", detail.Title)
	require.Len(t, detail.Episodes, 3)
	// 目录条目不含正文
	require.Equal(t, int64(4211), detail.Views)

	// 再次访问浏览数继续递增
	w = app.do(t, http.MethodGet, "/v1/novels/1", nil, "")
	decodeData(t, w, &detail)
	require.Equal(t, int64(4212), detail.Views)
}

func TestGetNovelEndpoint_MissingAndInvalidID(t *testing.T) {
	t.Parallel()
	app := newTestApp(t)

	w := app.do(t, http.MethodGet, "/v1/novels/999", nil, "")
	require.Equal(t, http.StatusNotFound, w.Code)
	require.Equal(t, string(errors.CodeNovelNotFound), decodeError(t, w).ErrorCode)

	w = app.do(t, http.MethodGet, "/v1/novels/abc", nil, "")
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLikeNovelEndpoint_RequiresAuth(t *testing.T) {
	t.Parallel()
	app := newTestApp(t)

	w := app.do(t, http.MethodPost, "/v1/novels/1/like", nil, "")
	require.Equal(t, http.StatusUnauthorized, w.Code)

	resp := app.login(t, "mira@novelnest.dev")
	w = app.do(t, http.MethodPost, "/v1/novels/1/like", nil, resp.AccessToken)
	require.Equal(t, http.StatusNoContent, w.Code)

	// 点赞反映到详情
	w = app.do(t, http.MethodGet, "/v1/novels/1", nil, "")
	var detail dto.NovelDetailDTO
	decodeData(t, w, &detail)
	require.Equal(t, int64(390), detail.Likes)

	w = app.do(t, http.MethodPost, "/v1/novels/999/like", nil, resp.AccessToken)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestNovelsEndpoint_MethodNotAllowed(t *testing.T) {
	t.Parallel()
	app := newTestApp(t)

	// 路径存在但方法未注册
	w := app.do(t, http.MethodDelete, "/v1/novels/1", nil, "")
	require.Equal(t, http.StatusMethodNotAllowed, w.Code)
}
