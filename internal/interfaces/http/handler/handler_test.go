package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"novel-nest-api/internal/application/auth"
	"novel-nest-api/internal/application/catalog"
	"novel-nest-api/internal/config"
	"novel-nest-api/internal/infrastructure/persistence/memory"
	"novel-nest-api/internal/interfaces/http/dto"
	"novel-nest-api/internal/interfaces/http/handler"
	"novel-nest-api/internal/interfaces/http/router"
	"novel-nest-api/pkg/utils"
)

const (
	testJWTSecret = "handler-test-secret"
	testJWTIssuer = "novel-nest-test"
)

// testApp 基于内存存储组装的完整 HTTP 应用
type testApp struct {
	engine *gin.Engine
	store  *memory.Store
}

// newTestApp 按生产装配方式构建测试应用，数据来自固定内存数据集
func newTestApp(t *testing.T) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := memory.NewStoreWithFixtures()
	userRepo := memory.NewUserRepository(store)
	novelRepo := memory.NewNovelRepository(store)
	episodeRepo := memory.NewEpisodeRepository(store)
	reviewRepo := memory.NewReviewRepository(store)
	commentRepo := memory.NewCommentRepository(store)

	jwtManager := utils.NewJWTManager(testJWTSecret, testJWTIssuer)
	authService := auth.NewService(userRepo, memory.NewSessionStore(), jwtManager, 15*time.Minute, 24*time.Hour)
	catalogService := catalog.NewService(novelRepo, nil, catalog.Keys{}, time.Minute, 8)

	cfg := &config.Config{}
	cfg.App.Name = "novel-nest-test"
	cfg.App.Env = "test"
	cfg.Security.JWT.Secret = testJWTSecret
	cfg.Security.JWT.Issuer = testJWTIssuer
	cfg.Catalog.FeedSize = 8
	cfg.Catalog.FantasyTag = "Fantasy"

	handlers := router.Handlers{
		Health:     handler.NewHealthHandler(nil, nil),
		Auth:       handler.NewAuthHandler(authService),
		Navigation: handler.NewNavigationHandler(authService),
		User:       handler.NewUserHandler(userRepo, novelRepo),
		Novel:      handler.NewNovelHandler(catalogService, novelRepo, episodeRepo, cfg.Catalog.FantasyTag),
		Episode:    handler.NewEpisodeHandler(novelRepo, episodeRepo, userRepo),
		Review:     handler.NewReviewHandler(novelRepo, reviewRepo, memory.NewTransactor()),
		Comment:    handler.NewCommentHandler(novelRepo, episodeRepo, commentRepo),
		Writer:     handler.NewWriterHandler(catalogService, novelRepo, episodeRepo),
	}

	r := router.New(cfg, handlers, nil)
	return &testApp{engine: r.Engine(), store: store}
}

// do 执行一次 HTTP 请求，token 非空时附加 Bearer 认证头
func (a *testApp) do(t *testing.T, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	a.engine.ServeHTTP(w, req)
	return w
}

// login 登录固定账号并返回认证响应
func (a *testApp) login(t *testing.T, email string) *dto.AuthResponse {
	t.Helper()

	w := a.do(t, http.MethodPost, "/v1/auth/login", gin.H{
		"email":    email,
		"password": "password123",
	}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp dto.AuthResponse
	decodeData(t, w, &resp)
	return &resp
}

// envelope 统一响应信封
type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Meta    *dto.PageMeta   `json:"meta"`
}

// decodeData 解出响应信封中的 data 字段
func decodeData(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	if len(env.Data) == 0 {
		// data 为空（如匿名身份）时保持 out 的零值
		return
	}
	require.NoError(t, json.Unmarshal(env.Data, out))
}

// decodeMeta 解出响应信封中的分页元数据
func decodeMeta(t *testing.T, w *httptest.ResponseRecorder) *dto.PageMeta {
	t.Helper()

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	require.NotNil(t, env.Meta)
	return env.Meta
}

// decodeError 解出错误响应
func decodeError(t *testing.T, w *httptest.ResponseRecorder) *dto.ErrorResponse {
	t.Helper()

	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return &resp
}
