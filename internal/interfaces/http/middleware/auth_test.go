package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"novel-nest-api/pkg/utils"
)

const (
	testSecret = "middleware-test-secret"
	testIssuer = "novel-nest-test"
)

// newAuthEngine 挂载认证中间件的最小引擎，受保护端点回显身份
func newAuthEngine(t *testing.T, optional bool) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := AuthConfig{Secret: testSecret, Issuer: testIssuer}
	engine := gin.New()

	mw := Auth(cfg)
	if optional {
		mw = OptionalAuth(cfg)
	}
	engine.GET("/whoami", mw, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user_id":    UserID(c),
			"session_id": SessionID(c),
			"role":       c.GetString("role"),
		})
	})
	return engine
}

func issueToken(t *testing.T, tokenType string, ttl time.Duration) string {
	t.Helper()

	token, err := utils.NewJWTManager(testSecret, testIssuer).GenerateToken(42, "writer", "sess-1", tokenType, ttl)
	require.NoError(t, err)
	return token
}

func get(engine *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestAuth_ValidTokenInjectsIdentity(t *testing.T) {
	t.Parallel()

	engine := newAuthEngine(t, false)
	w := get(engine, "Bearer "+issueToken(t, "access", time.Minute))
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"user_id":42`)
	require.Contains(t, w.Body.String(), `"session_id":"sess-1"`)
	require.Contains(t, w.Body.String(), `"role":"writer"`)
}

func TestAuth_RejectsMissingAndMalformedHeaders(t *testing.T) {
	t.Parallel()

	engine := newAuthEngine(t, false)

	require.Equal(t, http.StatusUnauthorized, get(engine, "").Code)
	require.Equal(t, http.StatusUnauthorized, get(engine, "Basic abc").Code)
	require.Equal(t, http.StatusUnauthorized, get(engine, "Bearer not-a-token").Code)
}

func TestAuth_RejectsExpiredAndRefreshTokens(t *testing.T) {
	t.Parallel()

	engine := newAuthEngine(t, false)

	w := get(engine, "Bearer "+issueToken(t, "access", -time.Minute))
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Contains(t, w.Body.String(), "token expired")

	// 刷新令牌不能用于访问
	w = get(engine, "Bearer "+issueToken(t, "refresh", time.Minute))
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestOptionalAuth_AnonymousAndInvalidPassThrough(t *testing.T) {
	t.Parallel()

	engine := newAuthEngine(t, true)

	w := get(engine, "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"user_id":0`)

	// 无效令牌静默当作匿名
	w = get(engine, "Bearer garbage")
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"user_id":0`)
}

func TestOptionalAuth_ValidTokenInjectsIdentity(t *testing.T) {
	t.Parallel()

	engine := newAuthEngine(t, true)
	w := get(engine, "Bearer "+issueToken(t, "access", time.Minute))
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"user_id":42`)
}
