package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"novel-nest-api/internal/domain/entity"
)

func TestHasPermission_Matrix(t *testing.T) {
	t.Parallel()

	cases := []struct {
		role entity.UserRole
		perm Permission
		want bool
	}{
		{entity.UserRoleReader, PermNovelRead, true},
		{entity.UserRoleReader, PermNovelPublish, false},
		{entity.UserRoleWriter, PermNovelPublish, true},
		{entity.UserRoleWriter, PermAdminAccess, false},
		{entity.UserRoleAdmin, PermNovelPublish, true},
		{entity.UserRoleAdmin, PermAdminAccess, true},
		{entity.UserRoleDeveloper, PermDevAccess, true},
		{entity.UserRoleDeveloper, PermNovelPublish, false},
		{entity.UserRole("ghost"), PermNovelRead, false},
	}

	for _, tc := range cases {
		require.Equal(t, tc.want, HasPermission(tc.role, tc.perm), "role=%s perm=%s", tc.role, tc.perm)
	}
}

// doWithRole 以指定角色访问挂了给定中间件的端点
func doWithRole(t *testing.T, mw gin.HandlerFunc, role string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	engine := gin.New()
	engine.GET("/guarded", func(c *gin.Context) {
		if role != "" {
			c.Set("role", role)
		}
	}, mw, func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/guarded", nil))
	return w
}

func TestRequirePermission(t *testing.T) {
	t.Parallel()

	require.Equal(t, http.StatusOK, doWithRole(t, RequireWriter(), "writer").Code)
	require.Equal(t, http.StatusOK, doWithRole(t, RequireWriter(), "admin").Code)
	require.Equal(t, http.StatusForbidden, doWithRole(t, RequireWriter(), "reader").Code)
	require.Equal(t, http.StatusForbidden, doWithRole(t, RequireWriter(), "").Code)

	require.Equal(t, http.StatusOK, doWithRole(t, RequireAdmin(), "admin").Code)
	require.Equal(t, http.StatusForbidden, doWithRole(t, RequireAdmin(), "developer").Code)
}

func TestRequireRole(t *testing.T) {
	t.Parallel()

	mw := RequireRole(entity.UserRoleAdmin, entity.UserRoleDeveloper)
	require.Equal(t, http.StatusOK, doWithRole(t, mw, "admin").Code)
	require.Equal(t, http.StatusOK, doWithRole(t, mw, "developer").Code)
	require.Equal(t, http.StatusForbidden, doWithRole(t, mw, "writer").Code)
	require.Equal(t, http.StatusForbidden, doWithRole(t, mw, "unknown").Code)
}
