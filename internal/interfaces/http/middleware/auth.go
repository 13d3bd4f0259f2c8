// Package middleware 提供 HTTP 中间件
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"novel-nest-api/pkg/logger"
	"novel-nest-api/pkg/utils"
)

// AuthConfig 认证配置
type AuthConfig struct {
	// Secret JWT 密钥
	Secret string
	// Issuer JWT 签发者
	Issuer string
}

// Auth 认证中间件
// 要求请求携带有效的 Bearer AccessToken，否则返回 401
func Auth(cfg AuthConfig) gin.HandlerFunc {
	jwtManager := utils.NewJWTManager(cfg.Secret, cfg.Issuer)

	return func(c *gin.Context) {
		claims, ok := parseBearer(c, jwtManager)
		if !ok {
			return
		}

		setIdentity(c, claims)
		c.Next()
	}
}

// OptionalAuth 可选认证中间件
// 携带有效令牌时注入身份，匿名请求照常放行
// 用于导航解析和章节阅读等对游客开放的端点
func OptionalAuth(cfg AuthConfig) gin.HandlerFunc {
	jwtManager := utils.NewJWTManager(cfg.Secret, cfg.Issuer)

	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.Next()
			return
		}

		claims, err := jwtManager.ParseToken(parts[1])
		if err != nil || claims.Type != "access" {
			c.Next()
			return
		}

		setIdentity(c, claims)
		c.Next()
	}
}

// parseBearer 解析并校验 Bearer AccessToken，失败时终止请求
func parseBearer(c *gin.Context, jwtManager *utils.JWTManager) (*utils.Claims, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		abortUnauthorized(c, "missing authorization header")
		return nil, false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		abortUnauthorized(c, "invalid authorization format")
		return nil, false
	}

	claims, err := jwtManager.ParseToken(parts[1])
	if err != nil {
		msg := "invalid token"
		if err == utils.ErrExpiredToken {
			msg = "token expired"
		}
		abortUnauthorized(c, msg)
		return nil, false
	}

	// 确保是 AccessToken
	if claims.Type != "access" {
		abortUnauthorized(c, "invalid token type")
		return nil, false
	}

	return claims, true
}

// setIdentity 注入用户身份到 Context
func setIdentity(c *gin.Context, claims *utils.Claims) {
	c.Set("user_id", claims.UserID)
	c.Set("role", claims.Role)
	c.Set("session_id", claims.SessionID)

	ctx := logger.WithContext(c.Request.Context(), logger.UserIDKey, claims.UserID)
	c.Request = c.Request.WithContext(ctx)
}

// abortUnauthorized 终止请求并返回 401
func abortUnauthorized(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"code":     401,
		"message":  msg,
		"trace_id": c.GetString("trace_id"),
	})
}

// UserID 从 Context 读取当前用户 ID，匿名请求返回 0
func UserID(c *gin.Context) int64 {
	v, ok := c.Get("user_id")
	if !ok {
		return 0
	}
	id, _ := v.(int64)
	return id
}

// SessionID 从 Context 读取当前会话 ID
func SessionID(c *gin.Context) string {
	return c.GetString("session_id")
}
