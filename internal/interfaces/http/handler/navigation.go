// Package handler 提供 HTTP 请求处理器
package handler

import (
	"github.com/gin-gonic/gin"

	"novel-nest-api/internal/application/auth"
	"novel-nest-api/internal/application/navigation"
	"novel-nest-api/internal/domain/entity"
	"novel-nest-api/internal/interfaces/http/dto"
	"novel-nest-api/internal/interfaces/http/middleware"
	"novel-nest-api/pkg/logger"
)

// NavigationHandler 导航解析处理器
// 把 (身份, 路径片段) 映射为前端应渲染的视图
type NavigationHandler struct {
	authService *auth.Service
}

// NewNavigationHandler 创建导航解析处理器
func NewNavigationHandler(authService *auth.Service) *NavigationHandler {
	return &NavigationHandler{
		authService: authService,
	}
}

// Resolve 解析导航
// @Summary 解析路径片段
// @Description 根据当前身份和路径片段返回目标视图，未登录一律指向登录视图
// @Tags Navigation
// @Produce json
// @Param path query string false "路径片段，如 novel/3 或 read/3/12"
// @Success 200 {object} dto.Response[dto.NavigationResponse]
// @Router /v1/navigation [get]
func (h *NavigationHandler) Resolve(c *gin.Context) {
	ctx := c.Request.Context()

	var user *entity.User
	if sessionID := middleware.SessionID(c); sessionID != "" {
		restored, err := h.authService.CurrentUser(ctx, sessionID)
		if err != nil {
			logger.Warn(ctx, "session restore failed during navigation", "error", err.Error())
		} else {
			user = restored
		}
	}

	decision := navigation.Resolve(user, c.Query("path"))
	dto.Success(c, dto.ToNavigationResponse(decision))
}
