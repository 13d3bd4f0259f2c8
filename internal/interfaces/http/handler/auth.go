// Package handler 提供 HTTP 请求处理器
package handler

import (
	"github.com/gin-gonic/gin"

	"novel-nest-api/internal/application/auth"
	"novel-nest-api/internal/interfaces/http/dto"
	"novel-nest-api/internal/interfaces/http/middleware"
	"novel-nest-api/pkg/errors"
	"novel-nest-api/pkg/logger"
)

// AuthHandler 认证处理器
type AuthHandler struct {
	authService *auth.Service
}

// NewAuthHandler 创建认证处理器
func NewAuthHandler(authService *auth.Service) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Signup 注册
// @Summary 用户注册
// @Description 创建新用户并建立登录会话，角色默认为读者
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body dto.SignupRequest true "注册信息"
// @Success 201 {object} dto.Response[dto.AuthResponse]
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /v1/auth/signup [post]
func (h *AuthHandler) Signup(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	result, err := h.authService.Signup(ctx, req.Username, req.Email, req.Password)
	if err != nil {
		if !errors.IsCode(err, errors.CodeUsernameTaken) && !errors.IsCode(err, errors.CodeEmailTaken) {
			logger.Error(ctx, "signup failed", err, "email", req.Email)
		}
		dto.FromError(c, err)
		return
	}

	dto.Created(c, dto.ToAuthResponse(result))
}

// Login 登录
// @Summary 用户登录
// @Description 校验邮箱和口令，成功后返回令牌对并建立会话
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body dto.LoginRequest true "登录信息"
// @Success 200 {object} dto.Response[dto.AuthResponse]
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /v1/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	result, err := h.authService.Login(ctx, req.Email, req.Password)
	if err != nil {
		if !errors.IsCode(err, errors.CodeLoginFailed) {
			logger.Error(ctx, "login failed", err)
		}
		dto.FromError(c, err)
		return
	}

	dto.Success(c, dto.ToAuthResponse(result))
}

// Logout 登出
// @Summary 用户登出
// @Description 删除服务端会话记录，令牌随会话失效
// @Tags Auth
// @Produce json
// @Success 204
// @Failure 401 {object} dto.ErrorResponse
// @Router /v1/auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	ctx := c.Request.Context()

	sessionID := middleware.SessionID(c)
	if err := h.authService.Logout(ctx, sessionID); err != nil {
		logger.Warn(ctx, "logout cleanup failed", "session_id", sessionID, "error", err.Error())
	}

	dto.NoContent(c)
}

// Refresh 刷新令牌
// @Summary 刷新 AccessToken
// @Description 使用 RefreshToken 换取新的 AccessToken，要求会话仍然有效
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body dto.RefreshRequest true "刷新令牌"
// @Success 200 {object} dto.Response[dto.RefreshResponse]
// @Failure 401 {object} dto.ErrorResponse
// @Router /v1/auth/refresh [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	accessToken, expiresIn, err := h.authService.Refresh(ctx, req.RefreshToken)
	if err != nil {
		dto.FromError(c, err)
		return
	}

	dto.Success(c, &dto.RefreshResponse{
		AccessToken: accessToken,
		ExpiresIn:   expiresIn,
	})
}

// Me 当前用户
// @Summary 获取当前登录用户
// @Description 根据会话恢复当前用户，会话失效时返回空身份而非错误
// @Tags Auth
// @Produce json
// @Success 200 {object} dto.Response[dto.AuthUserDTO]
// @Router /v1/auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	ctx := c.Request.Context()

	sessionID := middleware.SessionID(c)
	user, err := h.authService.CurrentUser(ctx, sessionID)
	if err != nil {
		logger.Error(ctx, "failed to restore session", err, "session_id", sessionID)
		dto.ServiceUnavailable(c, "failed to restore session")
		return
	}

	// 会话失效等同于未登录
	dto.Success(c, dto.ToAuthUserDTO(user))
}
