// Package handler 提供 HTTP 请求处理器
package handler

import (
	"github.com/gin-gonic/gin"

	"novel-nest-api/internal/domain/repository"
	"novel-nest-api/internal/interfaces/http/dto"
	"novel-nest-api/internal/interfaces/http/middleware"
	"novel-nest-api/pkg/errors"
	"novel-nest-api/pkg/logger"
)

// UserHandler 用户处理器
type UserHandler struct {
	userRepo  repository.UserRepository
	novelRepo repository.NovelRepository
}

// NewUserHandler 创建用户处理器
func NewUserHandler(userRepo repository.UserRepository, novelRepo repository.NovelRepository) *UserHandler {
	return &UserHandler{
		userRepo:  userRepo,
		novelRepo: novelRepo,
	}
}

// GetUser 获取用户公开信息
// @Summary 获取用户公开信息
// @Description 按 ID 返回用户的公开资料
// @Tags Users
// @Produce json
// @Param uid path int true "用户 ID"
// @Success 200 {object} dto.Response[dto.UserDTO]
// @Failure 404 {object} dto.ErrorResponse
// @Router /v1/users/{uid} [get]
func (h *UserHandler) GetUser(c *gin.Context) {
	ctx := c.Request.Context()

	userID, err := dto.BindID(c, "uid")
	if err != nil {
		dto.FromError(c, err)
		return
	}

	user, err := h.userRepo.GetByID(ctx, userID)
	if err != nil {
		logger.Error(ctx, "failed to get user", err, "user_id", userID)
		dto.ServiceUnavailable(c, "failed to get user")
		return
	}
	if user == nil {
		dto.FromError(c, errors.ErrUserNotFound)
		return
	}

	dto.Success(c, dto.ToUserDTO(user))
}

// GetUserNovels 获取用户的公开作品列表
// @Summary 获取用户的公开作品列表
// @Description 按作者 ID 返回其全部小说
// @Tags Users
// @Produce json
// @Param uid path int true "用户 ID"
// @Success 200 {object} dto.Response[[]dto.NovelDTO]
// @Failure 404 {object} dto.ErrorResponse
// @Router /v1/users/{uid}/novels [get]
func (h *UserHandler) GetUserNovels(c *gin.Context) {
	ctx := c.Request.Context()

	userID, err := dto.BindID(c, "uid")
	if err != nil {
		dto.FromError(c, err)
		return
	}

	user, err := h.userRepo.GetByID(ctx, userID)
	if err != nil {
		logger.Error(ctx, "failed to get user", err, "user_id", userID)
		dto.ServiceUnavailable(c, "failed to get user")
		return
	}
	if user == nil {
		dto.FromError(c, errors.ErrUserNotFound)
		return
	}

	novels, err := h.novelRepo.ListByAuthor(ctx, userID)
	if err != nil {
		logger.Error(ctx, "failed to list user novels", err, "user_id", userID)
		dto.ServiceUnavailable(c, "failed to list user novels")
		return
	}

	dto.Success(c, dto.ToNovelDTOs(novels))
}

// UpdateProfile 更新个人资料
// @Summary 更新个人资料
// @Description 更新当前登录用户的头像和简介
// @Tags Users
// @Accept json
// @Produce json
// @Param body body dto.UpdateProfileRequest true "资料"
// @Success 200 {object} dto.Response[dto.UserDTO]
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /v1/users/me [put]
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	userID := middleware.UserID(c)
	if err := h.userRepo.UpdateProfile(ctx, userID, req.ProfilePicture, req.Bio); err != nil {
		logger.Error(ctx, "failed to update profile", err, "user_id", userID)
		dto.ServiceUnavailable(c, "failed to update profile")
		return
	}

	user, err := h.userRepo.GetByID(ctx, userID)
	if err != nil {
		logger.Error(ctx, "failed to reload user", err, "user_id", userID)
		dto.ServiceUnavailable(c, "failed to reload user")
		return
	}

	dto.Success(c, dto.ToUserDTO(user))
}
