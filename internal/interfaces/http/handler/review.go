// Package handler 提供 HTTP 请求处理器
package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"novel-nest-api/internal/domain/entity"
	"novel-nest-api/internal/domain/repository"
	"novel-nest-api/internal/interfaces/http/dto"
	"novel-nest-api/internal/interfaces/http/middleware"
	"novel-nest-api/pkg/errors"
	"novel-nest-api/pkg/logger"
)

// ReviewHandler 书评处理器
type ReviewHandler struct {
	novelRepo  repository.NovelRepository
	reviewRepo repository.ReviewRepository
	tx         repository.Transactor
}

// NewReviewHandler 创建书评处理器
func NewReviewHandler(novelRepo repository.NovelRepository, reviewRepo repository.ReviewRepository, tx repository.Transactor) *ReviewHandler {
	return &ReviewHandler{
		novelRepo:  novelRepo,
		reviewRepo: reviewRepo,
		tx:         tx,
	}
}

// ListReviews 获取书评列表
// @Summary 获取书评列表
// @Description 返回小说全部书评，按创建时间降序
// @Tags Reviews
// @Produce json
// @Param nid path int true "小说 ID"
// @Success 200 {object} dto.Response[[]dto.ReviewDTO]
// @Failure 404 {object} dto.ErrorResponse
// @Router /v1/novels/{nid}/reviews [get]
func (h *ReviewHandler) ListReviews(c *gin.Context) {
	ctx := c.Request.Context()

	novelID, err := dto.BindNovelID(c)
	if err != nil {
		dto.FromError(c, err)
		return
	}

	novel, err := h.novelRepo.GetByID(ctx, novelID)
	if err != nil {
		logger.Error(ctx, "failed to get novel", err, "novel_id", novelID)
		dto.ServiceUnavailable(c, "failed to get novel")
		return
	}
	if novel == nil {
		dto.FromError(c, errors.ErrNovelNotFound)
		return
	}

	reviews, err := h.reviewRepo.ListByNovel(ctx, novelID)
	if err != nil {
		logger.Error(ctx, "failed to list reviews", err, "novel_id", novelID)
		dto.ServiceUnavailable(c, "failed to list reviews")
		return
	}

	dto.Success(c, dto.ToReviewDTOs(reviews))
}

// CreateReview 发表书评
// @Summary 发表书评
// @Description 写入书评并在同一事务内重算小说均分
// @Tags Reviews
// @Accept json
// @Produce json
// @Param nid path int true "小说 ID"
// @Param body body dto.CreateReviewRequest true "书评内容"
// @Success 201 {object} dto.Response[dto.ReviewDTO]
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /v1/novels/{nid}/reviews [post]
func (h *ReviewHandler) CreateReview(c *gin.Context) {
	ctx := c.Request.Context()

	novelID, err := dto.BindNovelID(c)
	if err != nil {
		dto.FromError(c, err)
		return
	}

	var req dto.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	novel, err := h.novelRepo.GetByID(ctx, novelID)
	if err != nil {
		logger.Error(ctx, "failed to get novel", err, "novel_id", novelID)
		dto.ServiceUnavailable(c, "failed to get novel")
		return
	}
	if novel == nil {
		dto.FromError(c, errors.ErrNovelNotFound)
		return
	}

	review := &entity.Review{
		NovelID: novelID,
		UserID:  middleware.UserID(c),
		Rating:  req.Rating,
		Comment: req.Comment,
	}
	if !review.ValidRating() {
		dto.BadRequest(c, "rating must be between 1 and 5")
		return
	}

	err = h.tx.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := h.reviewRepo.Create(txCtx, review); err != nil {
			return err
		}
		return h.novelRepo.RecomputeRating(txCtx, novelID)
	})
	if err != nil {
		logger.Error(ctx, "failed to create review", err, "novel_id", novelID)
		dto.ServiceUnavailable(c, "failed to create review")
		return
	}

	dto.Created(c, dto.ToReviewDTO(review))
}
