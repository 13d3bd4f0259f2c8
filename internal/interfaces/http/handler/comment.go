// Package handler 提供 HTTP 请求处理器
package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"novel-nest-api/internal/domain/entity"
	"novel-nest-api/internal/domain/repository"
	"novel-nest-api/internal/domain/service"
	"novel-nest-api/internal/interfaces/http/dto"
	"novel-nest-api/internal/interfaces/http/middleware"
	"novel-nest-api/pkg/errors"
	"novel-nest-api/pkg/logger"
	"novel-nest-api/pkg/metrics"
)

// CommentHandler 评论处理器
type CommentHandler struct {
	novelRepo   repository.NovelRepository
	episodeRepo repository.EpisodeRepository
	commentRepo repository.CommentRepository
}

// NewCommentHandler 创建评论处理器
func NewCommentHandler(novelRepo repository.NovelRepository, episodeRepo repository.EpisodeRepository, commentRepo repository.CommentRepository) *CommentHandler {
	return &CommentHandler{
		novelRepo:   novelRepo,
		episodeRepo: episodeRepo,
		commentRepo: commentRepo,
	}
}

// ListComments 获取评论树
// @Summary 获取评论树
// @Description 返回章节评论的嵌套森林：顶层评论按时间排列，回复挂在父节点下
// @Tags Comments
// @Produce json
// @Param nid path int true "小说 ID"
// @Param eid path int true "章节 ID"
// @Success 200 {object} dto.Response[[]dto.CommentDTO]
// @Failure 404 {object} dto.ErrorResponse
// @Router /v1/novels/{nid}/episodes/{eid}/comments [get]
func (h *CommentHandler) ListComments(c *gin.Context) {
	ctx := c.Request.Context()

	episode, ok := h.locateEpisode(c)
	if !ok {
		return
	}

	comments, err := h.commentRepo.ListByEpisode(ctx, episode.ID)
	if err != nil {
		logger.Error(ctx, "failed to list comments", err, "episode_id", episode.ID)
		dto.ServiceUnavailable(c, "failed to list comments")
		return
	}

	threads := service.BuildCommentTree(comments)
	dto.Success(c, dto.ToCommentTreeDTOs(threads))
}

// CreateComment 发表评论
// @Summary 发表评论或回复
// @Description 创建顶层评论，或在 parent_id 指向同章节评论时创建回复
// @Tags Comments
// @Accept json
// @Produce json
// @Param nid path int true "小说 ID"
// @Param eid path int true "章节 ID"
// @Param body body dto.CreateCommentRequest true "评论内容"
// @Success 201 {object} dto.Response[dto.CommentDTO]
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /v1/novels/{nid}/episodes/{eid}/comments [post]
func (h *CommentHandler) CreateComment(c *gin.Context) {
	ctx := c.Request.Context()

	episode, ok := h.locateEpisode(c)
	if !ok {
		return
	}

	var req dto.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	// 回复必须指向同一章节下已存在的评论
	if req.ParentID != nil {
		parent, err := h.commentRepo.GetByID(ctx, *req.ParentID)
		if err != nil {
			logger.Error(ctx, "failed to get parent comment", err, "parent_id", *req.ParentID)
			dto.ServiceUnavailable(c, "failed to get parent comment")
			return
		}
		if parent == nil || parent.EpisodeID != episode.ID {
			dto.FromError(c, errors.New(errors.CodeCommentNotFound, "parent comment not found"))
			return
		}
	}

	comment := &entity.Comment{
		EpisodeID: episode.ID,
		UserID:    middleware.UserID(c),
		ParentID:  req.ParentID,
		Content:   req.Content,
	}

	if err := h.commentRepo.Create(ctx, comment); err != nil {
		logger.Error(ctx, "failed to create comment", err, "episode_id", episode.ID)
		dto.ServiceUnavailable(c, "failed to create comment")
		return
	}

	metrics.CommentsCreatedTotal.WithLabelValues(strconv.FormatBool(comment.IsReply())).Inc()
	dto.Created(c, dto.ToCommentDTO(comment))
}

// locateEpisode 解析路径并定位章节，失败时已写出响应
func (h *CommentHandler) locateEpisode(c *gin.Context) (*entity.Episode, bool) {
	ctx := c.Request.Context()

	novelID, err := dto.BindNovelID(c)
	if err != nil {
		dto.FromError(c, err)
		return nil, false
	}
	episodeID, err := dto.BindEpisodeID(c)
	if err != nil {
		dto.FromError(c, err)
		return nil, false
	}

	novel, err := h.novelRepo.GetByID(ctx, novelID)
	if err != nil {
		logger.Error(ctx, "failed to get novel", err, "novel_id", novelID)
		dto.ServiceUnavailable(c, "failed to get novel")
		return nil, false
	}
	if novel == nil {
		dto.FromError(c, errors.ErrNovelNotFound)
		return nil, false
	}

	episode, err := h.episodeRepo.GetByNovelAndID(ctx, novelID, episodeID)
	if err != nil {
		logger.Error(ctx, "failed to get episode", err, "novel_id", novelID, "episode_id", episodeID)
		dto.ServiceUnavailable(c, "failed to get episode")
		return nil, false
	}
	if episode == nil {
		dto.FromError(c, errors.ErrEpisodeNotFound)
		return nil, false
	}

	return episode, true
}
