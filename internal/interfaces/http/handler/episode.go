// Package handler 提供 HTTP 请求处理器
package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"novel-nest-api/internal/domain/entity"
	"novel-nest-api/internal/domain/repository"
	"novel-nest-api/internal/interfaces/http/dto"
	"novel-nest-api/internal/interfaces/http/middleware"
	"novel-nest-api/pkg/errors"
	"novel-nest-api/pkg/logger"
	"novel-nest-api/pkg/metrics"
)

// EpisodeHandler 章节处理器
type EpisodeHandler struct {
	novelRepo   repository.NovelRepository
	episodeRepo repository.EpisodeRepository
	userRepo    repository.UserRepository
}

// NewEpisodeHandler 创建章节处理器
func NewEpisodeHandler(novelRepo repository.NovelRepository, episodeRepo repository.EpisodeRepository, userRepo repository.UserRepository) *EpisodeHandler {
	return &EpisodeHandler{
		novelRepo:   novelRepo,
		episodeRepo: episodeRepo,
		userRepo:    userRepo,
	}
}

// ListEpisodes 获取章节目录
// @Summary 获取章节目录
// @Description 返回小说全部章节的目录条目，按发布时间升序
// @Tags Episodes
// @Produce json
// @Param nid path int true "小说 ID"
// @Success 200 {object} dto.Response[[]dto.EpisodeSummaryDTO]
// @Failure 404 {object} dto.ErrorResponse
// @Router /v1/novels/{nid}/episodes [get]
func (h *EpisodeHandler) ListEpisodes(c *gin.Context) {
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

	episodes, err := h.episodeRepo.ListByNovel(ctx, novelID)
	if err != nil {
		logger.Error(ctx, "failed to list episodes", err, "novel_id", novelID)
		dto.ServiceUnavailable(c, "failed to list episodes")
		return
	}

	dto.Success(c, dto.ToEpisodeSummaryDTOs(episodes))
}

// GetEpisode 阅读章节
// @Summary 阅读章节
// @Description 返回章节内容；锁定章节仅作者和管理员可读正文，其他人拿到不含正文的条目
// @Tags Episodes
// @Produce json
// @Param nid path int true "小说 ID"
// @Param eid path int true "章节 ID"
// @Success 200 {object} dto.Response[dto.EpisodeDTO]
// @Failure 404 {object} dto.ErrorResponse
// @Router /v1/novels/{nid}/episodes/{eid} [get]
func (h *EpisodeHandler) GetEpisode(c *gin.Context) {
	ctx := c.Request.Context()

	novelID, err := dto.BindNovelID(c)
	if err != nil {
		dto.FromError(c, err)
		return
	}
	episodeID, err := dto.BindEpisodeID(c)
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

	episode, err := h.episodeRepo.GetByNovelAndID(ctx, novelID, episodeID)
	if err != nil {
		logger.Error(ctx, "failed to get episode", err, "novel_id", novelID, "episode_id", episodeID)
		dto.ServiceUnavailable(c, "failed to get episode")
		return
	}
	if episode == nil {
		dto.FromError(c, errors.ErrEpisodeNotFound)
		return
	}

	reader := h.currentUser(c)
	readable := episode.Readable(reader, novel.AuthorID)

	metrics.EpisodeReadsTotal.WithLabelValues(strconv.FormatBool(episode.IsLocked)).Inc()
	dto.Success(c, dto.ToEpisodeDTO(episode, readable))
}

// currentUser 按注入的身份加载用户实体，匿名或加载失败时返回 nil
func (h *EpisodeHandler) currentUser(c *gin.Context) *entity.User {
	userID := middleware.UserID(c)
	if userID == 0 {
		return nil
	}
	user, err := h.userRepo.GetByID(c.Request.Context(), userID)
	if err != nil {
		logger.Warn(c.Request.Context(), "failed to load reader", "user_id", userID, "error", err.Error())
		return nil
	}
	return user
}
