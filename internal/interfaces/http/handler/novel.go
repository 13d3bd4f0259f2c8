// Package handler 提供 HTTP 请求处理器
package handler

import (
	"github.com/gin-gonic/gin"

	"novel-nest-api/internal/application/catalog"
	"novel-nest-api/internal/domain/repository"
	"novel-nest-api/internal/interfaces/http/dto"
	"novel-nest-api/pkg/errors"
	"novel-nest-api/pkg/logger"
	"novel-nest-api/pkg/metrics"
)

// NovelHandler 小说处理器
type NovelHandler struct {
	catalog     *catalog.Service
	novelRepo   repository.NovelRepository
	episodeRepo repository.EpisodeRepository
	fantasyTag  string
}

// NewNovelHandler 创建小说处理器
func NewNovelHandler(catalogService *catalog.Service, novelRepo repository.NovelRepository, episodeRepo repository.EpisodeRepository, fantasyTag string) *NovelHandler {
	if fantasyTag == "" {
		fantasyTag = "Fantasy"
	}
	return &NovelHandler{
		catalog:     catalogService,
		novelRepo:   novelRepo,
		episodeRepo: episodeRepo,
		fantasyTag:  fantasyTag,
	}
}

// ListNovels 获取小说列表
// @Summary 获取小说列表
// @Description 分页获取全部小说，按最后更新时间降序
// @Tags Novels
// @Produce json
// @Param page query int false "页码" default(1)
// @Param page_size query int false "每页条数" default(20)
// @Success 200 {object} dto.Response[[]dto.NovelDTO]
// @Failure 503 {object} dto.ErrorResponse
// @Router /v1/novels [get]
func (h *NovelHandler) ListNovels(c *gin.Context) {
	ctx := c.Request.Context()

	pageReq := dto.BindPage(c)
	result, err := h.novelRepo.ListAll(ctx, repository.NewPagination(pageReq.Page, pageReq.PageSize))
	if err != nil {
		logger.Error(ctx, "failed to list novels", err)
		dto.ServiceUnavailable(c, "failed to list novels")
		return
	}

	meta := dto.NewPageMeta(pageReq.Page, pageReq.PageSize, int(result.Total))
	dto.SuccessWithPage(c, dto.ToNovelDTOs(result.Items), meta)
}

// Recommended 推荐书单
// @Summary 推荐书单
// @Description 按点赞数降序的有界推荐书单，书库为空时返回空列表
// @Tags Novels
// @Produce json
// @Success 200 {object} dto.Response[[]dto.NovelDTO]
// @Failure 503 {object} dto.ErrorResponse
// @Router /v1/novels/recommended [get]
func (h *NovelHandler) Recommended(c *gin.Context) {
	ctx := c.Request.Context()

	novels, err := h.catalog.Recommended(ctx)
	if err != nil {
		logger.Error(ctx, "failed to load recommended feed", err)
		dto.ServiceUnavailable(c, "failed to load recommended feed")
		return
	}

	dto.Success(c, dto.ToNovelDTOs(novels))
}

// Fantasy 奇幻书单
// @Summary 奇幻书单
// @Description 带奇幻标签的小说书单，按点赞数降序
// @Tags Novels
// @Produce json
// @Success 200 {object} dto.Response[[]dto.NovelDTO]
// @Failure 503 {object} dto.ErrorResponse
// @Router /v1/novels/fantasy [get]
func (h *NovelHandler) Fantasy(c *gin.Context) {
	ctx := c.Request.Context()

	novels, err := h.catalog.ByTag(ctx, h.fantasyTag)
	if err != nil {
		logger.Error(ctx, "failed to load fantasy feed", err)
		dto.ServiceUnavailable(c, "failed to load fantasy feed")
		return
	}

	dto.Success(c, dto.ToNovelDTOs(novels))
}

// ByTag 标签书单
// @Summary 标签书单
// @Description 带指定标签的小说书单，按点赞数降序
// @Tags Novels
// @Produce json
// @Param tag path string true "标签"
// @Success 200 {object} dto.Response[[]dto.NovelDTO]
// @Failure 503 {object} dto.ErrorResponse
// @Router /v1/novels/tags/{tag} [get]
func (h *NovelHandler) ByTag(c *gin.Context) {
	ctx := c.Request.Context()

	tag := c.Param("tag")
	if tag == "" {
		dto.BadRequest(c, "tag is required")
		return
	}

	novels, err := h.catalog.ByTag(ctx, tag)
	if err != nil {
		logger.Error(ctx, "failed to load tag feed", err, "tag", tag)
		dto.ServiceUnavailable(c, "failed to load tag feed")
		return
	}

	dto.Success(c, dto.ToNovelDTOs(novels))
}

// GetNovel 获取小说详情
// @Summary 获取小说详情
// @Description 返回小说信息和章节目录，并累加一次浏览
// @Tags Novels
// @Produce json
// @Param nid path int true "小说 ID"
// @Success 200 {object} dto.Response[dto.NovelDetailDTO]
// @Failure 404 {object} dto.ErrorResponse
// @Failure 503 {object} dto.ErrorResponse
// @Router /v1/novels/{nid} [get]
func (h *NovelHandler) GetNovel(c *gin.Context) {
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

	// 浏览计数失败不影响读取
	if err := h.novelRepo.IncrementViews(ctx, novelID); err != nil {
		logger.Warn(ctx, "failed to increment views", "novel_id", novelID, "error", err.Error())
	} else {
		metrics.NovelViewsTotal.Inc()
		novel.Views++
	}

	detail := &dto.NovelDetailDTO{
		NovelDTO: *dto.ToNovelDTO(novel),
		Episodes: dto.ToEpisodeSummaryDTOs(episodes),
	}
	dto.Success(c, detail)
}

// LikeNovel 点赞小说
// @Summary 点赞小说
// @Description 点赞数加一并使书单缓存失效
// @Tags Novels
// @Produce json
// @Param nid path int true "小说 ID"
// @Success 204
// @Failure 404 {object} dto.ErrorResponse
// @Router /v1/novels/{nid}/like [post]
func (h *NovelHandler) LikeNovel(c *gin.Context) {
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

	if err := h.novelRepo.IncrementLikes(ctx, novelID); err != nil {
		logger.Error(ctx, "failed to increment likes", err, "novel_id", novelID)
		dto.ServiceUnavailable(c, "failed to like novel")
		return
	}

	h.catalog.Invalidate(ctx)
	dto.NoContent(c)
}
