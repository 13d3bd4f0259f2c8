// Package handler 提供 HTTP 请求处理器
package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lib/pq"

	"novel-nest-api/internal/application/catalog"
	"novel-nest-api/internal/domain/entity"
	"novel-nest-api/internal/domain/repository"
	"novel-nest-api/internal/interfaces/http/dto"
	"novel-nest-api/internal/interfaces/http/middleware"
	"novel-nest-api/pkg/errors"
	"novel-nest-api/pkg/logger"
)

// WriterHandler 作者工作台处理器
// 所有端点要求 novel:publish 权限，且只能操作本人名下的小说
type WriterHandler struct {
	catalog     *catalog.Service
	novelRepo   repository.NovelRepository
	episodeRepo repository.EpisodeRepository
}

// NewWriterHandler 创建作者工作台处理器
func NewWriterHandler(catalogService *catalog.Service, novelRepo repository.NovelRepository, episodeRepo repository.EpisodeRepository) *WriterHandler {
	return &WriterHandler{
		catalog:     catalogService,
		novelRepo:   novelRepo,
		episodeRepo: episodeRepo,
	}
}

// MyNovels 我的小说
// @Summary 我的小说
// @Description 返回当前作者名下的全部小说，尚无作品时返回空列表
// @Tags Writer
// @Produce json
// @Success 200 {object} dto.Response[[]dto.NovelDTO]
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Router /v1/writer/novels [get]
func (h *WriterHandler) MyNovels(c *gin.Context) {
	ctx := c.Request.Context()

	authorID := middleware.UserID(c)
	novels, err := h.novelRepo.ListByAuthor(ctx, authorID)
	if err != nil {
		logger.Error(ctx, "failed to list author novels", err, "author_id", authorID)
		dto.ServiceUnavailable(c, "failed to list novels")
		return
	}

	dto.Success(c, dto.ToNovelDTOs(novels))
}

// CreateNovel 发布小说
// @Summary 发布小说
// @Description 以当前作者身份创建小说
// @Tags Writer
// @Accept json
// @Produce json
// @Param body body dto.CreateNovelRequest true "小说信息"
// @Success 201 {object} dto.Response[dto.NovelDTO]
// @Failure 400 {object} dto.ErrorResponse
// @Router /v1/writer/novels [post]
func (h *WriterHandler) CreateNovel(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.CreateNovelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	novel := &entity.Novel{
		Title:       req.Title,
		Description: req.Description,
		CoverImage:  req.CoverImage,
		Tags:        pq.StringArray(req.Tags),
		Status:      entity.NovelStatusOngoing,
		AuthorID:    middleware.UserID(c),
		LastUpdate:  time.Now(),
	}

	if err := h.novelRepo.Create(ctx, novel); err != nil {
		logger.Error(ctx, "failed to create novel", err)
		dto.ServiceUnavailable(c, "failed to create novel")
		return
	}

	h.catalog.Invalidate(ctx)
	dto.Created(c, dto.ToNovelDTO(novel))
}

// UpdateNovel 更新小说
// @Summary 更新小说
// @Description 更新本人名下的小说信息
// @Tags Writer
// @Accept json
// @Produce json
// @Param nid path int true "小说 ID"
// @Param body body dto.UpdateNovelRequest true "更新字段"
// @Success 200 {object} dto.Response[dto.NovelDTO]
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /v1/writer/novels/{nid} [put]
func (h *WriterHandler) UpdateNovel(c *gin.Context) {
	ctx := c.Request.Context()

	novel, ok := h.ownNovel(c)
	if !ok {
		return
	}

	var req dto.UpdateNovelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	if req.Title != nil {
		novel.Title = *req.Title
	}
	if req.Description != nil {
		novel.Description = *req.Description
	}
	if req.CoverImage != nil {
		novel.CoverImage = *req.CoverImage
	}
	if req.Tags != nil {
		novel.Tags = pq.StringArray(*req.Tags)
	}
	if req.Status != nil {
		novel.Status = entity.NovelStatus(*req.Status)
	}
	novel.Touch()

	if err := h.novelRepo.Update(ctx, novel); err != nil {
		logger.Error(ctx, "failed to update novel", err, "novel_id", novel.ID)
		dto.ServiceUnavailable(c, "failed to update novel")
		return
	}

	h.catalog.Invalidate(ctx)
	dto.Success(c, dto.ToNovelDTO(novel))
}

// DeleteNovel 下架小说
// @Summary 下架小说
// @Description 删除本人名下的小说，章节、书评和评论一并删除
// @Tags Writer
// @Produce json
// @Param nid path int true "小说 ID"
// @Success 204
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /v1/writer/novels/{nid} [delete]
func (h *WriterHandler) DeleteNovel(c *gin.Context) {
	ctx := c.Request.Context()

	novel, ok := h.ownNovel(c)
	if !ok {
		return
	}

	if err := h.novelRepo.Delete(ctx, novel.ID); err != nil {
		logger.Error(ctx, "failed to delete novel", err, "novel_id", novel.ID)
		dto.ServiceUnavailable(c, "failed to delete novel")
		return
	}

	h.catalog.Invalidate(ctx)
	dto.NoContent(c)
}

// CreateEpisode 发布章节
// @Summary 发布章节
// @Description 在本人名下的小说中新增章节并刷新最后更新时间
// @Tags Writer
// @Accept json
// @Produce json
// @Param nid path int true "小说 ID"
// @Param body body dto.CreateEpisodeRequest true "章节内容"
// @Success 201 {object} dto.Response[dto.EpisodeSummaryDTO]
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /v1/writer/novels/{nid}/episodes [post]
func (h *WriterHandler) CreateEpisode(c *gin.Context) {
	ctx := c.Request.Context()

	novel, ok := h.ownNovel(c)
	if !ok {
		return
	}

	var req dto.CreateEpisodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	releaseDate := time.Now()
	if req.ReleaseDate != nil {
		releaseDate = *req.ReleaseDate
	}

	episode := &entity.Episode{
		NovelID:     novel.ID,
		Title:       req.Title,
		Content:     req.Content,
		IsLocked:    req.IsLocked,
		Price:       req.Price,
		ReleaseDate: releaseDate,
	}

	if err := h.episodeRepo.Create(ctx, episode); err != nil {
		logger.Error(ctx, "failed to create episode", err, "novel_id", novel.ID)
		dto.ServiceUnavailable(c, "failed to create episode")
		return
	}

	novel.Touch()
	if err := h.novelRepo.Update(ctx, novel); err != nil {
		logger.Warn(ctx, "failed to touch novel after episode publish", "novel_id", novel.ID, "error", err.Error())
	}

	h.catalog.Invalidate(ctx)
	dto.Created(c, dto.ToEpisodeSummaryDTO(episode))
}

// UpdateEpisode 更新章节
// @Summary 更新章节
// @Description 更新本人名下小说的章节
// @Tags Writer
// @Accept json
// @Produce json
// @Param nid path int true "小说 ID"
// @Param eid path int true "章节 ID"
// @Param body body dto.UpdateEpisodeRequest true "更新字段"
// @Success 200 {object} dto.Response[dto.EpisodeSummaryDTO]
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /v1/writer/novels/{nid}/episodes/{eid} [put]
func (h *WriterHandler) UpdateEpisode(c *gin.Context) {
	ctx := c.Request.Context()

	novel, ok := h.ownNovel(c)
	if !ok {
		return
	}

	episodeID, err := dto.BindEpisodeID(c)
	if err != nil {
		dto.FromError(c, err)
		return
	}

	episode, err := h.episodeRepo.GetByNovelAndID(ctx, novel.ID, episodeID)
	if err != nil {
		logger.Error(ctx, "failed to get episode", err, "episode_id", episodeID)
		dto.ServiceUnavailable(c, "failed to get episode")
		return
	}
	if episode == nil {
		dto.FromError(c, errors.ErrEpisodeNotFound)
		return
	}

	var req dto.UpdateEpisodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	if req.Title != nil {
		episode.Title = *req.Title
	}
	if req.Content != nil {
		episode.Content = *req.Content
	}
	if req.IsLocked != nil {
		episode.IsLocked = *req.IsLocked
	}
	if req.Price != nil {
		episode.Price = *req.Price
	}

	if err := h.episodeRepo.Update(ctx, episode); err != nil {
		logger.Error(ctx, "failed to update episode", err, "episode_id", episodeID)
		dto.ServiceUnavailable(c, "failed to update episode")
		return
	}

	dto.Success(c, dto.ToEpisodeSummaryDTO(episode))
}

// DeleteEpisode 删除章节
// @Summary 删除章节
// @Description 删除本人名下小说的章节及其评论
// @Tags Writer
// @Produce json
// @Param nid path int true "小说 ID"
// @Param eid path int true "章节 ID"
// @Success 204
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /v1/writer/novels/{nid}/episodes/{eid} [delete]
func (h *WriterHandler) DeleteEpisode(c *gin.Context) {
	ctx := c.Request.Context()

	novel, ok := h.ownNovel(c)
	if !ok {
		return
	}

	episodeID, err := dto.BindEpisodeID(c)
	if err != nil {
		dto.FromError(c, err)
		return
	}

	episode, err := h.episodeRepo.GetByNovelAndID(ctx, novel.ID, episodeID)
	if err != nil {
		logger.Error(ctx, "failed to get episode", err, "episode_id", episodeID)
		dto.ServiceUnavailable(c, "failed to get episode")
		return
	}
	if episode == nil {
		dto.FromError(c, errors.ErrEpisodeNotFound)
		return
	}

	if err := h.episodeRepo.Delete(ctx, episode.ID); err != nil {
		logger.Error(ctx, "failed to delete episode", err, "episode_id", episode.ID)
		dto.ServiceUnavailable(c, "failed to delete episode")
		return
	}

	dto.NoContent(c)
}

// ownNovel 定位路径中的小说并校验归属
// 管理员可操作任何小说，其他人只能操作本人名下作品
func (h *WriterHandler) ownNovel(c *gin.Context) (*entity.Novel, bool) {
	ctx := c.Request.Context()

	novelID, err := dto.BindNovelID(c)
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

	userID := middleware.UserID(c)
	role := entity.UserRole(c.GetString("role"))
	if novel.AuthorID != userID && role != entity.UserRoleAdmin {
		dto.Forbidden(c, "not the author of this novel")
		return nil, false
	}

	return novel, true
}
