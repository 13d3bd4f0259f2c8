// Package dto 提供 HTTP 层数据传输对象
package dto

import (
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "novel-nest-api/pkg/errors"
)

// PageRequest 分页请求参数
type PageRequest struct {
	Page     int `form:"page" json:"page"`
	PageSize int `form:"page_size" json:"page_size"`
}

// Normalize 规范化分页参数
func (r *PageRequest) Normalize() {
	if r.Page < 1 {
		r.Page = 1
	}
	if r.PageSize < 1 {
		r.PageSize = 20
	}
	if r.PageSize > 100 {
		r.PageSize = 100
	}
}

// BindPage 从 Gin Context 绑定分页参数
func BindPage(c *gin.Context) PageRequest {
	page := parseIntWithDefault(c.Query("page"), 1)
	pageSize := parseIntWithDefault(c.Query("page_size"), 20)

	req := PageRequest{
		Page:     page,
		PageSize: pageSize,
	}
	req.Normalize()
	return req
}

// parseIntWithDefault 解析整数，失败时返回默认值
func parseIntWithDefault(s string, defaultVal int) int {
	if s == "" {
		return defaultVal
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return defaultVal
	}
	return v
}

// BindID 从 URI 绑定正整数资源 ID
// 非数字或非正数视为无效参数
func BindID(c *gin.Context, name string) (int64, error) {
	raw := c.Param(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.New(apperrors.CodeInvalidParam, "invalid "+name)
	}
	return id, nil
}

// BindNovelID 从 URI 绑定小说 ID
func BindNovelID(c *gin.Context) (int64, error) {
	return BindID(c, "nid")
}

// BindEpisodeID 从 URI 绑定章节 ID
func BindEpisodeID(c *gin.Context) (int64, error) {
	return BindID(c, "eid")
}

// BindCommentID 从 URI 绑定评论 ID
func BindCommentID(c *gin.Context) (int64, error) {
	return BindID(c, "cid")
}

// BindReviewID 从 URI 绑定书评 ID
func BindReviewID(c *gin.Context) (int64, error) {
	return BindID(c, "rid")
}
