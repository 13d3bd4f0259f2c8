// Package dto 提供 HTTP 层数据传输对象
package dto

import (
	"novel-nest-api/internal/application/navigation"
)

// NavigationResponse 导航决策
type NavigationResponse struct {
	View      string `json:"view"`
	NovelID   int64  `json:"novel_id,omitempty"`
	EpisodeID int64  `json:"episode_id,omitempty"`
}

// ToNavigationResponse 将导航决策转换为响应
func ToNavigationResponse(d navigation.Decision) *NavigationResponse {
	return &NavigationResponse{
		View:      string(d.View),
		NovelID:   d.NovelID,
		EpisodeID: d.EpisodeID,
	}
}
