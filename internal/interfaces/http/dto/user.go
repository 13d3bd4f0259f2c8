// Package dto 提供 HTTP 层数据传输对象
package dto

import (
	"novel-nest-api/internal/domain/entity"
)

// UpdateProfileRequest 更新个人资料请求
type UpdateProfileRequest struct {
	ProfilePicture string `json:"profile_picture" binding:"omitempty,url"`
	Bio            string `json:"bio" binding:"max=1024"`
}

// UserDTO 用户公开信息
type UserDTO struct {
	ID             int64  `json:"id"`
	Username       string `json:"username"`
	Role           string `json:"role"`
	ProfilePicture string `json:"profile_picture,omitempty"`
	Bio            string `json:"bio,omitempty"`
}

// ToUserDTO 将领域实体转换为公开信息 DTO
func ToUserDTO(u *entity.User) *UserDTO {
	if u == nil {
		return nil
	}
	return &UserDTO{
		ID:             u.ID,
		Username:       u.Username,
		Role:           string(u.Role),
		ProfilePicture: u.ProfilePicture,
		Bio:            u.Bio,
	}
}
