// Package dto 提供 HTTP 层数据传输对象
package dto

import (
	"novel-nest-api/internal/application/auth"
	"novel-nest-api/internal/domain/entity"
)

// SignupRequest 注册请求
type SignupRequest struct {
	Username string `json:"username" binding:"required,min=3,max=32"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6,max=64"`
}

// LoginRequest 登录请求
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RefreshRequest 刷新令牌请求
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// AuthUserDTO 认证响应中的用户信息
type AuthUserDTO struct {
	ID             int64  `json:"id"`
	Username       string `json:"username"`
	Email          string `json:"email"`
	Role           string `json:"role"`
	ProfilePicture string `json:"profile_picture,omitempty"`
	Bio            string `json:"bio,omitempty"`
}

// AuthResponse 认证响应
type AuthResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	SessionID    string       `json:"session_id"`
	ExpiresIn    int          `json:"expires_in"` // 秒
	User         *AuthUserDTO `json:"user"`
}

// RefreshResponse 刷新令牌响应
type RefreshResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"` // 秒
}

// ToAuthUserDTO 将领域实体转换为 DTO
func ToAuthUserDTO(u *entity.User) *AuthUserDTO {
	if u == nil {
		return nil
	}
	return &AuthUserDTO{
		ID:             u.ID,
		Username:       u.Username,
		Email:          u.Email,
		Role:           string(u.Role),
		ProfilePicture: u.ProfilePicture,
		Bio:            u.Bio,
	}
}

// ToAuthResponse 将认证结果转换为响应
func ToAuthResponse(r *auth.Result) *AuthResponse {
	if r == nil {
		return nil
	}
	return &AuthResponse{
		AccessToken:  r.Tokens.AccessToken,
		RefreshToken: r.Tokens.RefreshToken,
		SessionID:    r.SessionID,
		ExpiresIn:    r.ExpiresIn,
		User:         ToAuthUserDTO(r.User),
	}
}
