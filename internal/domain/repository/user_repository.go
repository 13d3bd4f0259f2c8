// Package repository 定义数据访问层接口
package repository

import (
	"context"

	"novel-nest-api/internal/domain/entity"
)

// UserRepository 用户仓储接口
// 查询操作对缺失实体返回 (nil, nil)，错误仅代表存储故障
type UserRepository interface {
	// Create 创建用户，ID 由存储层分配且单调递增
	Create(ctx context.Context, user *entity.User) error

	// GetByID 根据 ID 获取用户
	GetByID(ctx context.Context, id int64) (*entity.User, error)

	// GetByEmail 根据邮箱获取用户
	GetByEmail(ctx context.Context, email string) (*entity.User, error)

	// GetByUsername 根据用户名获取用户
	GetByUsername(ctx context.Context, username string) (*entity.User, error)

	// UpdateProfile 更新头像和简介
	UpdateProfile(ctx context.Context, id int64, profilePicture, bio string) error
}
