package memory

import (
	"context"

	"novel-nest-api/internal/domain/entity"
)

// UserRepository 用户仓储的内存实现
type UserRepository struct {
	store *Store
}

// NewUserRepository 创建内存用户仓储
func NewUserRepository(store *Store) *UserRepository {
	return &UserRepository{store: store}
}

// Create 创建用户并分配单调递增 ID
func (r *UserRepository) Create(ctx context.Context, user *entity.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	r.store.nextUserID++
	user.ID = r.store.nextUserID
	r.store.users[user.ID] = cloneUser(user)
	return nil
}

// GetByID 根据 ID 获取用户
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	return cloneUser(r.store.users[id]), nil
}

// GetByEmail 根据邮箱获取用户
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, u := range r.store.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, nil
}

// GetByUsername 根据用户名获取用户
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, u := range r.store.users {
		if u.Username == username {
			return cloneUser(u), nil
		}
	}
	return nil, nil
}

// UpdateProfile 更新头像和简介，用户不存在时静默忽略
func (r *UserRepository) UpdateProfile(ctx context.Context, id int64, profilePicture, bio string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if u, ok := r.store.users[id]; ok {
		u.ProfilePicture = profilePicture
		u.Bio = bio
	}
	return nil
}
