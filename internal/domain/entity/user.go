// Package entity 定义领域实体
package entity

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

// UserRole 用户角色
type UserRole string

const (
	UserRoleReader    UserRole = "reader"
	UserRoleWriter    UserRole = "writer"
	UserRoleAdmin     UserRole = "admin"
	UserRoleDeveloper UserRole = "developer"
)

// IsValid 检查角色是否为已知角色
func (r UserRole) IsValid() bool {
	switch r {
	case UserRoleReader, UserRoleWriter, UserRoleAdmin, UserRoleDeveloper:
		return true
	}
	return false
}

// User 用户实体
type User struct {
	ID             int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	Username       string    `json:"username" gorm:"type:varchar(64);uniqueIndex;not null"`
	Email          string    `json:"email" gorm:"type:varchar(255);uniqueIndex;not null"`
	PasswordHash   string    `json:"-" gorm:"type:varchar(255);not null"` // 不在 JSON 中暴露
	Role           UserRole  `json:"role" gorm:"type:varchar(20);not null;default:'reader'"`
	ProfilePicture string    `json:"profile_picture,omitempty" gorm:"type:varchar(512)"`
	Bio            string    `json:"bio,omitempty" gorm:"type:text"`
	CreatedAt      time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// TableName 指定表名
func (User) TableName() string {
	return "users"
}

// NewUser 创建新用户，角色默认为读者
func NewUser(username, email string) *User {
	return &User{
		Username:  username,
		Email:     email,
		Role:      UserRoleReader,
		CreatedAt: time.Now(),
	}
}

// IsAdmin 检查用户是否为管理员
func (u *User) IsAdmin() bool {
	return u.Role == UserRoleAdmin
}

// CanPublish 检查用户是否可以发布小说
func (u *User) CanPublish() bool {
	return u.Role == UserRoleWriter || u.Role == UserRoleAdmin
}

// SetPassword 设置并散列密码
func (u *User) SetPassword(password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	return nil
}

// CheckPassword 校验密码
func (u *User) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
	return err == nil
}
