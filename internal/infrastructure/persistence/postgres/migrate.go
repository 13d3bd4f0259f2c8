package postgres

import (
	"novel-nest-api/internal/domain/entity"
)

// Migrate 执行模式迁移
func (c *Client) Migrate() error {
	return c.db.AutoMigrate(
		&entity.User{},
		&entity.Novel{},
		&entity.Episode{},
		&entity.Review{},
		&entity.Comment{},
	)
}
