// Package memory 提供基于内存的仓储实现
// 用于本地开发与测试，无需外部数据库即可运行完整 API
package memory

import (
	"context"
	"sync"

	"novel-nest-api/internal/domain/entity"
)

// Store 内存数据存储
// 所有仓储共享同一份受互斥锁保护的数据，ID 由存储层单调分配
type Store struct {
	mu sync.RWMutex

	users    map[int64]*entity.User
	novels   map[int64]*entity.Novel
	episodes map[int64]*entity.Episode
	reviews  map[int64]*entity.Review
	comments map[int64]*entity.Comment

	nextUserID    int64
	nextNovelID   int64
	nextEpisodeID int64
	nextReviewID  int64
	nextCommentID int64
}

// NewStore 创建空的内存存储
func NewStore() *Store {
	return &Store{
		users:    make(map[int64]*entity.User),
		novels:   make(map[int64]*entity.Novel),
		episodes: make(map[int64]*entity.Episode),
		reviews:  make(map[int64]*entity.Review),
		comments: make(map[int64]*entity.Comment),
	}
}

// NewStoreWithFixtures 创建带固定演示数据的内存存储
func NewStoreWithFixtures() *Store {
	s := NewStore()
	s.loadFixtures()
	return s
}

// Transactor 内存存储的事务管理
// 内存操作在锁内原子完成，事务退化为直接执行
type Transactor struct{}

// NewTransactor 创建内存事务管理器
func NewTransactor() *Transactor {
	return &Transactor{}
}

// WithTransaction 直接执行回调
func (t *Transactor) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func cloneUser(u *entity.User) *entity.User {
	if u == nil {
		return nil
	}
	c := *u
	return &c
}

func cloneNovel(n *entity.Novel) *entity.Novel {
	if n == nil {
		return nil
	}
	c := *n
	c.Tags = append([]string(nil), n.Tags...)
	c.Episodes = nil
	c.Reviews = nil
	return &c
}

func cloneEpisode(e *entity.Episode) *entity.Episode {
	if e == nil {
		return nil
	}
	c := *e
	c.Comments = nil
	return &c
}

func cloneReview(r *entity.Review) *entity.Review {
	if r == nil {
		return nil
	}
	c := *r
	return &c
}

func cloneComment(cm *entity.Comment) *entity.Comment {
	if cm == nil {
		return nil
	}
	c := *cm
	if cm.ParentID != nil {
		pid := *cm.ParentID
		c.ParentID = &pid
	}
	return &c
}
