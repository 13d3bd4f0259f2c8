package memory

import (
	"context"
	"sync"
	"time"

	"novel-nest-api/internal/application/auth"
)

// SessionStore 会话存储的内存实现
// 过期会话在读取时惰性清理
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]sessionRecord
}

type sessionRecord struct {
	session   auth.Session
	expiresAt time.Time
}

// NewSessionStore 创建内存会话存储
func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[string]sessionRecord),
	}
}

// Save 保存会话记录
func (s *SessionStore) Save(ctx context.Context, session *auth.Session, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[session.ID] = sessionRecord{
		session:   *session,
		expiresAt: time.Now().Add(ttl),
	}
	return nil
}

// Get 获取会话记录，不存在或已过期时返回 (nil, nil)
func (s *SessionStore) Get(ctx context.Context, id string) (*auth.Session, error) {
	s.mu.RLock()
	rec, ok := s.sessions[id]
	s.mu.RUnlock()

	if !ok {
		return nil, nil
	}
	if time.Now().After(rec.expiresAt) {
		s.mu.Lock()
		delete(s.sessions, id)
		s.mu.Unlock()
		return nil, nil
	}
	session := rec.session
	return &session, nil
}

// Delete 删除会话记录
func (s *SessionStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, id)
	return nil
}

var _ auth.SessionStore = (*SessionStore)(nil)
