// Package redis 提供会话存储实现
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"novel-nest-api/internal/application/auth"
)

var sessionTracer = otel.Tracer("redis.session")

const sessionKeyFmt = "novelnest:session:%s"

// SessionStore 基于 Redis 的会话存储
// 会话记录随 TTL 自动过期，登出时主动删除
type SessionStore struct {
	client *Client
}

// NewSessionStore 创建会话存储
func NewSessionStore(client *Client) *SessionStore {
	return &SessionStore{client: client}
}

// Save 保存会话记录
func (s *SessionStore) Save(ctx context.Context, session *auth.Session, ttl time.Duration) error {
	ctx, span := sessionTracer.Start(ctx, "session.Save",
		trace.WithAttributes(attribute.String("session.id", session.ID)))
	defer span.End()

	bytes, err := json.Marshal(session)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	key := fmt.Sprintf(sessionKeyFmt, session.ID)
	if err := s.client.rdb.Set(ctx, key, bytes, ttl).Err(); err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// Get 获取会话记录，不存在或已过期时返回 (nil, nil)
func (s *SessionStore) Get(ctx context.Context, sessionID string) (*auth.Session, error) {
	ctx, span := sessionTracer.Start(ctx, "session.Get",
		trace.WithAttributes(attribute.String("session.id", sessionID)))
	defer span.End()

	key := fmt.Sprintf(sessionKeyFmt, sessionID)
	bytes, err := s.client.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		span.RecordError(err)
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	var session auth.Session
	if err := json.Unmarshal(bytes, &session); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	return &session, nil
}

// Delete 删除会话记录
func (s *SessionStore) Delete(ctx context.Context, sessionID string) error {
	ctx, span := sessionTracer.Start(ctx, "session.Delete",
		trace.WithAttributes(attribute.String("session.id", sessionID)))
	defer span.End()

	key := fmt.Sprintf(sessionKeyFmt, sessionID)
	if err := s.client.rdb.Del(ctx, key).Err(); err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

var _ auth.SessionStore = (*SessionStore)(nil)
