// Package auth 提供注册、登录与会话管理
//
// 身份只能通过本服务的操作变更（注册/登录/登出），其他组件一律只读。
package auth

import (
	"context"
	"time"

	"github.com/google/uuid"

	"novel-nest-api/internal/domain/entity"
	"novel-nest-api/internal/domain/repository"
	"novel-nest-api/pkg/errors"
	"novel-nest-api/pkg/logger"
	"novel-nest-api/pkg/metrics"
	"novel-nest-api/pkg/utils"
)

// Session 服务端会话记录
type Session struct {
	ID        string    `json:"id"`
	UserID    int64     `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// SessionStore 会话持久化接口
// 登录时写入，登出时删除，重启/刷新时读取恢复
type SessionStore interface {
	Save(ctx context.Context, session *Session, ttl time.Duration) error
	Get(ctx context.Context, id string) (*Session, error)
	Delete(ctx context.Context, id string) error
}

// Result 登录/注册结果
type Result struct {
	User      *entity.User
	Tokens    *utils.TokenPair
	SessionID string
	ExpiresIn int
}

// Service 认证服务
type Service struct {
	users      repository.UserRepository
	sessions   SessionStore
	jwtManager *utils.JWTManager
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewService 创建认证服务
func NewService(users repository.UserRepository, sessions SessionStore, jwtManager *utils.JWTManager, accessTTL, refreshTTL time.Duration) *Service {
	if accessTTL <= 0 {
		accessTTL = 15 * time.Minute
	}
	if refreshTTL <= 0 {
		refreshTTL = 7 * 24 * time.Hour
	}
	return &Service{
		users:      users,
		sessions:   sessions,
		jwtManager: jwtManager,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

// Signup 注册新用户
// 用户名或邮箱已被占用时返回冲突错误且不写入任何数据，角色默认为读者
func (s *Service) Signup(ctx context.Context, username, email, password string) (*Result, error) {
	existing, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		metrics.AuthAttemptsTotal.WithLabelValues("signup", "error").Inc()
		return nil, errors.Wrap(err, errors.CodeTransportError, "signup failed")
	}
	if existing != nil {
		metrics.AuthAttemptsTotal.WithLabelValues("signup", "conflict").Inc()
		return nil, errors.ErrUsernameTaken
	}

	existing, err = s.users.GetByEmail(ctx, email)
	if err != nil {
		metrics.AuthAttemptsTotal.WithLabelValues("signup", "error").Inc()
		return nil, errors.Wrap(err, errors.CodeTransportError, "signup failed")
	}
	if existing != nil {
		metrics.AuthAttemptsTotal.WithLabelValues("signup", "conflict").Inc()
		return nil, errors.ErrEmailTaken
	}

	user := entity.NewUser(username, email)
	if err := user.SetPassword(password); err != nil {
		metrics.AuthAttemptsTotal.WithLabelValues("signup", "error").Inc()
		return nil, errors.Wrap(err, errors.CodeInternalError, "failed to hash password")
	}

	if err := s.users.Create(ctx, user); err != nil {
		metrics.AuthAttemptsTotal.WithLabelValues("signup", "error").Inc()
		return nil, errors.Wrap(err, errors.CodeTransportError, "signup failed")
	}

	metrics.AuthAttemptsTotal.WithLabelValues("signup", "ok").Inc()
	return s.openSession(ctx, user)
}

// Login 登录
// 任何失败（用户不存在、密码错误、存储故障）都不会改变当前身份状态；
// 用户不存在与密码错误对调用方不可区分
func (s *Service) Login(ctx context.Context, email, password string) (*Result, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		metrics.AuthAttemptsTotal.WithLabelValues("login", "error").Inc()
		return nil, errors.Wrap(err, errors.CodeTransportError, "login failed")
	}

	if user == nil || !user.CheckPassword(password) {
		metrics.AuthAttemptsTotal.WithLabelValues("login", "rejected").Inc()
		return nil, errors.ErrLoginFailed
	}

	metrics.AuthAttemptsTotal.WithLabelValues("login", "ok").Inc()
	return s.openSession(ctx, user)
}

// Logout 登出：删除会话记录
func (s *Service) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		// 登出尽力而为：会话记录有 TTL 兜底
		logger.Warn(ctx, "failed to delete session", "session_id", sessionID, "error", err)
		return nil
	}
	metrics.SessionsActive.Dec()
	return nil
}

// CurrentUser 根据会话恢复当前用户
// 会话缺失、过期或存储故障都视为未登录，返回 (nil, nil) 而非错误
func (s *Service) CurrentUser(ctx context.Context, sessionID string) (*entity.User, error) {
	if sessionID == "" {
		return nil, nil
	}

	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil || session == nil {
		if err != nil {
			logger.Warn(ctx, "session restore failed", "error", err)
		}
		return nil, nil
	}

	user, err := s.users.GetByID(ctx, session.UserID)
	if err != nil {
		logger.Warn(ctx, "user lookup during session restore failed", "error", err)
		return nil, nil
	}
	return user, nil
}

// Refresh 根据刷新 Token 签发新的访问 Token
func (s *Service) Refresh(ctx context.Context, refreshToken string) (string, int, error) {
	claims, err := s.jwtManager.ParseToken(refreshToken)
	if err != nil || claims.Type != "refresh" {
		return "", 0, errors.ErrTokenInvalid
	}

	// 会话已被登出则拒绝刷新
	session, err := s.sessions.Get(ctx, claims.SessionID)
	if err != nil || session == nil {
		return "", 0, errors.ErrUnauthorized
	}

	token, err := s.jwtManager.GenerateToken(claims.UserID, claims.Role, claims.SessionID, "access", s.accessTTL)
	if err != nil {
		return "", 0, errors.Wrap(err, errors.CodeInternalError, "failed to generate access token")
	}
	return token, int(s.accessTTL.Seconds()), nil
}

// openSession 写入会话记录并签发 Token 对
func (s *Service) openSession(ctx context.Context, user *entity.User) (*Result, error) {
	session := &Session{
		ID:        uuid.New().String(),
		UserID:    user.ID,
		CreatedAt: time.Now(),
	}

	if err := s.sessions.Save(ctx, session, s.refreshTTL); err != nil {
		return nil, errors.Wrap(err, errors.CodeTransportError, "failed to persist session")
	}

	tokens, err := s.jwtManager.GenerateTokenPair(user.ID, string(user.Role), session.ID, s.accessTTL, s.refreshTTL)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInternalError, "failed to generate tokens")
	}

	metrics.SessionsActive.Inc()
	return &Result{
		User:      user,
		Tokens:    tokens,
		SessionID: session.ID,
		ExpiresIn: int(s.accessTTL.Seconds()),
	}, nil
}
