package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"novel-nest-api/internal/application/auth"
	"novel-nest-api/internal/domain/entity"
	"novel-nest-api/internal/infrastructure/persistence/memory"
	"novel-nest-api/pkg/errors"
	"novel-nest-api/pkg/utils"
)

// newTestService 基于内存存储构建认证服务
func newTestService(t *testing.T) (*auth.Service, *memory.Store) {
	t.Helper()

	store := memory.NewStoreWithFixtures()
	users := memory.NewUserRepository(store)
	sessions := memory.NewSessionStore()
	jwtManager := utils.NewJWTManager("test-secret", "novel-nest-test")

	return auth.NewService(users, sessions, jwtManager, 15*time.Minute, 24*time.Hour), store
}

func TestSignup_CreatesReaderWithSession(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	ctx := context.Background()

	result, err := svc.Signup(ctx, "nadia", "nadia@novelnest.dev", "s3cret-pass")
	require.NoError(t, err)
	require.NotNil(t, result.User)
	require.Equal(t, "nadia", result.User.Username)
	require.Equal(t, entity.UserRoleReader, result.User.Role)
	require.True(t, result.User.CheckPassword("s3cret-pass"))
	require.NotEmpty(t, result.SessionID)
	require.NotEmpty(t, result.Tokens.AccessToken)
	require.NotEmpty(t, result.Tokens.RefreshToken)

	// 会话立即可恢复
	current, err := svc.CurrentUser(ctx, result.SessionID)
	require.NoError(t, err)
	require.NotNil(t, current)
	require.Equal(t, result.User.ID, current.ID)
}

func TestSignup_DuplicateUsernameRejected(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Signup(ctx, "elias", "new-elias@novelnest.dev", "whatever")
	require.Error(t, err)
	require.True(t, errors.IsCode(err, errors.CodeUsernameTaken))
}

func TestSignup_DuplicateEmailRejected(t *testing.T) {
	t.Parallel()

	svc, store := newTestService(t)
	ctx := context.Background()

	_, err := svc.Signup(ctx, "elias2", "elias@novelnest.dev", "whatever")
	require.Error(t, err)
	require.True(t, errors.IsCode(err, errors.CodeEmailTaken))

	// 冲突时不应写入任何数据
	u, err := memory.NewUserRepository(store).GetByUsername(ctx, "elias2")
	require.NoError(t, err)
	require.Nil(t, u)
}

func TestLogin_Success(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	ctx := context.Background()

	result, err := svc.Login(ctx, "mira@novelnest.dev", "password123")
	require.NoError(t, err)
	require.Equal(t, "mira", result.User.Username)
	require.NotEmpty(t, result.Tokens.AccessToken)
	require.NotEmpty(t, result.Tokens.RefreshToken)
	require.Positive(t, result.ExpiresIn)
}

func TestLogin_WrongPasswordAndUnknownEmailIndistinguishable(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	ctx := context.Background()

	_, errWrongPass := svc.Login(ctx, "mira@novelnest.dev", "not-the-password")
	_, errNoUser := svc.Login(ctx, "ghost@novelnest.dev", "password123")

	require.True(t, errors.IsCode(errWrongPass, errors.CodeLoginFailed))
	require.True(t, errors.IsCode(errNoUser, errors.CodeLoginFailed))
	require.Equal(t, errWrongPass.Error(), errNoUser.Error())
}

func TestLogout_InvalidatesSession(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	ctx := context.Background()

	result, err := svc.Login(ctx, "mira@novelnest.dev", "password123")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, result.SessionID))

	current, err := svc.CurrentUser(ctx, result.SessionID)
	require.NoError(t, err)
	require.Nil(t, current)
}

func TestLogout_EmptyAndUnknownSessionAreNoops(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.Logout(ctx, ""))
	require.NoError(t, svc.Logout(ctx, "no-such-session"))
}

func TestCurrentUser_UnknownSessionIsAnonymous(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	ctx := context.Background()

	current, err := svc.CurrentUser(ctx, "no-such-session")
	require.NoError(t, err)
	require.Nil(t, current)

	current, err = svc.CurrentUser(ctx, "")
	require.NoError(t, err)
	require.Nil(t, current)
}

func TestRefresh_IssuesNewAccessToken(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	ctx := context.Background()

	result, err := svc.Login(ctx, "elias@novelnest.dev", "password123")
	require.NoError(t, err)

	token, expiresIn, err := svc.Refresh(ctx, result.Tokens.RefreshToken)
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.Positive(t, expiresIn)

	// 新 Token 必须是访问类型且绑定同一会话
	claims, err := utils.NewJWTManager("test-secret", "novel-nest-test").ParseToken(token)
	require.NoError(t, err)
	require.Equal(t, "access", claims.Type)
	require.Equal(t, result.SessionID, claims.SessionID)
	require.Equal(t, result.User.ID, claims.UserID)
}

func TestRefresh_RejectsAccessTokenAndGarbage(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	ctx := context.Background()

	result, err := svc.Login(ctx, "elias@novelnest.dev", "password123")
	require.NoError(t, err)

	// 访问 Token 不能当刷新 Token 用
	_, _, err = svc.Refresh(ctx, result.Tokens.AccessToken)
	require.True(t, errors.IsCode(err, errors.CodeTokenInvalid))

	_, _, err = svc.Refresh(ctx, "not-a-token")
	require.True(t, errors.IsCode(err, errors.CodeTokenInvalid))
}

func TestRefresh_RejectedAfterLogout(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	ctx := context.Background()

	result, err := svc.Login(ctx, "elias@novelnest.dev", "password123")
	require.NoError(t, err)
	require.NoError(t, svc.Logout(ctx, result.SessionID))

	_, _, err = svc.Refresh(ctx, result.Tokens.RefreshToken)
	require.True(t, errors.IsCode(err, errors.CodeUnauthorized))
}
