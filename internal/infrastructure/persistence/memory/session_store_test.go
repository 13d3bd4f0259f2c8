package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"novel-nest-api/internal/application/auth"
)

func TestSessionStore_SaveGetDelete(t *testing.T) {
	t.Parallel()

	store := NewSessionStore()
	ctx := context.Background()

	session := &auth.Session{ID: "sess-1", UserID: 7, CreatedAt: time.Now()}
	require.NoError(t, store.Save(ctx, session, time.Minute))

	got, err := store.Get(ctx, "sess-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, int64(7), got.UserID)

	// 返回的是副本，修改不影响存储
	got.UserID = 99
	again, err := store.Get(ctx, "sess-1")
	require.NoError(t, err)
	require.Equal(t, int64(7), again.UserID)

	require.NoError(t, store.Delete(ctx, "sess-1"))
	gone, err := store.Get(ctx, "sess-1")
	require.NoError(t, err)
	require.Nil(t, gone)
}

func TestSessionStore_MissingSessionIsNilNil(t *testing.T) {
	t.Parallel()

	store := NewSessionStore()
	got, err := store.Get(context.Background(), "no-such")
	require.NoError(t, err)
	require.Nil(t, got)

	// 删除不存在的会话不报错
	require.NoError(t, store.Delete(context.Background(), "no-such"))
}

func TestSessionStore_ExpiredSessionEvictedOnRead(t *testing.T) {
	t.Parallel()

	store := NewSessionStore()
	ctx := context.Background()

	session := &auth.Session{ID: "sess-ttl", UserID: 1, CreatedAt: time.Now()}
	require.NoError(t, store.Save(ctx, session, -time.Second))

	got, err := store.Get(ctx, "sess-ttl")
	require.NoError(t, err)
	require.Nil(t, got)
}
