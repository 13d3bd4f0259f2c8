package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestJWTManager_TokenRoundTrip(t *testing.T) {
	t.Parallel()

	m := NewJWTManager("unit-test-secret", "novel-nest-test")

	token, err := m.GenerateToken(42, "writer", "sess-abc", "access", time.Minute)
	require.NoError(t, err)

	claims, err := m.ParseToken(token)
	require.NoError(t, err)
	require.Equal(t, int64(42), claims.UserID)
	require.Equal(t, "writer", claims.Role)
	require.Equal(t, "sess-abc", claims.SessionID)
	require.Equal(t, "access", claims.Type)
	require.Equal(t, "novel-nest-test", claims.Issuer)
}

func TestJWTManager_TokenPairCarriesTypes(t *testing.T) {
	t.Parallel()

	m := NewJWTManager("unit-test-secret", "novel-nest-test")

	pair, err := m.GenerateTokenPair(7, "reader", "sess-1", time.Minute, time.Hour)
	require.NoError(t, err)

	access, err := m.ParseToken(pair.AccessToken)
	require.NoError(t, err)
	require.Equal(t, "access", access.Type)

	refresh, err := m.ParseToken(pair.RefreshToken)
	require.NoError(t, err)
	require.Equal(t, "refresh", refresh.Type)
}

func TestJWTManager_WrongSecretRejected(t *testing.T) {
	t.Parallel()

	signer := NewJWTManager("secret-a", "novel-nest-test")
	verifier := NewJWTManager("secret-b", "novel-nest-test")

	token, err := signer.GenerateToken(1, "reader", "s", "access", time.Minute)
	require.NoError(t, err)

	_, err = verifier.ParseToken(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTManager_ExpiredTokenRejected(t *testing.T) {
	t.Parallel()

	m := NewJWTManager("unit-test-secret", "novel-nest-test")

	token, err := m.GenerateToken(1, "reader", "s", "access", -time.Minute)
	require.NoError(t, err)

	_, err = m.ParseToken(token)
	require.ErrorIs(t, err, ErrExpiredToken)
}

func TestJWTManager_GarbageRejected(t *testing.T) {
	t.Parallel()

	m := NewJWTManager("unit-test-secret", "novel-nest-test")

	_, err := m.ParseToken("definitely.not.a-jwt")
	require.ErrorIs(t, err, ErrInvalidToken)

	_, err = m.ParseToken("")
	require.ErrorIs(t, err, ErrInvalidToken)
}
