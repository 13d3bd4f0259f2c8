package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExpandEnv_DefaultsAndOverrides(t *testing.T) {
	t.Setenv("NN_TEST_HOST", "db.internal")

	// 已设置的变量优先于默认值
	require.Equal(t, "host: db.internal", expandEnv("host: ${NN_TEST_HOST:localhost}"))

	// 未设置时取默认值
	require.Equal(t, "port: 5432", expandEnv("port: ${NN_TEST_PORT:5432}"))

	// 默认值可以为空串
	require.Equal(t, "password: ", expandEnv("password: ${NN_TEST_PASSWORD:}"))
}

func TestExpandEnv_UndefinedWithoutDefaultKeptVerbatim(t *testing.T) {
	// 无默认值且未定义的占位符保留原样，便于发现配置缺口
	require.Equal(t, "secret: ${NN_TEST_UNDEFINED}", expandEnv("secret: ${NN_TEST_UNDEFINED}"))
}

func TestExpandEnv_MultiplePlaceholdersPerLine(t *testing.T) {
	t.Setenv("NN_TEST_USER", "svc")

	got := expandEnv("dsn: ${NN_TEST_USER:postgres}@${NN_TEST_DB_HOST:localhost}:${NN_TEST_DB_PORT:5432}")
	require.Equal(t, "dsn: svc@localhost:5432", got)
}
