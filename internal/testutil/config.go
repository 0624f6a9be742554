package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ridecircle/ridecircle_client/config"
)

// Config 默认配置，环境变量覆盖解析失败时测试直接失败
func Config(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Default()
	require.NoError(t, err)
	return cfg
}
