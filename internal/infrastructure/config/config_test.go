package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "memory", cfg.Cache.Driver)
	assert.Equal(t, 24*time.Hour, cfg.Cache.TTL)
	assert.Equal(t, 3, cfg.Planner.Concurrency)
	assert.Equal(t, 1.5, cfg.Planner.ServingsFactor)
	assert.Equal(t, time.Minute, cfg.RateLimit.Window)
	assert.Equal(t, time.Second, cfg.DedupWindow)
}

func TestValidateConfig(t *testing.T) {
	cfg := Default()
	assert.ErrorContains(t, validateConfig(cfg), "api key")

	cfg.OpenRouter.APIKey = "sk-test"
	assert.NoError(t, validateConfig(cfg))

	bad := *cfg
	bad.Database.Driver = "mysql"
	assert.ErrorContains(t, validateConfig(&bad), "unsupported database driver")

	bad = *cfg
	bad.Cache.Driver = "redis"
	bad.Cache.RedisAddr = ""
	assert.ErrorContains(t, validateConfig(&bad), "redis address")

	bad = *cfg
	bad.Planner.Concurrency = 0
	assert.Error(t, validateConfig(&bad))

	// 停用快取時不檢查快取設定
	bad = *cfg
	bad.Cache.Enabled = false
	bad.Cache.Driver = "unknown"
	assert.NoError(t, validateConfig(&bad))
}

func TestLoadConfig_Env(t *testing.T) {
	t.Setenv("OPENROUTER_API_KEY", "sk-env")
	t.Setenv("APP_SERVER_PORT", "9090")
	t.Setenv("RATE_LIMIT_REQUESTS", "5")
	t.Setenv("APP_PLANNER_CONCURRENCY", "7")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "sk-env", cfg.OpenRouter.APIKey)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 5, cfg.RateLimit.Requests)
	assert.Equal(t, 7, cfg.Planner.Concurrency)
}

func TestMaskAPIKey(t *testing.T) {
	assert.Equal(t, "****", maskAPIKey("short"))
	assert.Equal(t, "sk-o...wxyz", maskAPIKey("sk-or-v1-abcdefwxyz"))
}
