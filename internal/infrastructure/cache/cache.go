package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"meal-planner/internal/infrastructure/config"
	"meal-planner/internal/pkg/common"

	"go.uber.org/zap"
)

// ErrMiss 快取未命中
var ErrMiss = errors.New("cache miss")

// Cache 結果快取介面，值為已序列化的內容
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// New 依設定建立快取；停用時回傳 nil
func New(cfg *config.CacheConfig) (Cache, error) {
	if !cfg.Enabled {
		common.LogInfo("Cache disabled")
		return nil, nil
	}

	switch cfg.Driver {
	case "redis":
		return NewRedis(cfg)
	case "memory", "":
		return NewMemory(cfg), nil
	default:
		common.LogError("未知的快取驅動", zap.String("driver", cfg.Driver))
		return nil, fmt.Errorf("unsupported cache driver %q", cfg.Driver)
	}
}
