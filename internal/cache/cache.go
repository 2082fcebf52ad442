// internal/cache/cache.go

// Package cache stores serialized read views with a TTL.
package cache

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/deliciae/discovery-core/internal/config"
)

// ViewCache stores JSON encodable values. Get reports a miss with false and
// a nil error.
type ViewCache interface {
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	Close() error
}

// New returns a Redis cache when enabled, otherwise an in-process one.
func New(cfg config.RedisConfig) (ViewCache, error) {
	if !cfg.Enabled {
		logrus.Info("Redis disabled, using in-memory view cache")
		return NewMemory(), nil
	}
	return NewRedis(cfg)
}
