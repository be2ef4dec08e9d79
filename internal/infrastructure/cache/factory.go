package cache

import (
	"fmt"

	"github.com/newsagent/backend/internal/domain/billing"
	"github.com/newsagent/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// DashboardCacheFactory creates dashboard caches based on configuration
type DashboardCacheFactory struct {
	redisConfig           config.RedisConfig
	logger                *zap.Logger
	allowInMemoryFallback bool
}

// DashboardCacheFactoryOption is a functional option for configuring the factory
type DashboardCacheFactoryOption func(*DashboardCacheFactory)

// WithLogger sets the logger for the factory
func WithLogger(logger *zap.Logger) DashboardCacheFactoryOption {
	return func(f *DashboardCacheFactory) {
		f.logger = logger
	}
}

// WithInMemoryFallback controls whether to fall back to the in-memory cache
// when Redis is unavailable. Default is true.
func WithInMemoryFallback(allow bool) DashboardCacheFactoryOption {
	return func(f *DashboardCacheFactory) {
		f.allowInMemoryFallback = allow
	}
}

// NewDashboardCacheFactory creates a new factory
func NewDashboardCacheFactory(cfg config.RedisConfig, opts ...DashboardCacheFactoryOption) *DashboardCacheFactory {
	f := &DashboardCacheFactory{
		redisConfig:           cfg,
		logger:                zap.NewNop(),
		allowInMemoryFallback: true,
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// CreateRedisCache creates a Redis-backed dashboard cache
func (f *DashboardCacheFactory) CreateRedisCache() (billing.DashboardCache, error) {
	redisCfg := RedisConfig{
		Host:     f.redisConfig.Host,
		Port:     f.redisConfig.Port,
		Password: f.redisConfig.Password,
		DB:       f.redisConfig.DB,
	}

	c, err := NewRedisDashboardCache(redisCfg, WithCacheLogger(f.logger))
	if err != nil {
		return nil, fmt.Errorf("failed to create Redis dashboard cache: %w", err)
	}

	return c, nil
}

// CreateInMemoryCache creates a process-local dashboard cache.
// In-memory caches do not share state across instances, so stale
// summaries can be served until the TTL expires on each instance.
func (f *DashboardCacheFactory) CreateInMemoryCache() billing.DashboardCache {
	return NewInMemoryDashboardCache(WithInMemoryLogger(f.logger))
}

// CreateCache tries Redis first and falls back to the in-memory cache
// when Redis is unavailable and fallback is allowed.
func (f *DashboardCacheFactory) CreateCache() (billing.DashboardCache, error) {
	c, err := f.CreateRedisCache()
	if err == nil {
		f.logger.Info("using Redis dashboard cache")
		return c, nil
	}

	if !f.allowInMemoryFallback {
		return nil, fmt.Errorf("Redis required for dashboard cache but unavailable: %w", err)
	}

	f.logger.Warn("Redis unavailable, falling back to in-memory dashboard cache",
		zap.Error(err),
	)
	return f.CreateInMemoryCache(), nil
}
