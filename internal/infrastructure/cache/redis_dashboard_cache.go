package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/newsagent/backend/internal/domain/billing"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RedisConfig holds the connection settings for the Redis cache backend.
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// RedisDashboardCache implements billing.DashboardCache using Redis.
// Summaries are keyed by calendar date so a day rollover naturally
// starts from a clean slate.
type RedisDashboardCache struct {
	client     *redis.Client
	ownsClient bool // true if we created the client and should close it
	logger     *zap.Logger
}

// RedisDashboardCacheOption is a functional option for configuring the cache
type RedisDashboardCacheOption func(*RedisDashboardCache)

// WithCacheLogger sets the logger for the cache
func WithCacheLogger(logger *zap.Logger) RedisDashboardCacheOption {
	return func(c *RedisDashboardCache) {
		c.logger = logger
	}
}

// NewRedisDashboardCache creates a Redis-backed dashboard cache and
// verifies the connection before returning.
func NewRedisDashboardCache(cfg RedisConfig, opts ...RedisDashboardCacheOption) (*RedisDashboardCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	cache := &RedisDashboardCache{
		client:     client,
		ownsClient: true,
		logger:     zap.NewNop(),
	}

	for _, opt := range opts {
		opt(cache)
	}

	return cache, nil
}

// NewRedisDashboardCacheWithClient creates a cache with an existing Redis client.
// The caller retains ownership of the client and is responsible for closing it.
func NewRedisDashboardCacheWithClient(client *redis.Client, opts ...RedisDashboardCacheOption) *RedisDashboardCache {
	cache := &RedisDashboardCache{
		client:     client,
		ownsClient: false,
		logger:     zap.NewNop(),
	}

	for _, opt := range opts {
		opt(cache)
	}

	return cache
}

func (c *RedisDashboardCache) summaryKey(date time.Time) string {
	return "dashboard:summary:" + date.Format("2006-01-02")
}

// Get retrieves the cached dashboard summary for a date.
// A miss is (nil, nil).
func (c *RedisDashboardCache) Get(ctx context.Context, date time.Time) (*billing.DashboardSummary, error) {
	key := c.summaryKey(date)

	data, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		c.logger.Debug("Cache miss for dashboard summary", zap.String("key", key))
		return nil, nil
	}
	if err != nil {
		c.logger.Error("Failed to get dashboard summary from cache",
			zap.String("key", key),
			zap.Error(err))
		return nil, fmt.Errorf("failed to get dashboard summary from cache: %w", err)
	}

	var summary billing.DashboardSummary
	if err := json.Unmarshal(data, &summary); err != nil {
		c.logger.Error("Failed to unmarshal dashboard summary",
			zap.String("key", key),
			zap.Error(err))
		// Delete corrupted cache entry
		_ = c.client.Del(ctx, key)
		return nil, fmt.Errorf("failed to unmarshal dashboard summary: %w", err)
	}

	c.logger.Debug("Cache hit for dashboard summary", zap.String("key", key))
	return &summary, nil
}

// Set stores a dashboard summary with the given TTL.
func (c *RedisDashboardCache) Set(ctx context.Context, summary *billing.DashboardSummary, ttl time.Duration) error {
	if summary == nil {
		return nil
	}

	key := c.summaryKey(summary.Date)

	data, err := json.Marshal(summary)
	if err != nil {
		c.logger.Error("Failed to marshal dashboard summary",
			zap.String("key", key),
			zap.Error(err))
		return fmt.Errorf("failed to marshal dashboard summary: %w", err)
	}

	if err := c.client.Set(ctx, key, data, ttl).Err(); err != nil {
		c.logger.Error("Failed to set dashboard summary in cache",
			zap.String("key", key),
			zap.Error(err))
		return fmt.Errorf("failed to set dashboard summary in cache: %w", err)
	}

	c.logger.Debug("Cached dashboard summary",
		zap.String("key", key),
		zap.Duration("ttl", ttl))
	return nil
}

// Invalidate removes the cached summary for a date. Called after
// writes that change the aggregates, such as recording a payment.
func (c *RedisDashboardCache) Invalidate(ctx context.Context, date time.Time) error {
	key := c.summaryKey(date)

	if err := c.client.Del(ctx, key).Err(); err != nil {
		c.logger.Error("Failed to invalidate dashboard summary",
			zap.String("key", key),
			zap.Error(err))
		return fmt.Errorf("failed to invalidate dashboard summary: %w", err)
	}

	c.logger.Debug("Invalidated dashboard summary", zap.String("key", key))
	return nil
}

// Close releases the Redis client if this cache owns it.
func (c *RedisDashboardCache) Close() error {
	if c.ownsClient {
		return c.client.Close()
	}
	return nil
}

// GetClient returns the underlying Redis client (for testing/monitoring)
func (c *RedisDashboardCache) GetClient() *redis.Client {
	return c.client
}

// Ensure RedisDashboardCache implements billing.DashboardCache
var _ billing.DashboardCache = (*RedisDashboardCache)(nil)
