package cache

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/newsagent/backend/internal/domain/billing"
	"go.uber.org/zap"
)

const defaultCleanupInterval = 30 * time.Second

// InMemoryDashboardCache implements billing.DashboardCache with process-local
// storage. Used for development and single-instance deployments where Redis
// is not configured.
type InMemoryDashboardCache struct {
	entries sync.Map // map[string]*cacheEntry
	logger  *zap.Logger
	stopCh  chan struct{}
	stopped int32

	hits   int64
	misses int64
}

type cacheEntry struct {
	summary   *billing.DashboardSummary
	expiresAt time.Time
}

func (e *cacheEntry) isExpired() bool {
	return time.Now().After(e.expiresAt)
}

// InMemoryDashboardCacheOption is a functional option for configuring the cache
type InMemoryDashboardCacheOption func(*InMemoryDashboardCache)

// WithInMemoryLogger sets the logger for the cache
func WithInMemoryLogger(logger *zap.Logger) InMemoryDashboardCacheOption {
	return func(c *InMemoryDashboardCache) {
		c.logger = logger
	}
}

// NewInMemoryDashboardCache creates a new in-memory dashboard cache.
// A background goroutine evicts expired entries until Close is called.
func NewInMemoryDashboardCache(opts ...InMemoryDashboardCacheOption) *InMemoryDashboardCache {
	cache := &InMemoryDashboardCache{
		logger: zap.NewNop(),
		stopCh: make(chan struct{}),
	}

	for _, opt := range opts {
		opt(cache)
	}

	go cache.cleanupExpired()

	return cache
}

func (c *InMemoryDashboardCache) summaryKey(date time.Time) string {
	return date.Format("2006-01-02")
}

// Get retrieves the cached summary for a date. A miss is (nil, nil).
func (c *InMemoryDashboardCache) Get(ctx context.Context, date time.Time) (*billing.DashboardSummary, error) {
	key := c.summaryKey(date)

	if value, ok := c.entries.Load(key); ok {
		entry := value.(*cacheEntry)
		if !entry.isExpired() {
			atomic.AddInt64(&c.hits, 1)
			c.logger.Debug("Cache hit for dashboard summary", zap.String("key", key))
			return entry.summary, nil
		}
		c.entries.Delete(key)
	}

	atomic.AddInt64(&c.misses, 1)
	c.logger.Debug("Cache miss for dashboard summary", zap.String("key", key))
	return nil, nil
}

// Set stores a dashboard summary with the given TTL.
func (c *InMemoryDashboardCache) Set(ctx context.Context, summary *billing.DashboardSummary, ttl time.Duration) error {
	if summary == nil {
		return nil
	}

	key := c.summaryKey(summary.Date)
	c.entries.Store(key, &cacheEntry{
		summary:   summary,
		expiresAt: time.Now().Add(ttl),
	})

	c.logger.Debug("Cached dashboard summary",
		zap.String("key", key),
		zap.Duration("ttl", ttl))
	return nil
}

// Invalidate removes the cached summary for a date.
func (c *InMemoryDashboardCache) Invalidate(ctx context.Context, date time.Time) error {
	key := c.summaryKey(date)
	c.entries.Delete(key)
	c.logger.Debug("Invalidated dashboard summary", zap.String("key", key))
	return nil
}

// Close stops the background cleanup goroutine.
func (c *InMemoryDashboardCache) Close() error {
	if atomic.CompareAndSwapInt32(&c.stopped, 0, 1) {
		close(c.stopCh)
	}
	return nil
}

// GetStats returns cache hit and miss counters
func (c *InMemoryDashboardCache) GetStats() (hits, misses int64) {
	return atomic.LoadInt64(&c.hits), atomic.LoadInt64(&c.misses)
}

// cleanupExpired periodically removes expired entries from the cache
func (c *InMemoryDashboardCache) cleanupExpired() {
	ticker := time.NewTicker(defaultCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-c.stopCh:
			return
		case <-ticker.C:
			removed := 0
			c.entries.Range(func(key, value any) bool {
				if value.(*cacheEntry).isExpired() {
					c.entries.Delete(key)
					removed++
				}
				return true
			})
			if removed > 0 {
				c.logger.Debug("Cleaned up expired dashboard cache entries",
					zap.Int("removed", removed))
			}
		}
	}
}

// Ensure InMemoryDashboardCache implements billing.DashboardCache
var _ billing.DashboardCache = (*InMemoryDashboardCache)(nil)
