package billing

import (
	"context"
	"time"

	"github.com/newsagent/backend/internal/domain/shared/valueobject"
)

// DashboardSummary is the composed read model served to the dashboard
type DashboardSummary struct {
	Date         time.Time         `json:"date"`
	Today        DailySnapshot     `json:"today"`
	Month        MonthSnapshot     `json:"month"`
	TotalPending valueobject.Money `json:"total_pending"`
	TopPending   []CustomerBalance `json:"top_pending"`
	GeneratedAt  time.Time         `json:"generated_at"`
}

// DashboardCache caches dashboard summaries. Implementations must
// treat a miss as (nil, nil); the read model is always recomputable
// from persisted state, so cache failures degrade to recomputation.
type DashboardCache interface {
	Get(ctx context.Context, date time.Time) (*DashboardSummary, error)
	Set(ctx context.Context, summary *DashboardSummary, ttl time.Duration) error
	Invalidate(ctx context.Context, date time.Time) error
}
