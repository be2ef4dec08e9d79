package billing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/newsagent/backend/internal/domain/billing"
	"github.com/newsagent/backend/internal/domain/shared"
	"github.com/newsagent/backend/internal/infrastructure/telemetry"
)

const (
	topPendingLimit   = 10
	dashboardCacheTTL = 30 * time.Second
)

// DashboardService composes the read-side projections into one summary
type DashboardService struct {
	reportRepo billing.ReportRepository
	cache      billing.DashboardCache
	logger     *zap.Logger

	now func() time.Time
}

// NewDashboardService creates a new DashboardService. cache may be nil,
// in which case every call recomputes from the database.
func NewDashboardService(reportRepo billing.ReportRepository, cache billing.DashboardCache, logger *zap.Logger) *DashboardService {
	return &DashboardService{
		reportRepo: reportRepo,
		cache:      cache,
		logger:     logger,
		now:        time.Now,
	}
}

// WithClock overrides the wall clock, for tests
func (s *DashboardService) WithClock(now func() time.Time) *DashboardService {
	s.now = now
	return s
}

// Summary returns today's dashboard: delivery status counts, delivered
// value, the month to date, the global pending balance and the ten
// customers owing the most. Served from cache when fresh; cache
// failures are logged and fall through to recomputation.
func (s *DashboardService) Summary(ctx context.Context) (*billing.DashboardSummary, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "dashboard", "summary")
	defer span.End()

	today := shared.DateOf(s.now())

	if s.cache != nil {
		cached, err := s.cache.Get(ctx, today)
		if err != nil {
			s.logger.Warn("dashboard cache read failed", zap.Error(err))
		} else if cached != nil {
			telemetry.SetAttributes(span, "dashboard.cache_hit", true)
			telemetry.SetOK(span)
			return cached, nil
		}
	}

	daily, err := s.reportRepo.DailySnapshot(ctx, today)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	month, err := s.reportRepo.MonthSnapshot(ctx, today)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	totalPending, err := s.reportRepo.TotalPending(ctx)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	topPending, err := s.reportRepo.TopPendingCustomers(ctx, topPendingLimit)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	summary := &billing.DashboardSummary{
		Date:         today,
		Today:        *daily,
		Month:        *month,
		TotalPending: totalPending,
		TopPending:   topPending,
		GeneratedAt:  s.now().UTC(),
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, summary, dashboardCacheTTL); err != nil {
			s.logger.Warn("dashboard cache write failed", zap.Error(err))
		}
	}

	telemetry.SetOK(span)
	return summary, nil
}

// CustomerBalance returns one customer's aggregate balance
func (s *DashboardService) CustomerBalance(ctx context.Context, customerID uuid.UUID) (*billing.CustomerBalance, error) {
	return s.reportRepo.CustomerBalance(ctx, customerID)
}
