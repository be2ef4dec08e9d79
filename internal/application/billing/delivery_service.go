package billing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/newsagent/backend/internal/domain/billing"
	"github.com/newsagent/backend/internal/domain/shared"
	"github.com/newsagent/backend/internal/domain/subscriber"
	"github.com/newsagent/backend/internal/infrastructure/telemetry"
)

// DeliveryService manages the daily delivery ledger
type DeliveryService struct {
	deliveryRepo     billing.DeliveryRepository
	subscriptionRepo subscriber.SubscriptionRepository
	paperRepo        subscriber.NewsPaperRepository

	now               func() time.Time
	futureDateAllowed bool
}

// NewDeliveryService creates a new DeliveryService. futureDateAllowed
// lifts the guard that rejects generating deliveries dated after today;
// it is off in production and on in test or backfill setups.
func NewDeliveryService(
	deliveryRepo billing.DeliveryRepository,
	subscriptionRepo subscriber.SubscriptionRepository,
	paperRepo subscriber.NewsPaperRepository,
	futureDateAllowed bool,
) *DeliveryService {
	return &DeliveryService{
		deliveryRepo:      deliveryRepo,
		subscriptionRepo:  subscriptionRepo,
		paperRepo:         paperRepo,
		now:               time.Now,
		futureDateAllowed: futureDateAllowed,
	}
}

// WithClock overrides the wall clock, for tests
func (s *DeliveryService) WithClock(now func() time.Time) *DeliveryService {
	s.now = now
	return s
}

// GenerateResult reports the outcome of one generation run
type GenerateResult struct {
	Date     time.Time `json:"date"`
	Created  int       `json:"created"`
	Existing int       `json:"existing"`
}

// GenerateForDate creates one delivery per deliverable subscription on
// the given date, snapshotting each newspaper's current price.
// Re-running for the same date is idempotent: subscriptions that
// already have a delivery are counted but left untouched.
func (s *DeliveryService) GenerateForDate(ctx context.Context, date time.Time) (*GenerateResult, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "delivery", "generate_for_date")
	defer span.End()

	day := shared.DateOf(date)
	telemetry.SetAttributes(span, "delivery.date", shared.FormatDate(day))

	if !s.futureDateAllowed && day.After(shared.DateOf(s.now())) {
		telemetry.RecordError(span, billing.ErrFutureDateNotAllowed)
		return nil, billing.ErrFutureDateNotAllowed
	}

	subscriptions, err := s.subscriptionRepo.FindDeliverable(ctx, day)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("failed to load deliverable subscriptions: %w", err)
	}

	result := &GenerateResult{Date: day}
	prices := map[uuid.UUID]*subscriber.NewsPaper{}
	for i := range subscriptions {
		sub := &subscriptions[i]

		paper, ok := prices[sub.NewsPaperID]
		if !ok {
			paper, err = s.paperRepo.FindByID(ctx, sub.NewsPaperID)
			if err != nil {
				telemetry.RecordError(span, err)
				return nil, fmt.Errorf("failed to load newspaper %s: %w", sub.NewsPaperID, err)
			}
			prices[sub.NewsPaperID] = paper
		}

		delivery, err := billing.NewDelivery(sub.CustomerID, sub.GetID(), sub.NewsPaperID, day, paper.PricePerDay)
		if err != nil {
			telemetry.RecordError(span, err)
			return nil, err
		}

		_, created, err := s.deliveryRepo.CreateIfAbsent(ctx, delivery)
		if err != nil {
			telemetry.RecordError(span, err)
			return nil, fmt.Errorf("failed to record delivery: %w", err)
		}
		if created {
			result.Created++
		} else {
			result.Existing++
		}
	}

	telemetry.SetAttributes(span, "delivery.created", result.Created, "delivery.existing", result.Existing)
	telemetry.SetOK(span)
	return result, nil
}

// RecordDelivery creates the delivery for one customer on the given
// date from their active subscription, snapshotting the newspaper's
// current price. Like GenerateForDate it is idempotent: when the
// delivery already exists it is returned unchanged and created is
// false.
func (s *DeliveryService) RecordDelivery(ctx context.Context, customerID uuid.UUID, date time.Time) (*billing.Delivery, bool, error) {
	day := shared.DateOf(date)
	if !s.futureDateAllowed && day.After(shared.DateOf(s.now())) {
		return nil, false, billing.ErrFutureDateNotAllowed
	}

	sub, err := s.subscriptionRepo.FindActiveByCustomer(ctx, customerID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, false, billing.ErrNoActiveSubscription
		}
		return nil, false, fmt.Errorf("failed to load active subscription: %w", err)
	}
	if !sub.Covers(day) {
		return nil, false, billing.ErrNoActiveSubscription
	}

	paper, err := s.paperRepo.FindByID(ctx, sub.NewsPaperID)
	if err != nil {
		return nil, false, fmt.Errorf("failed to load newspaper %s: %w", sub.NewsPaperID, err)
	}

	delivery, err := billing.NewDelivery(customerID, sub.GetID(), sub.NewsPaperID, day, paper.PricePerDay)
	if err != nil {
		return nil, false, err
	}
	return s.deliveryRepo.CreateIfAbsent(ctx, delivery)
}

// SetStatus overwrites the status of one delivery
func (s *DeliveryService) SetStatus(ctx context.Context, deliveryID uuid.UUID, status billing.DeliveryStatus) (*billing.Delivery, error) {
	delivery, err := s.deliveryRepo.FindByID(ctx, deliveryID)
	if err != nil {
		return nil, err
	}
	if err := delivery.SetStatus(status); err != nil {
		return nil, err
	}
	if err := s.deliveryRepo.Save(ctx, delivery); err != nil {
		return nil, fmt.Errorf("failed to save delivery: %w", err)
	}
	return delivery, nil
}

// SetStatusForDate overwrites the status of every delivery on the given
// date, typically to mark a holiday, and returns the number updated
func (s *DeliveryService) SetStatusForDate(ctx context.Context, date time.Time, status billing.DeliveryStatus) (int64, error) {
	if !status.IsValid() {
		return 0, shared.NewDomainError("INVALID_STATUS", "Unknown delivery status")
	}
	return s.deliveryRepo.UpdateStatusForDate(ctx, shared.DateOf(date), status)
}

// ListForDate lists deliveries on a date with pagination
func (s *DeliveryService) ListForDate(ctx context.Context, date time.Time, filter shared.Filter) (shared.Paginated[billing.Delivery], error) {
	day := shared.DateOf(date)
	deliveries, err := s.deliveryRepo.FindForDate(ctx, day, filter)
	if err != nil {
		return shared.Paginated[billing.Delivery]{}, err
	}
	total, err := s.deliveryRepo.CountForDate(ctx, day, filter)
	if err != nil {
		return shared.Paginated[billing.Delivery]{}, err
	}
	return shared.NewPaginated(deliveries, total, filter.Page, filter.PageSize), nil
}
