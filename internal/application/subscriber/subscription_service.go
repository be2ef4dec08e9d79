package subscriber

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/newsagent/backend/internal/domain/shared"
	"github.com/newsagent/backend/internal/domain/subscriber"
)

// SubscriptionService provides application-level subscription operations
type SubscriptionService struct {
	subscriptionRepo subscriber.SubscriptionRepository
	customerRepo     subscriber.CustomerRepository
	paperRepo        subscriber.NewsPaperRepository
}

// NewSubscriptionService creates a new SubscriptionService
func NewSubscriptionService(
	subscriptionRepo subscriber.SubscriptionRepository,
	customerRepo subscriber.CustomerRepository,
	paperRepo subscriber.NewsPaperRepository,
) *SubscriptionService {
	return &SubscriptionService{
		subscriptionRepo: subscriptionRepo,
		customerRepo:     customerRepo,
		paperRepo:        paperRepo,
	}
}

// CreateSubscriptionRequest represents a request to subscribe a customer
type CreateSubscriptionRequest struct {
	CustomerID  uuid.UUID
	NewsPaperID uuid.UUID
	StartDate   time.Time
	EndDate     *time.Time
}

// CreateSubscription subscribes a customer to a newspaper. A customer
// holds at most one active subscription; the billing period logic
// depends on this, so it is enforced here rather than trusted.
func (s *SubscriptionService) CreateSubscription(ctx context.Context, req CreateSubscriptionRequest) (*subscriber.Subscription, error) {
	if _, err := s.customerRepo.FindByID(ctx, req.CustomerID); err != nil {
		return nil, err
	}
	if _, err := s.paperRepo.FindByID(ctx, req.NewsPaperID); err != nil {
		return nil, err
	}

	existing, err := s.subscriptionRepo.FindActiveByCustomer(ctx, req.CustomerID)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, fmt.Errorf("failed to check active subscription: %w", err)
	}
	if existing != nil {
		return nil, subscriber.ErrDuplicateActiveSubscription
	}

	subscription, err := subscriber.NewSubscription(req.CustomerID, req.NewsPaperID, req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}
	if err := s.subscriptionRepo.Save(ctx, subscription); err != nil {
		return nil, fmt.Errorf("failed to save subscription: %w", err)
	}
	return subscription, nil
}

// EndSubscription closes a subscription as of the given date
func (s *SubscriptionService) EndSubscription(ctx context.Context, id uuid.UUID, endDate time.Time) (*subscriber.Subscription, error) {
	subscription, err := s.subscriptionRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := subscription.End(endDate); err != nil {
		return nil, err
	}
	if err := s.subscriptionRepo.Save(ctx, subscription); err != nil {
		return nil, fmt.Errorf("failed to save subscription: %w", err)
	}
	return subscription, nil
}

// GetSubscription retrieves a subscription by ID
func (s *SubscriptionService) GetSubscription(ctx context.Context, id uuid.UUID) (*subscriber.Subscription, error) {
	return s.subscriptionRepo.FindByID(ctx, id)
}

// ListByCustomer lists a customer's subscriptions
func (s *SubscriptionService) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]subscriber.Subscription, error) {
	return s.subscriptionRepo.FindByCustomer(ctx, customerID)
}
