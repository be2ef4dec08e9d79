package subscriber

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/newsagent/backend/internal/domain/shared"
)

// CustomerRepository defines the interface for customer persistence
type CustomerRepository interface {
	// FindByID finds a customer by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Customer, error)

	// FindAll finds customers matching the filter; Search matches name or phone
	FindAll(ctx context.Context, filter shared.Filter) ([]Customer, error)

	// Count counts customers matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// Save creates or updates a customer
	Save(ctx context.Context, customer *Customer) error
}

// NewsPaperRepository defines the interface for newspaper persistence
type NewsPaperRepository interface {
	// FindByID finds a newspaper by ID
	FindByID(ctx context.Context, id uuid.UUID) (*NewsPaper, error)

	// FindByName finds a newspaper by its unique name
	FindByName(ctx context.Context, name string) (*NewsPaper, error)

	// FindAll lists newspapers
	FindAll(ctx context.Context, filter shared.Filter) ([]NewsPaper, error)

	// Save creates or updates a newspaper
	Save(ctx context.Context, paper *NewsPaper) error
}

// SubscriptionRepository defines the interface for subscription persistence
type SubscriptionRepository interface {
	// FindByID finds a subscription by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Subscription, error)

	// FindActiveByCustomer returns the customer's active subscription,
	// or shared.ErrNotFound when none exists
	FindActiveByCustomer(ctx context.Context, customerID uuid.UUID) (*Subscription, error)

	// FindDeliverable returns active subscriptions of active customers
	// whose date range covers the given date
	FindDeliverable(ctx context.Context, date time.Time) ([]Subscription, error)

	// FindByCustomer lists all subscriptions for a customer
	FindByCustomer(ctx context.Context, customerID uuid.UUID) ([]Subscription, error)

	// Save creates or updates a subscription
	Save(ctx context.Context, subscription *Subscription) error
}
