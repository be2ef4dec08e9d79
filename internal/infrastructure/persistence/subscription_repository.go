package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/newsagent/backend/internal/domain/shared"
	"github.com/newsagent/backend/internal/domain/subscriber"
	"github.com/newsagent/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormSubscriptionRepository implements SubscriptionRepository using GORM
type GormSubscriptionRepository struct {
	db *gorm.DB
}

// NewGormSubscriptionRepository creates a new GormSubscriptionRepository
func NewGormSubscriptionRepository(db *gorm.DB) *GormSubscriptionRepository {
	return &GormSubscriptionRepository{db: db}
}

// FindByID finds a subscription by its ID
func (r *GormSubscriptionRepository) FindByID(ctx context.Context, id uuid.UUID) (*subscriber.Subscription, error) {
	var model models.SubscriptionModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindActiveByCustomer returns the customer's active subscription
func (r *GormSubscriptionRepository) FindActiveByCustomer(ctx context.Context, customerID uuid.UUID) (*subscriber.Subscription, error) {
	var model models.SubscriptionModel
	if err := r.db.WithContext(ctx).
		Where("customer_id = ? AND is_active = ?", customerID, true).
		Order("created_at DESC").
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindDeliverable returns active subscriptions of active customers whose
// date range covers the given date
func (r *GormSubscriptionRepository) FindDeliverable(ctx context.Context, date time.Time) ([]subscriber.Subscription, error) {
	day := shared.DateOf(date)

	var subscriptionModels []models.SubscriptionModel
	if err := r.db.WithContext(ctx).
		Joins("JOIN customers ON customers.id = subscriptions.customer_id").
		Where("subscriptions.is_active = ?", true).
		Where("customers.is_active = ?", true).
		Where("subscriptions.start_date <= ?", day).
		Where("subscriptions.end_date IS NULL OR subscriptions.end_date >= ?", day).
		Order("subscriptions.created_at ASC").
		Find(&subscriptionModels).Error; err != nil {
		return nil, err
	}

	subscriptions := make([]subscriber.Subscription, len(subscriptionModels))
	for i, model := range subscriptionModels {
		subscriptions[i] = *model.ToDomain()
	}
	return subscriptions, nil
}

// FindByCustomer lists all subscriptions for a customer, newest first
func (r *GormSubscriptionRepository) FindByCustomer(ctx context.Context, customerID uuid.UUID) ([]subscriber.Subscription, error) {
	var subscriptionModels []models.SubscriptionModel
	if err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("start_date DESC, created_at DESC").
		Find(&subscriptionModels).Error; err != nil {
		return nil, err
	}

	subscriptions := make([]subscriber.Subscription, len(subscriptionModels))
	for i, model := range subscriptionModels {
		subscriptions[i] = *model.ToDomain()
	}
	return subscriptions, nil
}

// Save creates or updates a subscription
func (r *GormSubscriptionRepository) Save(ctx context.Context, subscription *subscriber.Subscription) error {
	model := models.SubscriptionModelFromDomain(subscription)
	return r.db.WithContext(ctx).Save(model).Error
}

// Ensure GormSubscriptionRepository implements SubscriptionRepository
var _ subscriber.SubscriptionRepository = (*GormSubscriptionRepository)(nil)
