package persistence

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/newsagent/backend/internal/domain/billing"
	"github.com/newsagent/backend/internal/domain/shared"
	"github.com/newsagent/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormDeliveryRepository implements DeliveryRepository using GORM
type GormDeliveryRepository struct {
	db *gorm.DB
}

// NewGormDeliveryRepository creates a new GormDeliveryRepository
func NewGormDeliveryRepository(db *gorm.DB) *GormDeliveryRepository {
	return &GormDeliveryRepository{db: db}
}

// FindByID finds a delivery by its ID
func (r *GormDeliveryRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.Delivery, error) {
	var model models.DeliveryModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindForDate lists deliveries on the given date. Search matches the
// customer's name or phone.
func (r *GormDeliveryRepository) FindForDate(ctx context.Context, date time.Time, filter shared.Filter) ([]billing.Delivery, error) {
	var deliveryModels []models.DeliveryModel
	query := r.applySearch(
		r.db.WithContext(ctx).
			Model(&models.DeliveryModel{}).
			Where("deliveries.date = ?", shared.DateOf(date)),
		filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, DeliverySortFields, "created_at")
	orderDir := ValidateSortOrder(filter.OrderDir)
	if filter.OrderBy == "" {
		orderDir = "ASC"
	}
	// qualified since the search join brings in customers.created_at
	query = query.Order("deliveries." + orderBy + " " + orderDir)

	if err := query.Find(&deliveryModels).Error; err != nil {
		return nil, err
	}

	deliveries := make([]billing.Delivery, len(deliveryModels))
	for i, model := range deliveryModels {
		deliveries[i] = *model.ToDomain()
	}
	return deliveries, nil
}

// CountForDate counts deliveries on the given date under the same
// search predicate as FindForDate
func (r *GormDeliveryRepository) CountForDate(ctx context.Context, date time.Time, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applySearch(
		r.db.WithContext(ctx).
			Model(&models.DeliveryModel{}).
			Where("deliveries.date = ?", shared.DateOf(date)),
		filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applySearch joins customers so Search can match name or phone
func (r *GormDeliveryRepository) applySearch(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search == "" {
		return query
	}
	searchPattern := "%" + strings.ToLower(filter.Search) + "%"
	return query.
		Joins("JOIN customers ON customers.id = deliveries.customer_id").
		Where("LOWER(customers.name) LIKE ? OR LOWER(customers.phone) LIKE ?",
			searchPattern, searchPattern)
}

// CreateIfAbsent inserts the delivery unless one already exists for its
// (customer, date). The unique index on (customer_id, date) makes the
// insert race-safe; a losing insert falls through to reading the winner.
func (r *GormDeliveryRepository) CreateIfAbsent(ctx context.Context, delivery *billing.Delivery) (*billing.Delivery, bool, error) {
	model := models.DeliveryModelFromDomain(delivery)
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "customer_id"}, {Name: "date"}},
			DoNothing: true,
		}).
		Create(model)
	if result.Error != nil {
		return nil, false, result.Error
	}
	if result.RowsAffected > 0 {
		return model.ToDomain(), true, nil
	}

	var existing models.DeliveryModel
	if err := r.db.WithContext(ctx).
		Where("customer_id = ? AND date = ?", delivery.CustomerID, shared.DateOf(delivery.Date)).
		First(&existing).Error; err != nil {
		return nil, false, err
	}
	return existing.ToDomain(), false, nil
}

// Save updates an existing delivery
func (r *GormDeliveryRepository) Save(ctx context.Context, delivery *billing.Delivery) error {
	model := models.DeliveryModelFromDomain(delivery)
	return r.db.WithContext(ctx).Save(model).Error
}

// UpdateStatusForDate overwrites the status of every delivery on the
// given date and returns the number of rows affected
func (r *GormDeliveryRepository) UpdateStatusForDate(ctx context.Context, date time.Time, status billing.DeliveryStatus) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.DeliveryModel{}).
		Where("date = ?", shared.DateOf(date)).
		Updates(map[string]any{
			"status":     status,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// Ensure GormDeliveryRepository implements DeliveryRepository
var _ billing.DeliveryRepository = (*GormDeliveryRepository)(nil)
