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

// GormInvoiceRepository implements InvoiceRepository using GORM.
// Invoices are write-once; the only mutation path is CreateClaiming.
type GormInvoiceRepository struct {
	db *gorm.DB
}

// NewGormInvoiceRepository creates a new GormInvoiceRepository
func NewGormInvoiceRepository(db *gorm.DB) *GormInvoiceRepository {
	return &GormInvoiceRepository{db: db}
}

// FindByID finds an invoice with its line items
func (r *GormInvoiceRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.Invoice, error) {
	var model models.InvoiceModel
	if err := r.db.WithContext(ctx).
		Preload("LineItems", func(db *gorm.DB) *gorm.DB {
			return db.Order("delivery_date ASC")
		}).
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindLastByCustomer returns the customer's invoice with the latest ToDate
func (r *GormInvoiceRepository) FindLastByCustomer(ctx context.Context, customerID uuid.UUID) (*billing.Invoice, error) {
	var model models.InvoiceModel
	if err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("to_date DESC, created_at DESC").
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByCustomer lists a customer's invoices, newest period first
func (r *GormInvoiceRepository) FindByCustomer(ctx context.Context, customerID uuid.UUID, filter shared.Filter) ([]billing.Invoice, error) {
	query := r.db.WithContext(ctx).
		Model(&models.InvoiceModel{}).
		Where("customer_id = ?", customerID)
	return r.findInvoices(query, filter)
}

// FindAll lists invoices; Search matches the customer's name or phone
func (r *GormInvoiceRepository) FindAll(ctx context.Context, filter shared.Filter) ([]billing.Invoice, error) {
	query := r.applySearch(r.db.WithContext(ctx).Model(&models.InvoiceModel{}), filter)
	return r.findInvoices(query, filter)
}

// Count counts invoices matching the filter
func (r *GormInvoiceRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applySearch(r.db.WithContext(ctx).Model(&models.InvoiceModel{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CreateClaiming atomically claims the customer's billable deliveries in
// [from, to]. Candidate rows are locked FOR UPDATE so that a concurrent
// claim for the same customer blocks and then sees an empty selection.
// The unique index on invoice_line_items.delivery_id backstops the lock.
func (r *GormInvoiceRepository) CreateClaiming(ctx context.Context, customerID uuid.UUID, from, to time.Time, build func(deliveries []billing.Delivery) (*billing.Invoice, error)) (*billing.Invoice, error) {
	var created *billing.Invoice

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		claimed := tx.Session(&gorm.Session{NewDB: true}).
			Model(&models.InvoiceLineItemModel{}).
			Select("delivery_id")

		var deliveryModels []models.DeliveryModel
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("customer_id = ?", customerID).
			Where("date >= ? AND date <= ?", shared.DateOf(from), shared.DateOf(to)).
			Where("status = ?", billing.StatusDelivered).
			Where("billed = ?", false).
			Where("id NOT IN (?)", claimed).
			Order("date ASC").
			Find(&deliveryModels).Error; err != nil {
			return err
		}

		deliveries := make([]billing.Delivery, len(deliveryModels))
		for i, model := range deliveryModels {
			deliveries[i] = *model.ToDomain()
		}

		// The selection is passed through even when empty so the
		// domain can reject it and roll the transaction back.
		invoice, err := build(deliveries)
		if err != nil {
			return err
		}

		if err := tx.Create(models.InvoiceModelFromDomain(invoice)).Error; err != nil {
			return err
		}

		if len(deliveries) > 0 {
			deliveryIDs := make([]uuid.UUID, len(deliveries))
			for i := range deliveries {
				deliveryIDs[i] = deliveries[i].GetID()
			}
			if err := tx.Model(&models.DeliveryModel{}).
				Where("id IN ?", deliveryIDs).
				Updates(map[string]any{
					"billed":     true,
					"updated_at": time.Now(),
				}).Error; err != nil {
				return err
			}
		}

		created = invoice
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// findInvoices runs the shared list query with pagination and ordering
func (r *GormInvoiceRepository) findInvoices(query *gorm.DB, filter shared.Filter) ([]billing.Invoice, error) {
	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, InvoiceSortFields, "to_date")
	orderDir := ValidateSortOrder(filter.OrderDir)
	query = query.Order("invoices." + orderBy + " " + orderDir)

	var invoiceModels []models.InvoiceModel
	if err := query.
		Preload("LineItems", func(db *gorm.DB) *gorm.DB {
			return db.Order("delivery_date ASC")
		}).
		Find(&invoiceModels).Error; err != nil {
		return nil, err
	}

	invoices := make([]billing.Invoice, len(invoiceModels))
	for i, model := range invoiceModels {
		invoices[i] = *model.ToDomain()
	}
	return invoices, nil
}

// applySearch joins customers so Search can match name or phone
func (r *GormInvoiceRepository) applySearch(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search == "" {
		return query
	}
	searchPattern := "%" + strings.ToLower(filter.Search) + "%"
	return query.
		Joins("JOIN customers ON customers.id = invoices.customer_id").
		Where("LOWER(customers.name) LIKE ? OR LOWER(customers.phone) LIKE ?",
			searchPattern, searchPattern)
}

// Ensure GormInvoiceRepository implements InvoiceRepository
var _ billing.InvoiceRepository = (*GormInvoiceRepository)(nil)
