package persistence

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/newsagent/backend/internal/domain/billing"
	"github.com/newsagent/backend/internal/domain/shared"
	"github.com/newsagent/backend/internal/domain/shared/valueobject"
	"github.com/newsagent/backend/internal/infrastructure/persistence/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormReportRepository implements ReportRepository using GORM. Every
// method is a read-only projection over invoices, payments and
// deliveries; nothing here takes locks or writes.
type GormReportRepository struct {
	db *gorm.DB
}

// NewGormReportRepository creates a new GormReportRepository
func NewGormReportRepository(db *gorm.DB) *GormReportRepository {
	return &GormReportRepository{db: db}
}

// InvoiceBalance computes the paid/pending breakdown of one invoice
func (r *GormReportRepository) InvoiceBalance(ctx context.Context, invoiceID uuid.UUID) (*billing.InvoiceBalance, error) {
	var invoice models.InvoiceModel
	if err := r.db.WithContext(ctx).First(&invoice, "id = ?", invoiceID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}

	var paid decimal.Decimal
	if err := r.db.WithContext(ctx).
		Model(&models.PaymentModel{}).
		Where("invoice_id = ?", invoiceID).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&paid).Error; err != nil {
		return nil, err
	}

	total := invoice.TotalAmount
	paidMoney := valueobject.NewMoney(paid)
	return &billing.InvoiceBalance{
		InvoiceID: invoiceID,
		Total:     total,
		Paid:      paidMoney,
		Pending:   total.Subtract(paidMoney),
	}, nil
}

// CustomerBalance computes one customer's aggregate balance across all
// of their invoices
func (r *GormReportRepository) CustomerBalance(ctx context.Context, customerID uuid.UUID) (*billing.CustomerBalance, error) {
	var customer models.CustomerModel
	if err := r.db.WithContext(ctx).First(&customer, "id = ?", customerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}

	var billed decimal.Decimal
	if err := r.db.WithContext(ctx).
		Model(&models.InvoiceModel{}).
		Where("customer_id = ?", customerID).
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&billed).Error; err != nil {
		return nil, err
	}

	var paid decimal.Decimal
	if err := r.db.WithContext(ctx).
		Table("payments").
		Joins("JOIN invoices ON invoices.id = payments.invoice_id").
		Where("invoices.customer_id = ?", customerID).
		Select("COALESCE(SUM(payments.amount), 0)").
		Scan(&paid).Error; err != nil {
		return nil, err
	}

	billedMoney := valueobject.NewMoney(billed)
	paidMoney := valueobject.NewMoney(paid)
	return &billing.CustomerBalance{
		CustomerID:   customerID,
		CustomerName: customer.Name,
		Billed:       billedMoney,
		Paid:         paidMoney,
		Pending:      billedMoney.Subtract(paidMoney),
	}, nil
}

// customerPendingRow is the scan target for the per-customer aggregation
type customerPendingRow struct {
	CustomerID   uuid.UUID
	CustomerName string
	CreatedAt    time.Time
	Billed       decimal.Decimal
}

// TopPendingCustomers ranks customers by pending balance descending,
// strictly positive balances only. Ties are broken by customer creation
// order so the ranking is stable across refreshes.
func (r *GormReportRepository) TopPendingCustomers(ctx context.Context, limit int) ([]billing.CustomerBalance, error) {
	if limit <= 0 {
		return []billing.CustomerBalance{}, nil
	}

	var billedRows []customerPendingRow
	if err := r.db.WithContext(ctx).
		Table("invoices").
		Joins("JOIN customers ON customers.id = invoices.customer_id").
		Select("invoices.customer_id AS customer_id, customers.name AS customer_name, customers.created_at AS created_at, COALESCE(SUM(invoices.total_amount), 0) AS billed").
		Group("invoices.customer_id, customers.name, customers.created_at").
		Scan(&billedRows).Error; err != nil {
		return nil, err
	}

	type paidRow struct {
		CustomerID uuid.UUID
		Paid       decimal.Decimal
	}
	var paidRows []paidRow
	if err := r.db.WithContext(ctx).
		Table("payments").
		Joins("JOIN invoices ON invoices.id = payments.invoice_id").
		Select("invoices.customer_id AS customer_id, COALESCE(SUM(payments.amount), 0) AS paid").
		Group("invoices.customer_id").
		Scan(&paidRows).Error; err != nil {
		return nil, err
	}

	paidByCustomer := make(map[uuid.UUID]decimal.Decimal, len(paidRows))
	for _, row := range paidRows {
		paidByCustomer[row.CustomerID] = row.Paid
	}

	type ranked struct {
		balance   billing.CustomerBalance
		pending   decimal.Decimal
		createdAt time.Time
	}
	candidates := make([]ranked, 0, len(billedRows))
	for _, row := range billedRows {
		paid := paidByCustomer[row.CustomerID]
		pending := row.Billed.Sub(paid)
		if !pending.IsPositive() {
			continue
		}
		candidates = append(candidates, ranked{
			balance: billing.CustomerBalance{
				CustomerID:   row.CustomerID,
				CustomerName: row.CustomerName,
				Billed:       valueobject.NewMoney(row.Billed),
				Paid:         valueobject.NewMoney(paid),
				Pending:      valueobject.NewMoney(pending),
			},
			pending:   pending,
			createdAt: row.CreatedAt,
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if !candidates[i].pending.Equal(candidates[j].pending) {
			return candidates[i].pending.GreaterThan(candidates[j].pending)
		}
		if !candidates[i].createdAt.Equal(candidates[j].createdAt) {
			return candidates[i].createdAt.Before(candidates[j].createdAt)
		}
		// customer id breaks ties between rows sharing a creation timestamp
		return candidates[i].balance.CustomerID.String() < candidates[j].balance.CustomerID.String()
	})

	if len(candidates) > limit {
		candidates = candidates[:limit]
	}
	result := make([]billing.CustomerBalance, len(candidates))
	for i, c := range candidates {
		result[i] = c.balance
	}
	return result, nil
}

// TotalPending sums the pending balance across all customers
func (r *GormReportRepository) TotalPending(ctx context.Context) (valueobject.Money, error) {
	var billed decimal.Decimal
	if err := r.db.WithContext(ctx).
		Model(&models.InvoiceModel{}).
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&billed).Error; err != nil {
		return valueobject.Zero(), err
	}

	var paid decimal.Decimal
	if err := r.db.WithContext(ctx).
		Model(&models.PaymentModel{}).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&paid).Error; err != nil {
		return valueobject.Zero(), err
	}

	return valueobject.NewMoney(billed.Sub(paid)), nil
}

// DailySnapshot summarizes deliveries on the given date
func (r *GormReportRepository) DailySnapshot(ctx context.Context, date time.Time) (*billing.DailySnapshot, error) {
	day := shared.DateOf(date)

	type statusRow struct {
		Status billing.DeliveryStatus
		Count  int64
	}
	var statusRows []statusRow
	if err := r.db.WithContext(ctx).
		Model(&models.DeliveryModel{}).
		Where("date = ?", day).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&statusRows).Error; err != nil {
		return nil, err
	}

	var deliveredValue decimal.Decimal
	if err := r.db.WithContext(ctx).
		Model(&models.DeliveryModel{}).
		Where("date = ? AND status = ?", day, billing.StatusDelivered).
		Select("COALESCE(SUM(price), 0)").
		Scan(&deliveredValue).Error; err != nil {
		return nil, err
	}

	snapshot := &billing.DailySnapshot{
		DeliveredValue: valueobject.NewMoney(deliveredValue),
	}
	for _, row := range statusRows {
		switch row.Status {
		case billing.StatusDelivered:
			snapshot.Delivered = row.Count
		case billing.StatusNotDelivered:
			snapshot.NotDelivered = row.Count
		case billing.StatusHoliday:
			snapshot.Holiday = row.Count
		}
	}
	return snapshot, nil
}

// MonthSnapshot summarizes invoices created and payments received in the
// calendar month containing the given date
func (r *GormReportRepository) MonthSnapshot(ctx context.Context, date time.Time) (*billing.MonthSnapshot, error) {
	day := shared.DateOf(date)
	monthStart := time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, day.Location())
	nextMonthStart := monthStart.AddDate(0, 1, 0)

	var invoiceCount int64
	if err := r.db.WithContext(ctx).
		Model(&models.InvoiceModel{}).
		Where("created_at >= ? AND created_at < ?", monthStart, nextMonthStart).
		Count(&invoiceCount).Error; err != nil {
		return nil, err
	}

	var billed decimal.Decimal
	if err := r.db.WithContext(ctx).
		Model(&models.InvoiceModel{}).
		Where("created_at >= ? AND created_at < ?", monthStart, nextMonthStart).
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&billed).Error; err != nil {
		return nil, err
	}

	var paid decimal.Decimal
	if err := r.db.WithContext(ctx).
		Model(&models.PaymentModel{}).
		Where("payment_date >= ? AND payment_date < ?", monthStart, nextMonthStart).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&paid).Error; err != nil {
		return nil, err
	}

	billedMoney := valueobject.NewMoney(billed)
	paidMoney := valueobject.NewMoney(paid)
	return &billing.MonthSnapshot{
		InvoiceCount: invoiceCount,
		Billed:       billedMoney,
		Paid:         paidMoney,
		Pending:      billedMoney.Subtract(paidMoney),
	}, nil
}

// Ensure GormReportRepository implements ReportRepository
var _ billing.ReportRepository = (*GormReportRepository)(nil)
