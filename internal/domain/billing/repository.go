package billing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/newsagent/backend/internal/domain/shared"
	"github.com/newsagent/backend/internal/domain/shared/valueobject"
)

// DeliveryRepository defines the interface for delivery persistence
type DeliveryRepository interface {
	// FindByID finds a delivery by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Delivery, error)

	// FindForDate lists deliveries on the given date
	FindForDate(ctx context.Context, date time.Time, filter shared.Filter) ([]Delivery, error)

	// CountForDate counts deliveries on the given date under the same
	// search predicate FindForDate applies
	CountForDate(ctx context.Context, date time.Time, filter shared.Filter) (int64, error)

	// CreateIfAbsent inserts the delivery unless one already exists for
	// its (customer, date). Returns the persisted delivery and true when
	// a new row was created, or the pre-existing delivery and false.
	CreateIfAbsent(ctx context.Context, delivery *Delivery) (*Delivery, bool, error)

	// Save updates an existing delivery
	Save(ctx context.Context, delivery *Delivery) error

	// UpdateStatusForDate overwrites the status of every delivery on the
	// given date and returns the number of rows affected
	UpdateStatusForDate(ctx context.Context, date time.Time, status DeliveryStatus) (int64, error)
}

// InvoiceRepository defines the interface for invoice persistence.
// Invoices are write-once: there is no update or delete.
type InvoiceRepository interface {
	// FindByID finds an invoice with its line items
	FindByID(ctx context.Context, id uuid.UUID) (*Invoice, error)

	// FindLastByCustomer returns the customer's invoice with the latest
	// ToDate, or shared.ErrNotFound when the customer has none
	FindLastByCustomer(ctx context.Context, customerID uuid.UUID) (*Invoice, error)

	// FindByCustomer lists a customer's invoices, newest period first
	FindByCustomer(ctx context.Context, customerID uuid.UUID, filter shared.Filter) ([]Invoice, error)

	// FindAll lists invoices
	FindAll(ctx context.Context, filter shared.Filter) ([]Invoice, error)

	// Count counts invoices matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// CreateClaiming atomically claims the customer's billable
	// deliveries in [from, to]. Inside one transaction it locks and
	// selects deliveries with status DELIVERED not yet referenced by any
	// line item, passes them to build, then persists the returned
	// invoice with its line items and marks the deliveries billed.
	// A concurrent claim for the same customer blocks on the row locks
	// and then sees an empty selection. The selection is passed to build
	// even when empty so the domain can reject it.
	CreateClaiming(ctx context.Context, customerID uuid.UUID, from, to time.Time, build func(deliveries []Delivery) (*Invoice, error)) (*Invoice, error)
}

// PaymentRepository defines the interface for payment persistence.
// Payments are append-only.
type PaymentRepository interface {
	// FindByID finds a payment by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Payment, error)

	// FindByInvoice lists an invoice's payments, oldest first
	FindByInvoice(ctx context.Context, invoiceID uuid.UUID) ([]Payment, error)

	// CreateGuarded inserts the payment after re-checking, inside one
	// transaction holding a lock on the invoice row, that the amount
	// does not exceed the invoice's pending balance. Returns
	// ErrOverpayment when it would, or shared.ErrNotFound when the
	// invoice does not exist.
	CreateGuarded(ctx context.Context, payment *Payment) error
}

// ReportRepository derives read-only billing aggregates. All methods
// are pure projections of persisted state and safe to run concurrently
// with any write.
type ReportRepository interface {
	// InvoiceBalance computes the paid/pending breakdown of one invoice
	InvoiceBalance(ctx context.Context, invoiceID uuid.UUID) (*InvoiceBalance, error)

	// CustomerBalance computes one customer's aggregate balance
	CustomerBalance(ctx context.Context, customerID uuid.UUID) (*CustomerBalance, error)

	// TopPendingCustomers ranks customers by pending balance descending,
	// strictly positive balances only, ties broken by customer creation
	// order, truncated to limit
	TopPendingCustomers(ctx context.Context, limit int) ([]CustomerBalance, error)

	// TotalPending sums the pending balance across all customers
	TotalPending(ctx context.Context) (valueobject.Money, error)

	// DailySnapshot summarizes deliveries on the given date
	DailySnapshot(ctx context.Context, date time.Time) (*DailySnapshot, error)

	// MonthSnapshot summarizes invoices created and payments received in
	// the calendar month containing the given date
	MonthSnapshot(ctx context.Context, date time.Time) (*MonthSnapshot, error)
}
