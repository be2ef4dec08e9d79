package billing

import (
	"time"

	"github.com/google/uuid"
	"github.com/newsagent/backend/internal/domain/shared"
	"github.com/newsagent/backend/internal/domain/shared/valueobject"
)

// Invoice bills one customer for a contiguous, inclusive range of
// dates. Invoices are immutable once created: the total is fixed at
// creation from the claimed deliveries and never recomputed.
type Invoice struct {
	shared.AuditedAggregateRoot
	CustomerID  uuid.UUID
	FromDate    time.Time
	ToDate      time.Time
	TotalAmount valueobject.Money
	IsLocked    bool
	LineItems   []InvoiceLineItem
}

// InvoiceLineItem links an invoice to exactly one delivery and freezes
// the delivery's price at claim time. A delivery appears in at most one
// line item ever; persistence enforces this with a unique constraint.
type InvoiceLineItem struct {
	shared.BaseEntity
	InvoiceID     uuid.UUID
	DeliveryID    uuid.UUID
	DeliveryDate  time.Time
	DeliveryPrice valueobject.Money
}

// NewInvoice builds an invoice claiming the given deliveries. The
// period must be non-empty and every delivery must be billable; the
// total is the sum of the delivery price snapshots.
func NewInvoice(customerID uuid.UUID, fromDate, toDate time.Time, deliveries []Delivery, createdBy uuid.UUID) (*Invoice, error) {
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer ID cannot be empty")
	}
	from := shared.DateOf(fromDate)
	to := shared.DateOf(toDate)
	if from.After(to) {
		return nil, ErrInvalidRange
	}
	if len(deliveries) == 0 {
		return nil, ErrNoBillableDeliveries
	}

	invoice := &Invoice{
		AuditedAggregateRoot: shared.NewAuditedAggregateRoot(createdBy),
		CustomerID:           customerID,
		FromDate:             from,
		ToDate:               to,
		IsLocked:             true,
	}

	total := valueobject.Zero()
	items := make([]InvoiceLineItem, 0, len(deliveries))
	for i := range deliveries {
		d := &deliveries[i]
		if !d.IsBillable() {
			return nil, ErrDeliveryAlreadyBilled
		}
		items = append(items, InvoiceLineItem{
			BaseEntity:    shared.NewBaseEntity(),
			InvoiceID:     invoice.GetID(),
			DeliveryID:    d.GetID(),
			DeliveryDate:  d.Date,
			DeliveryPrice: d.Price,
		})
		total = total.Add(d.Price)
	}

	invoice.TotalAmount = total
	invoice.LineItems = items
	return invoice, nil
}

// Pending returns the unpaid balance given the amount already paid
func (i *Invoice) Pending(paid valueobject.Money) valueobject.Money {
	return i.TotalAmount.Subtract(paid)
}
