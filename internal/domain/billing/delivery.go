package billing

import (
	"time"

	"github.com/google/uuid"
	"github.com/newsagent/backend/internal/domain/shared"
	"github.com/newsagent/backend/internal/domain/shared/valueobject"
)

// DeliveryStatus represents the outcome of a single delivery day
type DeliveryStatus string

const (
	StatusDelivered    DeliveryStatus = "DELIVERED"
	StatusNotDelivered DeliveryStatus = "NOT_DELIVERED"
	StatusHoliday      DeliveryStatus = "HOLIDAY"
)

// IsValid checks whether the status is one of the known values
func (s DeliveryStatus) IsValid() bool {
	switch s {
	case StatusDelivered, StatusNotDelivered, StatusHoliday:
		return true
	}
	return false
}

// Delivery represents one newspaper dropped at one customer on one date.
// Price is a snapshot of the newspaper's price per day at generation
// time; later price changes never affect an existing delivery.
type Delivery struct {
	shared.BaseEntity
	CustomerID     uuid.UUID
	SubscriptionID uuid.UUID
	NewsPaperID    uuid.UUID
	Date           time.Time
	Status         DeliveryStatus
	Price          valueobject.Money
	Billed         bool
}

// NewDelivery creates a delivery for the given date with the price
// snapshotted from the newspaper. Deliveries start as DELIVERED, the
// common case for home delivery routes; exceptions are marked afterwards.
func NewDelivery(customerID, subscriptionID, newspaperID uuid.UUID, date time.Time, price valueobject.Money) (*Delivery, error) {
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer ID cannot be empty")
	}
	if subscriptionID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SUBSCRIPTION", "Subscription ID cannot be empty")
	}
	if newspaperID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_NEWSPAPER", "Newspaper ID cannot be empty")
	}
	if !price.IsPositive() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Delivery price must be positive")
	}

	return &Delivery{
		BaseEntity:     shared.NewBaseEntity(),
		CustomerID:     customerID,
		SubscriptionID: subscriptionID,
		NewsPaperID:    newspaperID,
		Date:           shared.DateOf(date),
		Status:         StatusDelivered,
		Price:          price,
		Billed:         false,
	}, nil
}

// SetStatus changes the delivery status. Any transition between the
// three statuses is allowed, deliberately: a delivery outcome may be
// corrected at any time. The billed price stays frozen in the invoice
// line item regardless.
func (d *Delivery) SetStatus(status DeliveryStatus) error {
	if !status.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", "Unknown delivery status")
	}
	d.Status = status
	d.Touch()
	return nil
}

// IsBillable reports whether the delivery can be claimed by an invoice
func (d *Delivery) IsBillable() bool {
	return d.Status == StatusDelivered && !d.Billed
}
