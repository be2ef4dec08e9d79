package subscriber

import (
	"time"

	"github.com/google/uuid"
	"github.com/newsagent/backend/internal/domain/shared"
)

// ErrDuplicateActiveSubscription is returned when creating a second
// active subscription for a customer. The billing period resolver
// assumes at most one active subscription per customer, so the
// invariant is enforced at creation time instead of being trusted to
// call sites.
var ErrDuplicateActiveSubscription = shared.NewDomainError(
	"DUPLICATE_ACTIVE_SUBSCRIPTION",
	"Customer already has an active subscription",
)

// Subscription links a customer to a newspaper for a date range.
// EndDate is nil for open-ended subscriptions.
type Subscription struct {
	shared.BaseAggregateRoot
	CustomerID  uuid.UUID  `json:"customer_id"`
	NewsPaperID uuid.UUID  `json:"newspaper_id"`
	StartDate   time.Time  `json:"start_date"`
	EndDate     *time.Time `json:"end_date,omitempty"`
	IsActive    bool       `json:"is_active"`
}

// NewSubscription creates a new active subscription
func NewSubscription(customerID, newspaperID uuid.UUID, startDate time.Time, endDate *time.Time) (*Subscription, error) {
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer ID cannot be empty")
	}
	if newspaperID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_NEWSPAPER", "Newspaper ID cannot be empty")
	}
	start := shared.DateOf(startDate)
	var end *time.Time
	if endDate != nil {
		e := shared.DateOf(*endDate)
		if e.Before(start) {
			return nil, shared.NewDomainError("INVALID_DATE_RANGE", "Subscription end date cannot precede start date")
		}
		end = &e
	}

	return &Subscription{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		CustomerID:        customerID,
		NewsPaperID:       newspaperID,
		StartDate:         start,
		EndDate:           end,
		IsActive:          true,
	}, nil
}

// Covers returns true when the subscription is in force on the given date
func (s *Subscription) Covers(date time.Time) bool {
	d := shared.DateOf(date)
	if d.Before(shared.DateOf(s.StartDate)) {
		return false
	}
	if s.EndDate != nil && d.After(shared.DateOf(*s.EndDate)) {
		return false
	}
	return true
}

// End closes the subscription as of the given date and deactivates it
func (s *Subscription) End(endDate time.Time) error {
	end := shared.DateOf(endDate)
	if end.Before(shared.DateOf(s.StartDate)) {
		return shared.NewDomainError("INVALID_DATE_RANGE", "Subscription end date cannot precede start date")
	}
	s.EndDate = &end
	s.IsActive = false
	s.Touch()
	s.IncrementVersion()
	return nil
}
